package main

import "multiselect/internal/cli"

func main() {
	cli.Execute()
}
