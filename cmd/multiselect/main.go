// Command multiselect is the installable entry point:
//
//	go install multiselect/cmd/multiselect
package main

import "multiselect/internal/cli"

func main() {
	cli.Execute()
}
