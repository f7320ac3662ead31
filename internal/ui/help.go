package ui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/noborus/ov/oviewer"

	"multiselect/internal/i18n"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// KeyReference returns the key reference as markdown
func KeyReference(loc *i18n.Localizer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", loc.T(i18n.AppTitle))

	b.WriteString("## Widget\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	b.WriteString("| `enter`, `space` | open or close the list, toggle the focused option, run select all |\n")
	b.WriteString("| `↑`/`↓`, `k`/`j` | move between select all, search and options |\n")
	b.WriteString("| `/` | focus the search input |\n")
	b.WriteString("| `esc` | close the open list |\n")
	b.WriteString("| mouse click | same as `enter` on the clicked element, outside closes |\n\n")

	b.WriteString("## Application\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	b.WriteString("| `tab`, `shift+tab` | focus the next or previous widget |\n")
	b.WriteString("| `?` | show this reference |\n")
	b.WriteString("| `q`, `ctrl+c` | quit and print the selections |\n\n")

	fmt.Fprintf(&b, "> %s\n", loc.T(i18n.NavigationHint))
	return b.String()
}

// RenderKeyReference renders the key reference for a terminal. An empty
// style picks one from the terminal background.
func RenderKeyReference(loc *i18n.Localizer, width int, style string) (string, error) {
	opts := []glamour.TermRendererOption{}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(KeyReference(loc))
	if err != nil {
		return "", fmt.Errorf("failed to render key reference: %w", err)
	}
	return out, nil
}

// ShowInPager shows content with the ov pager. It takes over the terminal
// until the user quits.
func ShowInPager(content string) error {
	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Keep the screen clean for the caller
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	config.Keybind = pagerKeys()
	root.SetConfig(config)

	return root.Run()
}

// pagerKeys adds vim-like motions to the pager
func pagerKeys() map[string][]string {
	return map[string][]string{
		"exit":      {"Escape", "q"},
		"down":      {"Enter", "Down", "j"},
		"up":        {"Up", "k"},
		"top":       {"Home", "g"},
		"bottom":    {"End", "G"},
		"page_down": {"PageDown", "ctrl+f", " "},
		"page_up":   {"PageUp", "ctrl+b"},
	}
}

// pagerCommand runs the pager from a Bubble Tea program via tea.Exec
type pagerCommand struct {
	content string
}

func (c *pagerCommand) Run() error { return ShowInPager(c.content) }

// ov opens the terminal itself
func (c *pagerCommand) SetStdin(io.Reader)  {}
func (c *pagerCommand) SetStdout(io.Writer) {}
func (c *pagerCommand) SetStderr(io.Writer) {}

// showHelp suspends the program while the key reference is paged
func showHelp(loc *i18n.Localizer, width int) tea.Cmd {
	content, err := RenderKeyReference(loc, width, "")
	if err != nil {
		return func() tea.Msg { return helpPagerMsg{err: err} }
	}
	return tea.Exec(&pagerCommand{content: content}, func(err error) tea.Msg {
		return helpPagerMsg{err: err}
	})
}
