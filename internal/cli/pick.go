package cli

import (
	"embed"
	"fmt"
	"path"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"multiselect/internal/config"
	"multiselect/internal/discovery"
	"multiselect/internal/domain"
	"multiselect/internal/eventbus"
	"multiselect/internal/option"
	"multiselect/internal/optionsource"
	"multiselect/internal/ui"
	"multiselect/internal/ui/multiselect"
)

//go:embed demo
var demoFS embed.FS

// demoFiles are shown, in this order, when no options file is given
var demoFiles = []string{"villes.yaml", "langages.toml"}

func newPickCmd(a *app) *cobra.Command {
	var files, dirs []string

	cmd := &cobra.Command{
		Use:   "pick [FILE]...",
		Short: "Pick options from YAML, TOML or JSON files",
		Long: `Open one dropdown per options file and print the selections on exit.

An options file is either a bare list or a document with an "options"
list and optional "label", "hint", "legend" and "filtering_fields" keys.`,
		Example: `  multiselect pick villes.yaml
  multiselect pick -o tags.toml -o users.json --format yaml
  multiselect pick --dir ./lists`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := append(append([]string(nil), files...), args...)
			if len(dirs) > 0 {
				found, err := discovery.NewScanner(a.logger, config.FileName).Scan(cmd.Context(), dirs)
				if err != nil {
					return err
				}
				if len(found) == 0 {
					return fmt.Errorf("no options files in %s", strings.Join(dirs, ", "))
				}
				paths = append(paths, found...)
			}
			return a.pick(cmd, paths)
		},
	}
	cmd.Flags().StringArrayVarP(&files, "options", "o", nil, "options file, repeatable")
	cmd.Flags().StringArrayVarP(&dirs, "dir", "d", nil, "directory scanned for options files, repeatable")
	return cmd
}

// pick runs the picker on files, or on the demo lists when files is empty
func (a *app) pick(cmd *cobra.Command, files []string) error {
	sources, err := loadSources(files)
	if err != nil {
		return err
	}

	bus := eventbus.New(a.logger)
	root := domain.NewElement("document", nil)
	sections, err := a.buildSections(sources, bus, root)
	if err != nil {
		return err
	}

	model := ui.NewModel(ui.Options{
		Bus:       bus,
		Root:      root,
		Localizer: a.loc,
		Logger:    a.logger,
	}, sections...)
	defer model.Close()

	// the screen goes to stderr so the selection can be piped
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
		tea.WithOutput(cmd.ErrOrStderr()),
	)
	a.logger.Info("starting picker", "sections", len(sections))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("picker failed: %w", err)
	}
	a.logger.Info("picker exited")

	return writeResults(cmd.OutOrStdout(), a.cfg.Output, model.Results())
}

func loadSources(files []string) ([]*optionsource.Source, error) {
	if len(files) == 0 {
		return demoSources()
	}
	sources := make([]*optionsource.Source, 0, len(files))
	for _, f := range files {
		src, err := optionsource.Load(f)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func demoSources() ([]*optionsource.Source, error) {
	sources := make([]*optionsource.Source, 0, len(demoFiles))
	for _, name := range demoFiles {
		data, err := demoFS.ReadFile(path.Join("demo", name))
		if err != nil {
			return nil, err
		}
		ext := path.Ext(name)
		src, err := optionsource.Parse(data, strings.TrimPrefix(ext, "."))
		if err != nil {
			return nil, fmt.Errorf("demo %s: %w", name, err)
		}
		src.Name = strings.TrimSuffix(name, ext)
		sources = append(sources, src)
	}
	return sources, nil
}

// buildSections creates one widget per source, all on the same document
func (a *app) buildSections(sources []*optionsource.Source, bus eventbus.EventBus, root *domain.Element) ([]ui.Section, error) {
	sections := make([]ui.Section, 0, len(sources))
	seen := make(map[string]int)

	for _, src := range sources {
		cfg := multiselect.FromSettings(a.cfg.Widget)
		cfg.ID = widgetID(src.Name, seen)
		cfg.Label = src.Label
		if cfg.Label == "" {
			cfg.Label = src.Name
		}
		if src.Hint != "" {
			cfg.Hint = src.Hint
		}
		if src.Legend != "" {
			cfg.Legend = src.Legend
		}
		if len(src.FilteringFields) > 0 {
			cfg.FilteringFields = src.FilteringFields
		}

		entries, err := option.NewNormalizer(cfg.IDField, cfg.LabelField).Normalize(src.Options)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.Name, err)
		}
		if dups := option.Duplicates(entries); len(dups) > 0 {
			a.logger.Warn("duplicate option ids", "source", src.Name, "ids", dups)
		}

		w, err := multiselect.New(src.Options, cfg,
			multiselect.WithBus(bus),
			multiselect.WithParent(root),
			multiselect.WithLocalizer(a.loc),
			multiselect.WithLogger(a.logger.With("widget", cfg.ID)),
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.Name, err)
		}
		sections = append(sections, ui.Section{Title: src.Name, Widget: w})
	}
	return sections, nil
}

// widgetID turns a source name into a unique element id prefix
func widgetID(name string, seen map[string]int) string {
	id := strings.Join(strings.Fields(name), "-")
	if id == "" {
		return ""
	}
	seen[id]++
	if n := seen[id]; n > 1 {
		return fmt.Sprintf("%s-%d", id, n)
	}
	return id
}
