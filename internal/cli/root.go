// Package cli contains the multiselect commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"multiselect/internal/config"
	"multiselect/internal/i18n"
	"multiselect/internal/logging"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
)

// EnvPrefix prefixes every environment override, e.g. MULTISELECT_LOCALE
const EnvPrefix = "MULTISELECT"

// app is the state shared by every command of one invocation
type app struct {
	v *viper.Viper

	cfgPath string
	cfg     *config.Config
	loc     *i18n.Localizer
	logger  *log.Logger
	closer  io.Closer
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		NewRootCmd(),
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// NewRootCmd creates the command tree. Each call returns a fresh tree with its
// own viper instance, so tests can run commands in isolation.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "multiselect",
		Short: "Pick values from option lists in the terminal",
		Long: `multiselect shows one dropdown per option file, lets you filter and
check entries with the keyboard or the mouse, and prints the selection
when you quit.

Running without a subcommand starts the picker on the built-in demo lists.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.pick(cmd, nil)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgPath, "config", "", "config file (default is ./"+config.FileName+")")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.String("locale", "", `interface language ("fr", "en")`)
	flags.String("log-file", "", "log file, empty keeps the configured one")
	flags.StringP("format", "f", "", `result format ("json", "yaml", "toml")`)

	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	for _, name := range []string{"verbose", "locale", "log-file", "format"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	cmd.AddCommand(newPickCmd(a))
	cmd.AddCommand(newKeysCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

// configService returns the service for --config, or the file in the
// working directory
func (a *app) configService() config.ConfigService {
	if a.cfgPath != "" {
		return config.NewConfigServiceForFile(a.cfgPath)
	}
	return config.NewConfigService(".")
}

// setup loads the config file and applies flag and environment overrides on
// top of it
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := a.configService().Load()
	if err != nil {
		return err
	}
	a.cfg = a.override(cfg)
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	if !i18n.Supported(a.cfg.Locale) {
		return fmt.Errorf("unsupported locale %q", a.cfg.Locale)
	}
	if a.loc, err = i18n.New(a.cfg.Locale); err != nil {
		return err
	}

	a.logger, a.closer, err = logging.Open(a.cfg.LogFile, a.v.GetBool("verbose"))
	if err != nil {
		return err
	}
	a.logger.Debug("config loaded", "path", a.configService().Path(), "locale", a.cfg.Locale)
	return nil
}

func (a *app) override(cfg *config.Config) *config.Config {
	if s := a.v.GetString("locale"); s != "" {
		cfg.Locale = s
	}
	if s := a.v.GetString("format"); s != "" {
		cfg.Output = s
	}
	if s := a.v.GetString("log-file"); s != "" {
		cfg.LogFile = s
	}
	return cfg
}

func (a *app) teardown(cmd *cobra.Command, args []string) error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}
