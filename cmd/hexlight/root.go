package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/hexlight/internal/config"
	"github.com/dshills/hexlight/internal/config/loader"
	"github.com/dshills/hexlight/internal/log"
)

// defaultConfigFiles are tried in order when --config is not given.
var defaultConfigFiles = []string{".hexlight.toml", ".hexlight.yaml", ".hexlight.yml"}

// cli carries state shared by every subcommand.
type cli struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer

	cfg      config.Config
	closeLog func()
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{v: viper.New(), out: out, errOut: errOut, cfg: config.Defaults()}

	root := &cobra.Command{
		Use:   "hexlight",
		Short: "Highlight color literals in source files",
		Long: `hexlight finds color literals (hex, rgb(), hsl(), var(--x), named colors,
tailwind classes and custom labels) and decorates them with the color they
denote, either as a report, an ANSI preview or in an interactive viewer.`,
		SilenceUsage:       true,
		PersistentPreRunE:  c.setup,
		PersistentPostRunE: c.teardown,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "config file (.toml, .yaml or .yml; default: ./.hexlight.toml)")
	flags.BoolP("debug", "d", false, "write debug logs")
	flags.String("log", "hexlight.log", "debug log file")
	flags.String("render", "", "render mode override (background, foreground, virtual)")
	flags.String("column-unit", "", "column unit override (byte, utf-16, rune, cell)")

	c.v.SetEnvPrefix("HEXLIGHT")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	for _, name := range []string{"config", "debug", "log", "render", "column-unit"} {
		_ = c.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		c.scanCmd(),
		c.viewCmd(),
		c.luaCmd(),
		c.notationsCmd(),
	)
	return root
}

func (c *cli) setup(_ *cobra.Command, _ []string) error {
	if c.v.GetBool("debug") {
		closeLog, err := log.Init(c.v.GetString("log"))
		if err != nil {
			return err
		}
		c.closeLog = closeLog
	}

	cfg, warnings, err := c.loadConfig()
	if err != nil {
		// Unreadable config is reported and defaults are used.
		fmt.Fprintf(c.errOut, "hexlight: %v\n", err)
	}
	for _, w := range warnings {
		fmt.Fprintf(c.errOut, "hexlight: config: %v\n", w)
	}
	c.cfg = cfg
	return nil
}

func (c *cli) teardown(_ *cobra.Command, _ []string) error {
	if c.closeLog != nil {
		log.SetOutput(nil)
		c.closeLog()
		c.closeLog = nil
	}
	return nil
}

// loadConfig layers the config file, HEXLIGHT_* variables and flag
// overrides, in that order, over the defaults.
func (c *cli) loadConfig() (config.Config, []error, error) {
	var loadErr error

	file, err := c.readConfigFile()
	if err != nil {
		loadErr = err
		file = nil
	}

	env, err := loader.NewEnvLoader(loader.DefaultEnvPrefix).Load()
	if err != nil {
		loadErr = errors.Join(loadErr, err)
	}

	flags := map[string]any{}
	if r := c.v.GetString("render"); r != "" {
		flags["render"] = r
	}
	if u := c.v.GetString("column-unit"); u != "" {
		flags["column_unit"] = u
	}

	cfg, warnings := config.Merge(file, env, flags)
	return cfg, warnings, loadErr
}

func (c *cli) readConfigFile() (map[string]any, error) {
	if path := c.v.GetString("config"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		log.Info(log.CatConfig, "loading config", "path", path)
		return loader.LoadFile(path)
	}
	for _, path := range defaultConfigFiles {
		if _, err := os.Stat(path); err == nil {
			log.Info(log.CatConfig, "loading config", "path", path)
			return loader.LoadFile(path)
		}
	}
	return nil, nil
}
