// Package cmd implements the xtype CLI commands.
//
// Commands register themselves with RegisterCommand from init functions; the
// root command resolves settings once per invocation and hands them to the
// command through an Env.
package cmd

import (
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-drift/xtype/cmd/xtype/internal/config"
	"github.com/go-drift/xtype/pkg/catalog"
	"github.com/go-drift/xtype/pkg/core"
	"github.com/go-drift/xtype/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Args  cobra.PositionalArgs
	Flags func(fs *pflag.FlagSet)
	Run   func(env *Env, args []string) error
}

// Env is the environment a command runs in.
type Env struct {
	Settings *config.Resolved
	Flags    *pflag.FlagSet
	Out      io.Writer
	Err      io.Writer
	Log      logr.Logger
}

// Catalog returns the catalog selected by the settings.
func (e *Env) Catalog() catalog.Catalog {
	c, _ := catalog.Named(e.Settings.Catalog)
	return c
}

// Handler returns a diagnostic handler logging to the command's error stream.
func (e *Env) Handler() *errors.LogHandler {
	return &errors.LogHandler{Logger: e.Log, Verbose: e.Settings.Verbose}
}

// ManagerOptions returns the core options implied by the settings.
func (e *Env) ManagerOptions(h errors.Handler) []core.Option {
	opts := []core.Option{core.WithHandler(h)}
	if e.Settings.Strict {
		opts = append(opts, core.WithStrict())
	}
	return opts
}

// Commands registered with the CLI, in registration order.
var commands []*Command

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands = append(commands, cmd)
}

// NewRootCommand builds the command tree from the registered commands.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "xtype",
		Short: "Render declarative element trees",
		Long: `xtype turns declarative documents into live element trees.

A document is a YAML or JSON file describing one root config and its
children. Each config names a type tag from the selected catalog.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("xtype version {{.Version}} (built " + BuildTime + ")\n")

	pf := root.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default: ./"+config.FileName+")")
	pf.String(config.KeyCatalog, "", "type catalog: svg or html")
	pf.Bool(config.KeyStrict, false, "refuse duplicate identities and fail on lint warnings")
	pf.Bool(config.KeyVerbose, false, "include stack traces in diagnostics")
	pf.String(config.KeyScope, "", "default scope for configs without one")
	for _, key := range []string{config.KeyCatalog, config.KeyStrict, config.KeyVerbose, config.KeyScope} {
		_ = v.BindPFlag(key, pf.Lookup(key))
	}

	for _, c := range commands {
		c := c
		use := c.Usage
		if use == "" {
			use = c.Name
		}
		sub := &cobra.Command{
			Use:   use,
			Short: c.Short,
			Long:  c.Long,
			Args:  c.Args,
			RunE: func(cc *cobra.Command, args []string) error {
				dir, err := os.Getwd()
				if err != nil {
					return err
				}
				settings, err := config.Resolve(v, dir, cfgFile)
				if err != nil {
					return err
				}
				env := &Env{
					Settings: settings,
					Flags:    cc.Flags(),
					Out:      cc.OutOrStdout(),
					Err:      cc.ErrOrStderr(),
				}
				env.Log = errors.WriterLogger(env.Err, "xtype")
				return c.Run(env, args)
			},
		}
		if c.Flags != nil {
			c.Flags(sub.Flags())
		}
		root.AddCommand(sub)
	}
	return root
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}
