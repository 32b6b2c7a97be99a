package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/go-drift/xtype/pkg/document"
)

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Print version information",
		Long:  `Print the CLI version, its build time and the document format version it writes.`,
		Usage: "version",
		Args:  cobra.NoArgs,
		Flags: func(fs *pflag.FlagSet) {
			fs.Bool("json", false, "print version info as JSON")
		},
		Run: runVersion,
	})
}

func runVersion(env *Env, args []string) error {
	if asJSON, _ := env.Flags.GetBool("json"); asJSON {
		out, err := json.MarshalIndent(map[string]string{
			"version": Version,
			"built":   BuildTime,
			"format":  document.CurrentVersion,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling version info: %w", err)
		}
		fmt.Fprintln(env.Out, string(out))
		return nil
	}
	fmt.Fprintf(env.Out, "xtype version %s (built %s, format %s)\n", Version, BuildTime, document.CurrentVersion)
	return nil
}
