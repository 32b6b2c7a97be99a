package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/go-drift/xtype/pkg/catalog"
	"github.com/go-drift/xtype/pkg/core"
	"github.com/go-drift/xtype/pkg/document"
	"github.com/go-drift/xtype/pkg/dom"
	"github.com/go-drift/xtype/pkg/errors"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render a document to markup",
		Long: `Render a document into an in-memory element tree and print its markup.

Problems found while rendering (unknown type tags, duplicate identities,
invalid configs) are logged to stderr and rendering continues with the
remaining nodes. The command fails if any node could not be rendered, or if
--strict is set and anything was reported.`,
		Usage: "render FILE",
		Args:  cobra.ExactArgs(1),
		Flags: func(fs *pflag.FlagSet) {
			fs.StringP("out", "o", "", "write markup to `FILE` instead of stdout")
			fs.Bool("ids", false, "list registered identities on stderr after rendering")
		},
		Run: runRender,
	})
}

func runRender(env *Env, args []string) error {
	path := args[0]
	d, err := document.Load(path)
	if err != nil {
		return err
	}
	d.ApplyScope(env.Settings.Scope)

	host := dom.NewDocument()
	collector := &errors.Collector{}
	opts := append(env.ManagerOptions(errors.Tee(env.Handler(), collector)), core.WithRoot(host.Body()))
	m := catalog.NewManager(host, env.Catalog(), opts...)

	_, renderErr := d.Render(m, nil)

	markup, err := host.Markup(host.Body())
	if err != nil {
		return fmt.Errorf("serializing %s: %w", path, err)
	}
	if out, _ := env.Flags.GetString("out"); out != "" {
		if err := os.WriteFile(out, []byte(markup+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
	} else {
		fmt.Fprintln(env.Out, markup)
	}

	if ids, _ := env.Flags.GetBool("ids"); ids {
		for _, key := range m.Objects().Keys() {
			fmt.Fprintln(env.Err, key)
		}
	}

	if renderErr != nil {
		return fmt.Errorf("rendering %s: %w", path, renderErr)
	}
	if n := len(collector.Diagnostics()); env.Settings.Strict && n > 0 {
		return fmt.Errorf("rendering %s: %d diagnostics reported in strict mode", path, n)
	}
	return nil
}
