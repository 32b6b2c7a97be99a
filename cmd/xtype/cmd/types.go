package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/xtype/pkg/core"
	"github.com/go-drift/xtype/pkg/document"
)

func init() {
	RegisterCommand(&Command{
		Name:  "types",
		Short: "List the type tags of the selected catalog",
		Long: `List every type tag of the selected catalog with the element name it
renders and the namespace it is created in.`,
		Usage: "types",
		Args:  cobra.NoArgs,
		Run:   runTypes,
	})
	RegisterCommand(&Command{
		Name:  "schema",
		Short: "Print the document JSON schema",
		Long:  `Print the JSON schema that validate checks documents against.`,
		Usage: "schema",
		Args:  cobra.NoArgs,
		Run:   runSchema,
	})
}

func runTypes(env *Env, args []string) error {
	for _, k := range env.Catalog() {
		ns := "html"
		if s, ok := k.Strategy.(core.Namespaced); ok {
			ns = s.Namespace
		}
		fmt.Fprintf(env.Out, "%-22s %-22s %s\n", k.Tag, k.Name, ns)
	}
	return nil
}

func runSchema(env *Env, args []string) error {
	_, err := env.Out.Write(document.Schema())
	return err
}
