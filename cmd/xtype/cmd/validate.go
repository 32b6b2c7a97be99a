package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/xtype/pkg/document"
)

func init() {
	RegisterCommand(&Command{
		Name:  "validate",
		Short: "Check documents against the schema and lint rules",
		Long: `Validate each document against the embedded JSON schema, then lint it.

Lint reports unknown colour keywords in paint attributes, identities declared
twice in one scope, and type tags missing from the selected catalog. Lint
findings are warnings unless --strict is set.`,
		Usage: "validate FILE...",
		Args:  cobra.MinimumNArgs(1),
		Run:   runValidate,
	})
}

func runValidate(env *Env, args []string) error {
	cat := env.Catalog()
	known := func(tag string) bool {
		_, ok := cat.Lookup(tag)
		return ok
	}

	failed := 0
	for _, path := range args {
		if !validateOne(env, path, known) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed validation", failed, len(args))
	}
	return nil
}

func validateOne(env *Env, path string, known func(string) bool) bool {
	result, err := document.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(env.Out, "%s: %v\n", path, err)
		return false
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			fmt.Fprintf(env.Out, "%s: error: %s\n", path, issue)
		}
		return false
	}

	d, err := document.Load(path)
	if err != nil {
		fmt.Fprintf(env.Out, "%s: %v\n", path, err)
		return false
	}
	d.ApplyScope(env.Settings.Scope)

	issues := document.Lint(d, known)
	for _, issue := range issues {
		fmt.Fprintf(env.Out, "%s: warning: %s\n", path, issue)
	}
	if len(issues) > 0 && env.Settings.Strict {
		return false
	}
	if len(issues) == 0 {
		fmt.Fprintf(env.Out, "%s: ok\n", path)
	}
	return true
}
