package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formrules/pkg/validator"
)

func newRulesCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List registered rules and their message templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.listRules(cmd.OutOrStdout(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, yaml")
	return cmd
}

func (a *app) listRules(out io.Writer, format string) error {
	engine := validator.New(a.engineOptions()...)
	names := engine.Registry().Names()
	templates := engine.Templates()

	switch format {
	case "yaml":
		doc := make(map[string]string, len(names))
		for _, name := range names {
			doc[name] = templates[name]
		}
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		fmt.Fprintf(out, "%-12s %s\n", "RULE", "TEMPLATE")
		for _, name := range names {
			tmpl, ok := templates[name]
			if !ok {
				tmpl = "-"
			}
			fmt.Fprintf(out, "%-12s %s\n", name, tmpl)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
