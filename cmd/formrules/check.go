package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formrules/pkg/formbind"
	"github.com/dmitrymomot/formrules/pkg/validator"
)

type checkFlags struct {
	valuesFile string
	all        bool
}

func newCheckCmd(a *app) *cobra.Command {
	var flags checkFlags

	cmd := &cobra.Command{
		Use:   "check SCHEMA [name=value ...]",
		Short: "Validate form values against a schema",
		Long: `Validate form values against a YAML schema and print one message per failure.

Values come from name=value arguments and, optionally, a YAML mapping file.
Arguments win over the file. The command exits with status 1 when the form
is rejected.

Examples:
  formrules check signup.yaml username=jo password=secret1 terms=on
  formrules check signup.yaml --values submission.yaml --all`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(cmd.OutOrStdout(), args[0], args[1:], flags)
		},
	}
	cmd.Flags().StringVar(&flags.valuesFile, "values", "", "YAML file mapping field names to values")
	cmd.Flags().BoolVar(&flags.all, "all", false, "report every failure")
	return cmd
}

func (a *app) check(out io.Writer, schemaPath string, pairs []string, flags checkFlags) error {
	schema, err := formbind.LoadSchemaFile(schemaPath)
	if err != nil {
		return err
	}

	values := url.Values{}
	if flags.valuesFile != "" {
		if err := readValuesFile(flags.valuesFile, values); err != nil {
			return err
		}
	}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid value %q: expected name=value", pair)
		}
		values.Set(name, value)
	}

	opts := append(a.engineOptions(), schema.EngineOptions()...)
	opts = append(opts, validator.WithErrorSink(func(message string) {
		fmt.Fprintln(out, message)
	}))
	engine := validator.New(opts...)
	formbind.Bind(engine, schema, values)

	policy := engine.Policy()
	if flags.all || a.cfg.Continuous {
		policy = validator.CollectAll
	}
	failed, err := engine.Run(policy)
	if err != nil {
		return err
	}
	if failed {
		return errRejected
	}
	fmt.Fprintln(out, "ok")
	return nil
}

func readValuesFile(path string, into url.Values) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read values: %w", err)
	}

	var doc map[string]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode values %s: %w", path, err)
	}
	for name, value := range doc {
		into.Set(name, value)
	}
	return nil
}
