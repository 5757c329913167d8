package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formrules/pkg/config"
	"github.com/dmitrymomot/formrules/pkg/httpserver"
	"github.com/dmitrymomot/formrules/pkg/logger"
	"github.com/dmitrymomot/formrules/pkg/validator"
)

// Version is set by build flags.
var Version = "dev"

// errRejected signals a failed validation pass. It maps to exit status 1
// without printing anything beyond the rendered messages.
var errRejected = errors.New("form rejected")

// Config is read from the environment and an optional .env file.
type Config struct {
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"text"`
	Continuous    bool   `env:"VALIDATOR_CONTINUOUS" envDefault:"false"`
	TemplatesFile string `env:"VALIDATOR_TEMPLATES_FILE"`
	TrustProxy    bool   `env:"HTTP_TRUST_PROXY" envDefault:"false"`
	HTTP          httpserver.Config
}

type app struct {
	envFile   string
	verbose   bool
	cfg       Config
	log       *slog.Logger
	templates validator.Templates
}

// engineOptions returns the options every command applies before its own.
func (a *app) engineOptions() []validator.Option {
	opts := []validator.Option{validator.WithLogger(a.log)}
	if len(a.templates) > 0 {
		opts = append(opts, validator.WithTemplates(a.templates))
	}
	return opts
}

func (a *app) setup(cmd *cobra.Command) error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	if err := config.Load(&a.cfg, files...); err != nil {
		return err
	}

	level := logger.ParseLevel(a.cfg.LogLevel)
	if a.verbose {
		level = slog.LevelDebug
	}
	format := logger.Format(a.cfg.LogFormat)
	if format != logger.FormatJSON {
		format = logger.FormatText
	}
	a.log = logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithAttr(slog.String("service", "formrules")),
	)

	if a.cfg.TemplatesFile != "" {
		t, err := loadTemplatesFile(a.cfg.TemplatesFile)
		if err != nil {
			return err
		}
		a.templates = t
	}
	return nil
}

func loadTemplatesFile(path string) (validator.Templates, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open templates: %w", err)
	}
	defer f.Close()

	return validator.LoadTemplates(f)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "formrules",
		Short: "Declarative form validation",
		Long: `formrules checks form values against space-separated rule annotations
such as "required minLength:3 is:email".

Configuration is read from the environment (and .env when present):
  LOG_LEVEL                 debug, info, warn, error
  LOG_FORMAT                text or json
  VALIDATOR_CONTINUOUS      report every failure instead of stopping at the first
  VALIDATOR_TEMPLATES_FILE  YAML file overriding message templates
  HTTP_ADDR                 listen address for serve
  HTTP_TRUST_PROXY          log client addresses from forwarding headers`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "dotenv file to load (default .env)")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "debug logging")

	root.AddCommand(newCheckCmd(a), newRulesCmd(a), newServeCmd(a))
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errRejected):
		return 1
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
}
