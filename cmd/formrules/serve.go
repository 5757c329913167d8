package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formrules/pkg/clientip"
	"github.com/dmitrymomot/formrules/pkg/formbind"
	"github.com/dmitrymomot/formrules/pkg/httpserver"
	"github.com/dmitrymomot/formrules/pkg/logger"
	"github.com/dmitrymomot/formrules/pkg/metrics"
	"github.com/dmitrymomot/formrules/pkg/requestid"
	"github.com/dmitrymomot/formrules/pkg/validator"
	"github.com/dmitrymomot/formrules/pkg/watch"
)

const forwardTimeout = 10 * time.Second

type serveFlags struct {
	schema  string
	addr    string
	watch   bool
	forward string
}

func newServeCmd(a *app) *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an HTTP form validation endpoint",
		Long: `Serve POST /validate for a schema.

Rejected submissions get 422 with the rendered messages grouped by field.
Accepted submissions get 204, or 202 when --forward is set, in which case the
form is re-posted to the given URL in the background.

Also served: GET /healthz and GET /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, flags)
		},
	}
	cmd.Flags().StringVar(&flags.schema, "schema", "", "YAML form schema (required)")
	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "reload the schema when the file changes")
	cmd.Flags().StringVar(&flags.forward, "forward", "", "URL accepted forms are posted to")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

// schemaStore holds the schema currently served. Reloads replace it atomically
// so in-flight requests keep the version they started with.
type schemaStore struct {
	path    string
	current atomic.Pointer[formbind.Schema]
}

func newSchemaStore(path string) (*schemaStore, error) {
	s := &schemaStore{path: path}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *schemaStore) reload() error {
	schema, err := formbind.LoadSchemaFile(s.path)
	if err != nil {
		return err
	}
	s.current.Store(schema)
	return nil
}

func (s *schemaStore) load() *formbind.Schema { return s.current.Load() }

func (a *app) serve(ctx context.Context, flags serveFlags) error {
	store, err := newSchemaStore(flags.schema)
	if err != nil {
		return err
	}

	if flags.watch {
		go func() {
			err := watch.File(ctx, flags.schema, watch.DefaultDebounce, a.log, store.reload)
			if err != nil && !errors.Is(err, context.Canceled) {
				a.log.Error("schema watcher stopped", logger.Error(err))
			}
		}()
	}

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	engineOpts := a.engineOptions()
	if a.cfg.Continuous {
		engineOpts = append(engineOpts, validator.WithContinuous(true))
	}
	if flags.forward != "" {
		target, err := url.Parse(flags.forward)
		if err != nil || target.Scheme == "" || target.Host == "" {
			return fmt.Errorf("invalid forward url %q", flags.forward)
		}
		client := &http.Client{Timeout: forwardTimeout}
		engineOpts = append(engineOpts, validator.WithSubmit(forwardTo(client, target.String(), a.log)))
	}

	router := newRouter(store.load, reg, m, a.log, a.cfg.TrustProxy, engineOpts...)

	var srvOpts []httpserver.Option
	if flags.addr != "" {
		srvOpts = append(srvOpts, httpserver.WithAddr(flags.addr))
	}
	srvOpts = append(srvOpts, httpserver.WithLogger(a.log))
	return httpserver.NewFromConfig(a.cfg.HTTP, srvOpts...).Run(ctx, router)
}

func newRouter(source formbind.SchemaSource, gatherer prometheus.Gatherer, obs formbind.Observer, log *slog.Logger, trustProxy bool, engineOpts ...validator.Option) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware(trustProxy))

	r.Method(http.MethodPost, "/validate", formbind.Handler(source, nil,
		formbind.WithLogger(log),
		formbind.WithObserver(obs),
		formbind.WithEngineOptions(engineOpts...),
	))
	r.Get("/healthz", httpserver.HealthCheckHandler(log, func(context.Context) error {
		if source() == nil {
			return errors.New("schema not loaded")
		}
		return nil
	}))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

// forwardTo returns a submit action that re-posts the accepted form to target
// unchanged, as an url-encoded form. Outside Handler only the validated fields
// are known, so those are sent.
func forwardTo(client *http.Client, target string, log *slog.Logger) validator.SubmitFunc {
	return func(ctx context.Context, fields []validator.Field) {
		values := formbind.SubmittedValues(ctx)
		if values == nil {
			values = url.Values{}
			for _, f := range fields {
				if s, ok := f.Subject.(*formbind.FormSubject); ok {
					values.Add(s.Name(), f.Value)
				}
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(values.Encode()))
		if err != nil {
			log.ErrorContext(ctx, "build forward request", logger.Error(err))
			return
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := client.Do(req)
		if err != nil {
			log.ErrorContext(ctx, "forward form", logger.Error(err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusBadRequest {
			log.WarnContext(ctx, "forward target rejected form", slog.Int("status", resp.StatusCode))
			return
		}
		log.DebugContext(ctx, "form forwarded", slog.Int("status", resp.StatusCode))
	}
}
