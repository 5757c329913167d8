package formbind

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/dmitrymomot/formrules/pkg/clientip"
	"github.com/dmitrymomot/formrules/pkg/logger"
	"github.com/dmitrymomot/formrules/pkg/requestid"
	"github.com/dmitrymomot/formrules/pkg/validator"
)

// Observer is notified after every completed validation pass.
type Observer interface {
	ObservePass(failed bool, errs validator.ValidationErrors)
}

// SchemaSource returns the schema to validate the current request against.
type SchemaSource func() *Schema

// Static returns a SchemaSource that always yields s.
func Static(s *Schema) SchemaSource {
	return func() *Schema { return s }
}

// HandlerOption configures Handler.
type HandlerOption func(*handler)

// WithEngineOptions adds validator options applied to each per-request engine,
// after the schema's own options.
func WithEngineOptions(opts ...validator.Option) HandlerOption {
	return func(h *handler) { h.engineOpts = append(h.engineOpts, opts...) }
}

// WithLogger sets the logger used for request diagnostics and engine output.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(h *handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithObserver registers an observer for completed passes.
func WithObserver(o Observer) HandlerOption {
	return func(h *handler) { h.observer = o }
}

type handler struct {
	source     SchemaSource
	next       http.Handler
	engineOpts []validator.Option
	logger     *slog.Logger
	observer   Observer
}

// ErrorResponse is the JSON body written for rejected submissions.
type ErrorResponse struct {
	Error     string              `json:"error"`
	Errors    map[string][]string `json:"errors,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

// Handler validates submitted forms against the schema.
//
// A failing submission is answered with 422 and the rendered messages; next is
// not called. A passing submission is handed to the engine's submit action when
// one is configured: the action runs in the background and the client gets 202.
// Without a submit action the request proceeds to next. next may be nil, in
// which case passing submissions get 204.
func Handler(source SchemaSource, next http.Handler, opts ...HandlerOption) http.Handler {
	h := &handler{
		source: source,
		next:   next,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Validate parses the submitted form of r and runs one pass of s against it
// under the schema's default policy. Form decoding errors wrap ErrInvalidForm
// or ErrUnsupportedMediaType, a nil schema yields ErrNoSchema; any other error
// is a rule configuration error.
func Validate(r *http.Request, s *Schema, opts ...validator.Option) (*validator.Engine, bool, error) {
	if s == nil {
		return nil, false, ErrNoSchema
	}

	values, err := ParseForm(r)
	if err != nil {
		return nil, false, err
	}

	engine := validator.New(append(s.EngineOptions(), opts...)...)
	Bind(engine, s, values)

	failed, err := engine.Validate()
	if err != nil {
		return nil, false, err
	}
	return engine, failed, nil
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestid.FromContext(ctx)
	log := h.logger.With(logger.RequestID(reqID))
	if ip := clientip.FromContext(ctx); ip != "" {
		log = log.With(logger.ClientIP(ip))
	}

	opts := append([]validator.Option{validator.WithLogger(log)}, h.engineOpts...)
	engine, failed, err := Validate(r, h.source(), opts...)
	switch {
	case errors.Is(err, ErrUnsupportedMediaType):
		writeJSON(w, http.StatusUnsupportedMediaType, ErrorResponse{Error: err.Error(), RequestID: reqID})
		return
	case errors.Is(err, ErrInvalidForm):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), RequestID: reqID})
		return
	case errors.Is(err, ErrNoSchema):
		log.WarnContext(ctx, "form submitted before a schema was loaded")
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: err.Error(), RequestID: reqID})
		return
	case err != nil:
		log.ErrorContext(ctx, "form validation misconfigured", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "validation misconfigured", RequestID: reqID})
		return
	}

	errs := engine.Errors()
	if h.observer != nil {
		h.observer.ObservePass(failed, errs)
	}

	if failed {
		log.InfoContext(ctx, "form rejected", slog.Int("failures", len(errs)))
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:     "validation failed",
			Errors:    errs.Map(),
			RequestID: reqID,
		})
		return
	}

	if submit := engine.Submit(); submit != nil {
		fields := engine.Fields()
		submitCtx := withSubmittedValues(context.WithoutCancel(ctx), cloneValues(r.PostForm))
		go submit(submitCtx, fields)
		w.WriteHeader(http.StatusAccepted)
		return
	}

	if h.next == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.next.ServeHTTP(w, r)
}

type submittedValuesKey struct{}

func withSubmittedValues(ctx context.Context, values url.Values) context.Context {
	return context.WithValue(ctx, submittedValuesKey{}, values)
}

// SubmittedValues returns the complete submitted form a submit action was
// started for, including fields without rules and every value of repeated
// keys. It returns nil outside a submit action started by Handler.
func SubmittedValues(ctx context.Context) url.Values {
	values, _ := ctx.Value(submittedValuesKey{}).(url.Values)
	return values
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, vs := range values {
		out[k] = slices.Clone(vs)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
