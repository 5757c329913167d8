package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrules/pkg/formbind"
	"github.com/dmitrymomot/formrules/pkg/logger"
	"github.com/dmitrymomot/formrules/pkg/metrics"
	"github.com/dmitrymomot/formrules/pkg/validator"
)

func newTestRouter(t *testing.T, source formbind.SchemaSource, opts ...validator.Option) (http.Handler, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)
	return newRouter(source, reg, m, logger.Discard(), false, opts...), reg
}

func post(h http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/validate", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter(t *testing.T) {
	t.Parallel()

	schema, err := formbind.LoadSchema(strings.NewReader(signupSchema))
	require.NoError(t, err)

	t.Run("validate endpoint and metrics", func(t *testing.T) {
		h, _ := newTestRouter(t, formbind.Static(schema))

		rec := post(h, url.Values{"username": {"jo"}})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		assert.Contains(t, rec.Body.String(), "用户名最小长度为3")

		rec = post(h, url.Values{
			"username": {"john"}, "password": {"abc123"}, "confirm": {"abc123"}, "terms": {"on"},
		})
		assert.Equal(t, http.StatusNoContent, rec.Code)

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		mrec := httptest.NewRecorder()
		h.ServeHTTP(mrec, req)
		require.Equal(t, http.StatusOK, mrec.Code)
		body := mrec.Body.String()
		assert.Contains(t, body, `formrules_passes_total{result="failed"} 1`)
		assert.Contains(t, body, `formrules_passes_total{result="passed"} 1`)
		assert.Contains(t, body, `formrules_rule_failures_total{rule="minLength"} 1`)
	})

	t.Run("validate rejects other methods", func(t *testing.T) {
		h, _ := newTestRouter(t, formbind.Static(schema))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/validate", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("healthz reports schema readiness", func(t *testing.T) {
		h, _ := newTestRouter(t, formbind.Static(schema))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "READY", rec.Body.String())

		h, _ = newTestRouter(t, func() *formbind.Schema { return nil })
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestForwardTo(t *testing.T) {
	t.Parallel()

	received := make(chan url.Values, 1)
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		received <- r.PostForm
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(target.Close)

	values := url.Values{"username": {"john"}, "terms": {"on"}}
	e := validator.New()
	e.Add(formbind.NewFormSubject(values, "username", "用户名"), "", "required", "john")
	e.Add(formbind.NewFormSubject(values, "terms", "协议"), "", "checked", "on")

	submit := forwardTo(target.Client(), target.URL, logger.Discard())
	submit(context.Background(), e.Fields())

	select {
	case got := <-received:
		assert.Equal(t, "john", got.Get("username"))
		assert.Equal(t, "on", got.Get("terms"))
	case <-time.After(time.Second):
		t.Fatal("form was not forwarded")
	}
}

func TestForwardToThroughRouter(t *testing.T) {
	t.Parallel()

	received := make(chan url.Values, 1)
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		received <- r.PostForm
	}))
	t.Cleanup(target.Close)

	schema := &formbind.Schema{Fields: []formbind.FieldSpec{
		{Name: "username", Rules: "required"},
		{Name: "comment"},
	}}
	h, _ := newTestRouter(t, formbind.Static(schema),
		validator.WithSubmit(forwardTo(target.Client(), target.URL, logger.Discard())))

	submitted := url.Values{
		"username": {"jo"},
		"comment":  {"hi"},
		"tags":     {"a", "b"},
	}
	rec := post(h, submitted)
	require.Equal(t, http.StatusAccepted, rec.Code)

	select {
	case got := <-received:
		assert.Equal(t, submitted, got)
	case <-time.After(time.Second):
		t.Fatal("form was not forwarded")
	}
}

func TestSchemaStore(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "form.yaml", "fields:\n  - name: a\n    rules: required\n")
	store, err := newSchemaStore(path)
	require.NoError(t, err)
	require.Len(t, store.load().Fields, 1)

	require.NoError(t, os.WriteFile(path, []byte("fields:\n  - name: a\n  - name: b\n"), 0o600))
	require.NoError(t, store.reload())
	assert.Len(t, store.load().Fields, 2)

	require.NoError(t, os.WriteFile(path, []byte("fields:\n  - label: nameless\n"), 0o600))
	assert.ErrorIs(t, store.reload(), formbind.ErrInvalidSchema)
	assert.Len(t, store.load().Fields, 2, "failed reload keeps the previous schema")

	_, err = newSchemaStore(path)
	assert.Error(t, err)
}
