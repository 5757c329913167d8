package formbind

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/formrules/pkg/validator"
)

const maxMemory = 10 << 20

// FormSubject is the subject handed to strategies for a field of a submitted form.
type FormSubject struct {
	name   string
	label  string
	values url.Values
}

// NewFormSubject returns the subject for field name within values.
func NewFormSubject(values url.Values, name, label string) *FormSubject {
	return &FormSubject{name: name, label: label, values: values}
}

// Name returns the input name of the field.
func (s *FormSubject) Name() string { return s.name }

// Label returns the display label, falling back to the input name.
func (s *FormSubject) Label() string {
	if s.label != "" {
		return s.label
	}
	return s.name
}

// Checked reports whether the field was submitted with a non-empty value other
// than "off". Browsers omit unchecked checkboxes entirely.
func (s *FormSubject) Checked() bool {
	vs, ok := s.values[s.name]
	if !ok || len(vs) == 0 {
		return false
	}
	v := strings.ToLower(vs[0])
	return v != "" && v != "off"
}

// Lookup resolves a selector to the value of another submitted field.
// Accepted forms: "name", "#name", "[name=name]" with optional quotes, and
// "input[name=name]".
func (s *FormSubject) Lookup(selector string) (string, bool) {
	name := selectorName(selector)
	vs, ok := s.values[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func selectorName(selector string) string {
	sel := strings.TrimSpace(selector)
	if i := strings.Index(sel, "[name="); i >= 0 && strings.HasSuffix(sel, "]") {
		sel = sel[i+len("[name=") : len(sel)-1]
		return strings.Trim(sel, `"'`)
	}
	return strings.TrimPrefix(sel, "#")
}

// ParseForm reads url-encoded or multipart form values from the request body.
func ParseForm(r *http.Request) (url.Values, error) {
	mediaType := r.Header.Get("Content-Type")
	if idx := strings.Index(mediaType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
	case "":
		return nil, fmt.Errorf("%w: missing content type", ErrUnsupportedMediaType)
	default:
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedMediaType, mediaType)
	}
	return r.PostForm, nil
}

// Bind adds every schema field with a rule annotation to the engine, reading
// values from the submitted form. Absent fields are validated as empty strings.
func Bind(e *validator.Engine, s *Schema, values url.Values) {
	for _, f := range s.Fields {
		if strings.TrimSpace(f.Rules) == "" {
			continue
		}
		subject := NewFormSubject(values, f.Name, f.Label)
		e.Add(subject, subject.Label(), f.Rules, values.Get(f.Name))
	}
}
