package validator

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"

	"gopkg.in/yaml.v3"
)

// Message template placeholders.
const (
	NamePlaceholder  = ":name"
	ParamPlaceholder = ":val"
)

// Templates maps rule names to message templates.
type Templates map[string]string

// DefaultTemplates returns a fresh copy of the built-in message templates.
func DefaultTemplates() Templates {
	return Templates{
		"required":  ":name必填",
		"minLength": ":name最小长度为:val",
		"maxLength": ":name最大长度为:val",
		"length":    ":name长度为:val",
		"checked":   "请勾选:name",
		"is":        "请输入合法的:name",
		"selected":  "请选择:name",
		"same":      ":name两次输入不一致",
	}
}

// Merge copies every entry of other into t, overriding existing rules.
func (t Templates) Merge(other Templates) {
	maps.Copy(t, other)
}

// Render expands the template for rule. The first ":name" and the first ":val"
// of the template are replaced in a single pass; substituted text is not
// scanned again.
func (t Templates) Render(rule, name, param string) (string, error) {
	tpl, ok := t[rule]
	if !ok {
		return "", &MissingTemplateError{Rule: rule}
	}
	return substitute(tpl, name, param), nil
}

func substitute(tpl, name, param string) string {
	type hole struct {
		at, width int
		text      string
	}

	var holes []hole
	if i := strings.Index(tpl, NamePlaceholder); i >= 0 {
		holes = append(holes, hole{i, len(NamePlaceholder), name})
	}
	if i := strings.Index(tpl, ParamPlaceholder); i >= 0 {
		holes = append(holes, hole{i, len(ParamPlaceholder), param})
	}
	if len(holes) == 2 && holes[1].at < holes[0].at {
		holes[0], holes[1] = holes[1], holes[0]
	}

	var sb strings.Builder
	sb.Grow(len(tpl) + len(name) + len(param))
	pos := 0
	for _, h := range holes {
		sb.WriteString(tpl[pos:h.at])
		sb.WriteString(h.text)
		pos = h.at + h.width
	}
	sb.WriteString(tpl[pos:])
	return sb.String()
}

// LoadTemplates decodes a flat YAML mapping of rule name to template.
func LoadTemplates(r io.Reader) (Templates, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Templates{}, nil
		}
		return nil, errors.Join(ErrInvalidTemplates, err)
	}

	out := make(Templates, len(raw))
	for rule, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: template for rule %q must be a string, got %T", ErrInvalidTemplates, rule, v)
		}
		out[rule] = s
	}
	return out, nil
}
