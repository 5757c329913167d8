package formbind

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formrules/pkg/validator"
)

// FieldSpec declares one form field: its input name, display label and rule annotation.
type FieldSpec struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
	Rules string `yaml:"rules"`
}

// Schema describes a form: its fields in validation order plus optional
// engine settings.
//
//	continuous: true
//	templates:
//	  required: ":name is required"
//	fields:
//	  - name: username
//	    label: Username
//	    rules: required minLength:3
type Schema struct {
	Continuous bool                `yaml:"continuous"`
	Templates  validator.Templates `yaml:"templates"`
	Fields     []FieldSpec         `yaml:"fields"`
}

// LoadSchema decodes a YAML schema and checks that every field has a name.
func LoadSchema(r io.Reader) (*Schema, error) {
	var s Schema
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrInvalidSchema, err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSchemaFile reads a YAML schema from path.
func LoadSchemaFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schema: %w", err)
	}
	defer f.Close()

	return LoadSchema(f)
}

func (s *Schema) validate() error {
	seen := make(map[string]bool, len(s.Fields))
	for i, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field #%d has no name", ErrInvalidSchema, i+1)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidSchema, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

// EngineOptions returns the validator options carried by the schema.
func (s *Schema) EngineOptions() []validator.Option {
	opts := []validator.Option{validator.WithContinuous(s.Continuous)}
	if len(s.Templates) > 0 {
		opts = append(opts, validator.WithTemplates(s.Templates))
	}
	return opts
}
