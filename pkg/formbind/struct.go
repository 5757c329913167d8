package formbind

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrymomot/formrules/pkg/validator"
)

// Struct tags read by AddStruct.
const (
	TagRules = "validate"
	TagLabel = "label"
	TagName  = "form"
)

// StructSubject is the subject for a field of a struct passed to AddStruct.
type StructSubject struct {
	root  reflect.Value
	index int
	label string
}

func (s *StructSubject) Label() string { return s.label }

// Checked reports the value of a bool field. Other kinds report whether the
// field holds a non-zero value.
func (s *StructSubject) Checked() bool {
	f := reflect.Indirect(s.root.Field(s.index))
	if !f.IsValid() {
		return false
	}
	if f.Kind() == reflect.Bool {
		return f.Bool()
	}
	return !f.IsZero()
}

// Lookup finds a sibling field by its form name, Go field name, or "#name".
func (s *StructSubject) Lookup(selector string) (string, bool) {
	name := selectorName(selector)
	rt := s.root.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		if fieldName(sf) == name || sf.Name == name {
			return stringify(s.root.Field(i))
		}
	}
	return "", false
}

// AddStruct adds every exported field of v carrying a `validate` tag to the
// engine, in declaration order. The display name comes from the `label` tag and
// defaults to the form name. v must be a struct or a pointer to one.
//
//	type Signup struct {
//		Username string `form:"username" label:"Username" validate:"required minLength:3"`
//		Password string `form:"password" label:"Password" validate:"required minLength:8"`
//		Confirm  string `form:"confirm" label:"Confirm" validate:"same:password"`
//		Terms    bool   `form:"terms" label:"Terms" validate:"checked"`
//	}
func AddStruct(e *validator.Engine, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return fmt.Errorf("%w: nil pointer", ErrInvalidTarget)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: expected struct, got %s", ErrInvalidTarget, rv.Kind())
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		rules, ok := sf.Tag.Lookup(TagRules)
		if !ok || !sf.IsExported() {
			continue
		}

		value, ok := stringify(rv.Field(i))
		if !ok {
			return fmt.Errorf("%w: field %s: unsupported type %s", ErrInvalidTarget, sf.Name, sf.Type)
		}

		label := sf.Tag.Get(TagLabel)
		if label == "" {
			label = fieldName(sf)
		}
		e.Add(&StructSubject{root: rv, index: i, label: label}, label, rules, value)
	}
	return nil
}

func fieldName(sf reflect.StructField) string {
	tag := sf.Tag.Get(TagName)
	if tag == "" || tag == "-" {
		return strings.ToLower(sf.Name)
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// stringify renders a scalar field the way it would appear in a submitted form.
// Nil pointers render as the empty string.
func stringify(v reflect.Value) (string, bool) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", true
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits()), true
	default:
		return "", false
	}
}
