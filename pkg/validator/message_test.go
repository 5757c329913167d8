package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrules/pkg/validator"
)

func TestTemplatesRender(t *testing.T) {
	t.Parallel()

	t.Run("substitutes name and value", func(t *testing.T) {
		tpl := validator.Templates{"minLength": ":name最小长度为:val"}
		msg, err := tpl.Render("minLength", "Password", "4")
		require.NoError(t, err)
		assert.Equal(t, "Password最小长度为4", msg)
	})

	t.Run("absent parameter renders empty", func(t *testing.T) {
		msg, err := validator.DefaultTemplates().Render("length", "Code", "")
		require.NoError(t, err)
		assert.Equal(t, "Code长度为", msg)
	})

	t.Run("only the first occurrence is replaced", func(t *testing.T) {
		tpl := validator.Templates{"x": ":name and :name, :val and :val"}
		msg, err := tpl.Render("x", "A", "1")
		require.NoError(t, err)
		assert.Equal(t, "A and :name, 1 and :val", msg)
	})

	t.Run("placeholder order does not matter", func(t *testing.T) {
		tpl := validator.Templates{"x": "need :val for :name"}
		msg, err := tpl.Render("x", "Age", "18")
		require.NoError(t, err)
		assert.Equal(t, "need 18 for Age", msg)
	})

	t.Run("substituted text is not rescanned", func(t *testing.T) {
		tpl := validator.Templates{"x": ":name=:val"}
		msg, err := tpl.Render("x", "has :val inside", "v")
		require.NoError(t, err)
		assert.Equal(t, "has :val inside=v", msg)
	})

	t.Run("missing template fails", func(t *testing.T) {
		_, err := validator.Templates{}.Render("custom", "Field", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrMissingTemplate)
		assert.Contains(t, err.Error(), `"custom"`)
	})
}

func TestDefaultTemplates(t *testing.T) {
	t.Parallel()

	tpl := validator.DefaultTemplates()
	for _, rule := range validator.New().Registry().Names() {
		assert.Contains(t, tpl, rule, "built-in rule %s has no template", rule)
	}

	tpl["required"] = "changed"
	assert.Equal(t, ":name必填", validator.DefaultTemplates()["required"])
}

func TestLoadTemplates(t *testing.T) {
	t.Parallel()

	t.Run("decodes flat mapping", func(t *testing.T) {
		src := "required: \":name is required\"\nminLength: \":name needs :val characters\"\n"
		tpl, err := validator.LoadTemplates(strings.NewReader(src))
		require.NoError(t, err)
		assert.Equal(t, validator.Templates{
			"required":  ":name is required",
			"minLength": ":name needs :val characters",
		}, tpl)
	})

	t.Run("empty document yields no templates", func(t *testing.T) {
		tpl, err := validator.LoadTemplates(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, tpl)
	})

	t.Run("rejects nested values", func(t *testing.T) {
		_, err := validator.LoadTemplates(strings.NewReader("required:\n  en: x\n"))
		assert.ErrorIs(t, err, validator.ErrInvalidTemplates)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := validator.LoadTemplates(strings.NewReader("required: [unterminated"))
		assert.ErrorIs(t, err, validator.ErrInvalidTemplates)
	})
}
