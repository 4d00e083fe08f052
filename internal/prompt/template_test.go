package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCollectsPlaceholders(t *testing.T) {
	tmpl, err := Parse("Judge the {{answer}} for {{question}} and again {{answer}}.")
	require.NoError(t, err)
	assert.Equal(t, []string{"answer", "question"}, tmpl.Placeholders())
}

func TestParseNoPlaceholders(t *testing.T) {
	tmpl, err := Parse("static prompt text")
	require.NoError(t, err)
	assert.Empty(t, tmpl.Placeholders())

	out, err := tmpl.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "static prompt text", out)
}

func TestParseUnclosedPlaceholder(t *testing.T) {
	_, err := Parse("broken {{answer")
	assert.ErrorContains(t, err, "unclosed placeholder")
}

func TestParseInvalidName(t *testing.T) {
	cases := []string{"{{1answer}}", "{{an-swer}}", "{{}}", "{{an swer}}"}
	for _, c := range cases {
		_, err := Parse(c)
		assert.Error(t, err, c)
	}
}

func TestRender(t *testing.T) {
	tmpl, err := Parse("Q: {{question}}\nA: {{answer}}")
	require.NoError(t, err)

	out, err := tmpl.Render(map[string]string{
		"question": "2+2?",
		"answer":   "4",
	})
	require.NoError(t, err)
	assert.Equal(t, "Q: 2+2?\nA: 4", out)
}

func TestRenderUnboundPlaceholder(t *testing.T) {
	tmpl, err := Parse("{{question}} {{answer}}")
	require.NoError(t, err)

	_, err = tmpl.Render(map[string]string{"question": "x"})
	assert.ErrorContains(t, err, "unbound placeholder: answer")
}

func TestRenderIgnoresExtraValues(t *testing.T) {
	tmpl, err := Parse("{{a}}")
	require.NoError(t, err)

	out, err := tmpl.Render(map[string]string{"a": "1", "b": "2"})
	require.NoError(t, err)
	assert.Equal(t, "1", out)
}

func TestRenderTrimsNameWhitespace(t *testing.T) {
	tmpl, err := Parse("{{ answer }}")
	require.NoError(t, err)

	out, err := tmpl.Render(map[string]string{"answer": "ok"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}
