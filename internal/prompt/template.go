package prompt

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Template is a prompt blueprint with {{name}} placeholders. Placeholder
// names must start with a letter and contain only letters, digits and
// underscores.
type Template struct {
	raw          string
	placeholders []string
}

func Parse(raw string) (*Template, error) {
	seen := map[string]bool{}
	var names []string
	_, err := walk(raw, func(name string) (string, error) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return "{{" + name + "}}", nil
	})
	if err != nil {
		return nil, err
	}
	return &Template{raw: raw, placeholders: names}, nil
}

// Placeholders returns placeholder names in order of first appearance.
func (t *Template) Placeholders() []string {
	out := make([]string, len(t.placeholders))
	copy(out, t.placeholders)
	return out
}

// Render substitutes every placeholder with its value. A placeholder without
// a value is an error; extra values are ignored.
func (t *Template) Render(values map[string]string) (string, error) {
	return walk(t.raw, func(name string) (string, error) {
		v, ok := values[name]
		if !ok {
			return "", fmt.Errorf("unbound placeholder: %s", name)
		}
		return v, nil
	})
}

// walk scans raw for {{name}} tokens and calls resolve for each one.
func walk(raw string, resolve func(name string) (string, error)) (string, error) {
	var b strings.Builder

	for len(raw) > 0 {
		start := strings.Index(raw, "{{")
		if start == -1 {
			b.WriteString(raw)
			break
		}
		b.WriteString(raw[:start])

		end := strings.Index(raw[start:], "}}")
		if end == -1 {
			return "", errors.New("unclosed placeholder: missing '}}'")
		}
		end += start + 2

		name := strings.TrimSpace(raw[start+2 : end-2])
		if !ValidName(name) {
			return "", fmt.Errorf("invalid placeholder name %q", name)
		}

		replacement, err := resolve(name)
		if err != nil {
			return "", err
		}
		b.WriteString(replacement)

		raw = raw[end:]
	}

	return b.String(), nil
}

// ValidName reports whether s can be used as a placeholder name. The dataset
// mapping validator uses it too, so a mapped token always matches a parseable
// placeholder.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
