package prompt

import (
	"strings"
)

// ExtractJSON pulls the JSON payload out of a model reply. Models regularly
// wrap their answer in a ```json fence even when told not to, so look for a
// fenced block first and fall back to stripping stray fences and whitespace.
func ExtractJSON(reply string) string {
	lines := strings.Split(reply, "\n")
	var b strings.Builder
	inBlock := false
	found := false

	for _, line := range lines {
		if !inBlock && strings.TrimSpace(line) == "```json" {
			inBlock = true
			found = true
			continue
		}
		if inBlock && strings.TrimSpace(line) == "```" {
			break
		}
		if inBlock {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(line)
		}
	}

	if found {
		return strings.TrimSpace(b.String())
	}

	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	return strings.TrimSpace(reply)
}
