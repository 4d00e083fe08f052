package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONFencedBlock(t *testing.T) {
	reply := "Here is my judgment:\n```json\n{\"Correctness\": \"Correct\"}\n```\nHope that helps."
	assert.Equal(t, `{"Correctness": "Correct"}`, ExtractJSON(reply))
}

func TestExtractJSONMultilineBlock(t *testing.T) {
	reply := "```json\n{\n  \"a\": 1\n}\n```"
	assert.Equal(t, "{\n  \"a\": 1\n}", ExtractJSON(reply))
}

func TestExtractJSONBareFences(t *testing.T) {
	reply := "```\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, ExtractJSON(reply))
}

func TestExtractJSONPlain(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, ExtractJSON("  {\"a\": 1}  \n"))
}

func TestExtractJSONEmptyBlock(t *testing.T) {
	assert.Equal(t, "", ExtractJSON("```json\n```"))
}
