package utils

import (
	"errors"
	"io"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	type scenario struct {
		multilineString string
		expected        []string
	}

	scenarios := []scenario{
		{"", []string{}},
		{"\n", []string{}},
		{"hello world !\nhello universe !\n", []string{"hello world !", "hello universe !"}},
		{"a\r\nb", []string{"a", "b"}},
	}

	for _, s := range scenarios {
		assert.EqualValues(t, s.expected, SplitLines(s.multilineString))
	}
}

func TestWithPadding(t *testing.T) {
	assert.Equal(t, "hello ", WithPadding("hello", 6))
	assert.Equal(t, "hello", WithPadding("hello", 3))
	assert.Equal(t, "✓  ", WithPadding("✓", 3))
}

func TestRenderTable(t *testing.T) {
	type scenario struct {
		input       [][]string
		expected    string
		expectedErr bool
	}

	scenarios := []scenario{
		{input: [][]string{{"a", "b"}, {"c", "d"}}, expected: "a b\nc d"},
		{input: [][]string{{"aaaa", "b"}, {"c", "d"}}, expected: "aaaa b\nc    d"},
		{input: [][]string{{"a"}}, expected: "a"},
		{input: [][]string{{"a"}, {"c", "d"}}, expectedErr: true},
		{input: [][]string{}, expected: ""},
	}

	for _, s := range scenarios {
		output, err := RenderTable(s.input)
		if s.expectedErr {
			assert.Error(t, err)
			continue
		}
		assert.NoError(t, err)
		assert.EqualValues(t, s.expected, output)
	}
}

func TestRenderTableIgnoresColorCodes(t *testing.T) {
	colored := ColoredString("web", color.FgGreen)
	rows, err := RenderTableRows([][]string{{colored, "x"}, {"database", "y"}})
	assert.NoError(t, err)
	assert.Equal(t, "web      x", Decolorise(rows[0]))
	assert.Equal(t, "database y", rows[1])
}

func TestApplyTemplate(t *testing.T) {
	output, err := ApplyTemplate("{{ .A }} up {{ .B }}", struct{ A, B string }{"docker compose", "-d"})
	assert.NoError(t, err)
	assert.Equal(t, "docker compose up -d", output)

	_, err = ApplyTemplate("{{ .A ", nil)
	assert.Error(t, err)
}

func TestColoredYamlStringKeepsText(t *testing.T) {
	input := "gui:\n  language: auto\n"
	assert.Equal(t, input, Decolorise(ColoredYamlString(input)))
}

type closer struct{ err error }

func (c closer) Close() error { return c.err }

func TestCloseMany(t *testing.T) {
	boom := errors.New("boom")
	assert.NoError(t, CloseMany([]io.Closer{closer{}, nil}))
	assert.Equal(t, boom, CloseMany([]io.Closer{closer{}, closer{err: boom}}))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-1, 0, 3))
	assert.Equal(t, 3, Clamp(5, 0, 3))
	assert.Equal(t, 2, Clamp(2, 0, 3))
}
