package utils

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/fatih/color"
	gookitcolor "github.com/gookit/color"
	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"
)

// SplitLines takes a multiline string and splits it on newlines
// currently we are also stripping \r's which may have adverse effects for
// windows users (but no issues have been raised yet)
func SplitLines(multilineString string) []string {
	multilineString = strings.Replace(multilineString, "\r", "", -1)
	if multilineString == "" || multilineString == "\n" {
		return make([]string, 0)
	}
	lines := strings.Split(multilineString, "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}
	return lines
}

// WithPadding pads a string as much as you want
func WithPadding(str string, padding int) string {
	uncoloredStr := Decolorise(str)
	width := runewidth.StringWidth(uncoloredStr)
	if padding < width {
		return str
	}
	return str + strings.Repeat(" ", padding-width)
}

// ColoredString takes a string and a colour attribute and returns a colored
// string with that attribute
func ColoredString(str string, colorAttribute color.Attribute) string {
	colour := color.New(colorAttribute)
	return ColoredStringDirect(str, colour)
}

// ColoredStringDirect used for aggregating a few color attributes rather than
// just sending a single one
func ColoredStringDirect(str string, colour *color.Color) string {
	return colour.SprintFunc()(fmt.Sprint(str))
}

// NewDummyLog creates a new dummy Log for testing
func NewDummyLog() *logrus.Entry {
	log := logrus.New()
	log.Out = io.Discard
	return log.WithField("test", "test")
}

// Decolorise strips a string of color
func Decolorise(str string) string {
	re := regexp.MustCompile(`\x1B\[([0-9]{1,3}(;[0-9]{1,3})*)?[mGK]`)
	return re.ReplaceAllString(str, "")
}

// RenderTable takes an array of string arrays and returns a table containing
// the values. Every row is padded to the widest cell of each column.
func RenderTable(rows [][]string) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}
	if !displayArraysAligned(rows) {
		return "", fmt.Errorf("each item must return the same number of strings to display")
	}

	columnPadWidths := getPadWidths(rows)
	paddedDisplayRows := getPaddedDisplayStrings(rows, columnPadWidths)

	return strings.Join(paddedDisplayRows, "\n"), nil
}

// RenderTableRows is RenderTable returning one string per row.
func RenderTableRows(rows [][]string) ([]string, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	if !displayArraysAligned(rows) {
		return nil, fmt.Errorf("each item must return the same number of strings to display")
	}
	return getPaddedDisplayStrings(rows, getPadWidths(rows)), nil
}

func getPadWidths(rows [][]string) []int {
	if len(rows[0]) <= 1 {
		return []int{}
	}
	columnPadWidths := make([]int, len(rows[0])-1)
	for i := range columnPadWidths {
		for _, cells := range rows {
			uncoloredCell := Decolorise(cells[i])

			if runewidth.StringWidth(uncoloredCell) > columnPadWidths[i] {
				columnPadWidths[i] = runewidth.StringWidth(uncoloredCell)
			}
		}
	}
	return columnPadWidths
}

func getPaddedDisplayStrings(rows [][]string, columnPadWidths []int) []string {
	paddedDisplayRows := make([]string, len(rows))
	for i, cells := range rows {
		for j, columnPadWidth := range columnPadWidths {
			paddedDisplayRows[i] += WithPadding(cells[j], columnPadWidth) + " "
		}
		paddedDisplayRows[i] += cells[len(columnPadWidths)]
	}
	return paddedDisplayRows
}

// displayArraysAligned returns true if every string array returned from our
// list of displayables has the same length
func displayArraysAligned(stringArrays [][]string) bool {
	for _, strings := range stringArrays {
		if len(strings) != len(stringArrays[0]) {
			return false
		}
	}
	return true
}

// ApplyTemplate renders a command template against an object
func ApplyTemplate(str string, object interface{}) (string, error) {
	var buf bytes.Buffer
	tmpl, err := template.New("").Parse(str)
	if err != nil {
		return "", err
	}
	if err := tmpl.Execute(&buf, object); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ColoredYamlString takes an YAML formatted string and returns a colored
// string with keys in blue and values in yellow
func ColoredYamlString(str string) string {
	re := regexp.MustCompile(`(?m)^(\s*)([^\s:#-][^:#]*):( |$)(.*)$`)
	return re.ReplaceAllStringFunc(str, func(line string) string {
		parts := re.FindStringSubmatch(line)
		value := parts[4]
		if value != "" {
			value = gookitcolor.FgYellow.Render(value)
		}
		return parts[1] + gookitcolor.FgBlue.Render(parts[2]) + ":" + parts[3] + value
	})
}

// CloseMany closes a slice of closers and returns the first error
func CloseMany(closers []io.Closer) error {
	errs := make([]error, 0, len(closers))
	for _, c := range closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Clamp keeps value within [low, high].
func Clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
