package i18n

import (
	"errors"
	"testing"

	"github.com/peauc/dcv/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	type scenario struct {
		langDetector func() (string, error)
		expected     string
	}

	scenarios := []scenario{
		{
			func() (string, error) {
				return "", errors.New("an error")
			},
			"C",
		},
		{
			func() (string, error) {
				return "de", nil
			},
			"de",
		},
	}

	for _, s := range scenarios {
		assert.EqualValues(t, s.expected, detectLanguage(s.langDetector))
	}
}

func TestNewTranslationSetFallsBackToEnglish(t *testing.T) {
	german := NewTranslationSet(utils.NewDummyLog(), "de_DE")
	assert.Equal(t, "Komponente", german.ComponentColumn)
	assert.Equal(t, englishSet().Shell, german.Shell, "missing german strings fall back to english")

	english := NewTranslationSet(utils.NewDummyLog(), "fr")
	assert.Equal(t, englishSet(), *english)
}
