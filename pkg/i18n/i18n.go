package i18n

import (
	"strings"

	"github.com/cloudfoundry/jibber_jabber"
	"github.com/imdario/mergo"
	"github.com/sirupsen/logrus"
)

// NewTranslationSet creates a new Localizer
func NewTranslationSet(log *logrus.Entry, language string) *TranslationSet {
	if language == "auto" || language == "" {
		language = detectLanguage(jibber_jabber.DetectLanguage)
	}

	log.Info("language: " + language)

	baseSet := englishSet()

	for languageCode, translationSet := range GetTranslationSets() {
		if strings.HasPrefix(language, languageCode) {
			_ = mergo.Merge(&baseSet, translationSet, mergo.WithOverride)
		}
	}
	return &baseSet
}

// GetTranslationSets gets all the translation sets, keyed by their language code
func GetTranslationSets() map[string]TranslationSet {
	return map[string]TranslationSet{
		"de": germanSet(),
		"en": englishSet(),
	}
}

// detectLanguage extracts user language from environment
func detectLanguage(langDetector func() (string, error)) string {
	if userLang, err := langDetector(); err == nil {
		return userLang
	}

	return "C"
}
