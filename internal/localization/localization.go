package localization

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed translations/*.yaml
var translationsFS embed.FS

const fallbackLanguage = "en"

// languages the bot speaks; subject-facing messages are sent in both.
var languages = []string{"en", "am"}

type Service struct {
	translations map[string]map[string]interface{}
}

func NewService() (*Service, error) {
	s := &Service{
		translations: make(map[string]map[string]interface{}),
	}

	for _, lang := range languages {
		data, err := translationsFS.ReadFile(fmt.Sprintf("translations/%s.yaml", lang))
		if err != nil {
			return nil, fmt.Errorf("read %s translations: %w", lang, err)
		}

		var translations map[string]interface{}
		if err := yaml.Unmarshal(data, &translations); err != nil {
			return nil, fmt.Errorf("parse %s translations: %w", lang, err)
		}

		s.translations[lang] = translations
	}

	return s, nil
}

// Get retrieves a translation by dotted key ("section.key") for the given
// language, substituting {{name}} placeholders from params. Unknown
// languages fall back to English; unknown keys return the key itself so a
// missing translation is visible, not silent.
func (s *Service) Get(lang, key string, params map[string]any) string {
	langTranslations, ok := s.translations[lang]
	if !ok {
		langTranslations = s.translations[fallbackLanguage]
	}

	parts := strings.Split(key, ".")
	var current interface{} = langTranslations
	for _, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return key
		}
		current = m[part]
	}

	text, ok := current.(string)
	if !ok {
		return key
	}

	for name, value := range params {
		text = strings.ReplaceAll(text, "{{"+name+"}}", fmt.Sprintf("%v", value))
	}
	return text
}

// Bilingual renders a key in every supported language in one message, the
// way the bot talks to subscribers.
func (s *Service) Bilingual(key string, params map[string]any) string {
	rendered := make([]string, 0, len(languages))
	for _, lang := range languages {
		rendered = append(rendered, s.Get(lang, key, params))
	}
	return strings.Join(rendered, "\n\n")
}
