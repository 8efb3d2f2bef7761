package apiclient

import (
	"bytes"
	"encoding/json"

	"golang.org/x/text/language"

	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

// Envelope is the shape of every backend response.
type Envelope[T any] struct {
	StatusCode int              `json:"statusCode"`
	Message    LocalizedMessage `json:"message"`
	Data       T                `json:"data"`
}

// PageEnvelope is used by list endpoints that send paging fields beside data.
type PageEnvelope[T any] struct {
	StatusCode int              `json:"statusCode"`
	Message    LocalizedMessage `json:"message"`
	Data       []T              `json:"data"`
	models.Pagination
}

// LocalizedMessage carries the uz/en/ru variants of a backend message.
type LocalizedMessage struct {
	Uz string `json:"uz"`
	En string `json:"en"`
	Ru string `json:"ru"`
}

// UnmarshalJSON also accepts a bare string, which validation errors use.
func (m *LocalizedMessage) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = LocalizedMessage{Uz: s, En: s, Ru: s}
		return nil
	}
	if data[0] == '[' {
		var parts []string
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		s := ""
		if len(parts) > 0 {
			s = parts[0]
		}
		*m = LocalizedMessage{Uz: s, En: s, Ru: s}
		return nil
	}

	type plain LocalizedMessage
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = LocalizedMessage(p)
	return nil
}

var supportedLanguages = []language.Tag{language.Uzbek, language.English, language.Russian}

var languageMatcher = language.NewMatcher(supportedLanguages)

// Localize picks the variant matching an Accept-Language header. Uzbek is the
// default, and an empty variant falls back to the first non-empty one.
func (m LocalizedMessage) Localize(acceptLanguage string) string {
	tags, _, _ := language.ParseAcceptLanguage(acceptLanguage)
	_, index, _ := languageMatcher.Match(tags...)

	var picked string
	switch index {
	case 1:
		picked = m.En
	case 2:
		picked = m.Ru
	default:
		picked = m.Uz
	}
	if picked != "" {
		return picked
	}
	return m.Fallback()
}

func (m LocalizedMessage) Fallback() string {
	for _, s := range []string{m.Uz, m.En, m.Ru} {
		if s != "" {
			return s
		}
	}
	return ""
}

func (m LocalizedMessage) IsZero() bool {
	return m.Uz == "" && m.En == "" && m.Ru == ""
}
