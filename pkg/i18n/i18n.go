package i18n

import (
	"embed"
	"encoding/json"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

type Translator struct {
	bundle *goi18n.Bundle
}

// New loads the embedded locale files. English is the default language.
func New() (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, path := range []string{"locales/active.en.json", "locales/active.fr.json"} {
		if _, err := bundle.LoadMessageFileFS(locales, path); err != nil {
			return nil, err
		}
	}

	return &Translator{bundle: bundle}, nil
}

// Localize returns the message for id in the first matching language
// (values as found in Accept-Language), or fallback when id is unknown.
func (t *Translator) Localize(id, fallback string, langs ...string) string {
	if t == nil {
		return fallback
	}
	msg, err := goi18n.NewLocalizer(t.bundle, langs...).Localize(&goi18n.LocalizeConfig{
		MessageID: id,
	})
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}
