package i18n

import (
	"embed"
	"encoding/json"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

// Translator renders panel labels in the language a request asks for.
type Translator struct {
	bundle  *i18n.Bundle
	tags    []language.Tag
	matcher language.Matcher

	mu         sync.RWMutex
	localizers map[language.Tag]*i18n.Localizer
}

func New() (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read locales")
	}
	for _, e := range entries {
		if _, err := bundle.LoadMessageFileFS(locales, "locales/"+e.Name()); err != nil {
			return nil, errors.Wrapf(err, "failed to load %s", e.Name())
		}
	}

	// The fallback language goes first so an unmatched header lands on it.
	tags := []language.Tag{language.English}
	for _, tag := range bundle.LanguageTags() {
		if tag != language.English {
			tags = append(tags, tag)
		}
	}

	return &Translator{
		bundle:     bundle,
		tags:       tags,
		matcher:    language.NewMatcher(tags),
		localizers: make(map[language.Tag]*i18n.Localizer, len(tags)),
	}, nil
}

// match picks the supported language that best fits acceptLanguage.
func (t *Translator) match(acceptLanguage string) language.Tag {
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		log.Debug().Err(err).Str("acceptLanguage", acceptLanguage).Msg("Ignoring malformed Accept-Language")
		return t.tags[0]
	}
	_, idx, _ := t.matcher.Match(prefs...)
	return t.tags[idx]
}

// localizer returns the cached localizer for the matched language. The
// cache holds at most one entry per supported language.
func (t *Translator) localizer(acceptLanguage string) *i18n.Localizer {
	tag := t.match(acceptLanguage)

	t.mu.RLock()
	l, ok := t.localizers[tag]
	t.mu.RUnlock()
	if ok {
		return l
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if l, ok := t.localizers[tag]; ok {
		return l
	}
	l = i18n.NewLocalizer(t.bundle, tag.String())
	t.localizers[tag] = l
	return l
}

// T returns the message id in the best language for acceptLanguage.
// Unknown ids come back unchanged.
func (t *Translator) T(acceptLanguage, id string, data map[string]any) string {
	msg, err := t.localizer(acceptLanguage).Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		log.Error().Err(err).Str("messageID", id).Msg("Failed to localize message")
		return id
	}
	return msg
}

// Labels returns the profile panel labels translated for acceptLanguage.
func (t *Translator) Labels(acceptLanguage string, data map[string]any) map[string]string {
	ids := []string{"PanelTitle", "PanelTimezone", "PanelNone", "PanelSave", "PanelCurrent"}
	labels := make(map[string]string, len(ids))
	for _, id := range ids {
		labels[id] = t.T(acceptLanguage, id, data)
	}
	return labels
}
