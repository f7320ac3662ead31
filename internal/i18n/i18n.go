// Package i18n provides the localized default labels of the widget.
// Translations are embedded YAML files loaded with go-i18n; French is the
// default language and the fallback for missing messages.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Message IDs
const (
	ButtonNone     = "multiselect.button.none"
	ButtonSelected = "multiselect.button.selected"
	SelectAll      = "multiselect.select_all"
	DeselectAll    = "multiselect.deselect_all"
	SearchHolder   = "multiselect.search.placeholder"
	NoResults      = "multiselect.no_results"
	NavigationHint = "multiselect.navigation_hint"
	AppTitle       = "app.title"
	AppQuitHint    = "app.quit_hint"
)

// DefaultLang is used when no language is requested
const DefaultLang = "fr"

// localeFS embeds the YAML translation files
//
//go:embed locales/*.yaml
var localeFS embed.FS

// Localizer translates message IDs for one language
type Localizer struct {
	lang      string
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
}

// New loads the embedded locales and returns a localizer for lang.
// Unknown languages fall back to French.
func New(lang string) (*Localizer, error) {
	if lang == "" {
		lang = DefaultLang
	}
	bundle := i18n.NewBundle(language.French)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read locales: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile(path.Join("locales", f.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", f.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, f.Name()); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", f.Name(), err)
		}
	}

	return &Localizer{
		lang:      lang,
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, lang),
	}, nil
}

// MustNew is New for the embedded locales, which are known to parse
func MustNew(lang string) *Localizer {
	l, err := New(lang)
	if err != nil {
		panic(err)
	}
	return l
}

// Lang returns the requested language
func (l *Localizer) Lang() string {
	return l.lang
}

// T translates a message. Missing messages come back as their ID.
func (l *Localizer) T(messageID string) string {
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}

// Plural translates a message with plural forms, exposing count as {{.Count}}
func (l *Localizer) Plural(messageID string, count int) string {
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		PluralCount:  count,
		TemplateData: map[string]interface{}{"Count": count},
	})
	if err != nil {
		return fmt.Sprintf("%s (%d)", messageID, count)
	}
	return msg
}

// Available returns the language tags of the embedded locales
func (l *Localizer) Available() []string {
	tags := l.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.String())
	}
	sort.Strings(out)
	return out
}

// Supported reports whether lang has an embedded locale
func Supported(lang string) bool {
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	for _, have := range MustNew(DefaultLang).Available() {
		if strings.EqualFold(have, base.String()) {
			return true
		}
	}
	return false
}
