// Package locale translates the fixed labels shown by the CLI.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/parish/internal/domain"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLanguage is used when a requested language has no message file.
const DefaultLanguage = "en"

// Message ids.
const (
	MsgNextMass      = "mass.next"
	MsgLive          = "mass.live"
	MsgNoMass        = "mass.none"
	MsgNotLive       = "mass.not_live"
	MsgStartsIn      = "mass.starts_in"
	MsgStarted       = "mass.started"
	MsgWeek          = "mass.week"
	MsgDays          = "countdown.days"
	MsgHours         = "countdown.hours"
	MsgMinutes       = "countdown.minutes"
	MsgSeconds       = "countdown.seconds"
	MsgQuit          = "watch.quit"
	MsgDismiss       = "watch.dismiss"
	MsgReload        = "watch.reload"
	MsgHelp          = "watch.help"
	weekdayKeyPrefix = "weekday."
)

// Translator resolves message ids for one language.
type Translator struct {
	lang      string
	localizer *i18n.Localizer
}

// Supported lists the languages with an embedded message file, sorted.
func Supported() []string {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return []string{DefaultLanguage}
	}
	var langs []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			continue
		}
		langs = append(langs, strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json"))
	}
	slices.Sort(langs)
	return langs
}

func newBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, lang := range Supported() {
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/active."+lang+".json"); err != nil {
			return nil, fmt.Errorf("loading %s messages: %w", lang, err)
		}
	}
	return bundle, nil
}

// New returns a translator for lang (a BCP 47 tag such as "es" or "es-MX").
// Unknown or unsupported languages fall back to English.
func New(lang string) (*Translator, error) {
	bundle, err := newBundle()
	if err != nil {
		return nil, err
	}
	resolved := DefaultLanguage
	if tag, err := language.Parse(lang); err == nil {
		base, _ := tag.Base()
		if slices.Contains(Supported(), base.String()) {
			resolved = base.String()
		}
	}
	return &Translator{
		lang:      resolved,
		localizer: i18n.NewLocalizer(bundle, resolved, DefaultLanguage),
	}, nil
}

// MustNew is New for callers that only pass known-good languages.
func MustNew(lang string) *Translator {
	t, err := New(lang)
	if err != nil {
		panic(err)
	}
	return t
}

// Language returns the resolved language code.
func (t *Translator) Language() string {
	return t.lang
}

// Msg translates id, returning id itself when no translation exists.
func (t *Translator) Msg(id string) string {
	return t.Msgf(id, nil)
}

// Msgf translates id with template data.
func (t *Translator) Msgf(id string, data map[string]any) string {
	if t == nil || t.localizer == nil {
		return id
	}
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		return id
	}
	return msg
}

// Weekday returns the localised name of d.
func (t *Translator) Weekday(d domain.Weekday) string {
	if !d.Valid() {
		return d.String()
	}
	id := weekdayKeyPrefix + strings.ToLower(d.String())
	if msg := t.Msg(id); msg != id {
		return msg
	}
	return d.String()
}
