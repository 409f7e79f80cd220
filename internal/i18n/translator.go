package i18n

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"

	"github.com/noah-isme/course-agenda-api/internal/agenda"
)

// Bundle holds a translator per supported language.
type Bundle struct {
	uni         *ut.UniversalTranslator
	defaultLang string
	location    *time.Location
}

// NewBundle loads the catalogs. Dates are rendered in location.
func NewBundle(defaultLang string, location *time.Location) (*Bundle, error) {
	if location == nil {
		location = time.UTC
	}

	fallback := en.New()
	uni := ut.New(fallback, fallback, es.New())

	for lang, messages := range catalogs {
		trans, ok := uni.GetTranslator(lang)
		if !ok {
			return nil, fmt.Errorf("locale %q is not registered", lang)
		}
		for key, text := range messages {
			if err := trans.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("add %s translation %q: %w", lang, key, err)
			}
		}
	}

	defaultLang = normalize(defaultLang)
	if _, ok := catalogs[defaultLang]; !ok {
		defaultLang = "en"
	}

	return &Bundle{uni: uni, defaultLang: defaultLang, location: location}, nil
}

// Languages lists the supported language tags.
func (b *Bundle) Languages() []string {
	langs := make([]string, 0, len(catalogs))
	for lang := range catalogs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Supports reports whether lang has a catalog.
func (b *Bundle) Supports(lang string) bool {
	_, ok := catalogs[normalize(lang)]
	return ok
}

// Locale returns the translator for lang, falling back to the default
// language for unknown tags.
func (b *Bundle) Locale(lang string) *Translator {
	lang = normalize(lang)
	if !b.Supports(lang) {
		lang = b.defaultLang
	}
	trans, _ := b.uni.GetTranslator(lang)
	return &Translator{trans: trans, lang: lang, location: b.location}
}

func normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if idx := strings.IndexAny(lang, "-_"); idx > 0 {
		lang = lang[:idx]
	}
	return lang
}

// Translator implements agenda.Locale for one language.
type Translator struct {
	trans    ut.Translator
	lang     string
	location *time.Location
}

var _ agenda.Locale = (*Translator)(nil)

// Lang returns the language tag of t.
func (t *Translator) Lang() string {
	return t.lang
}

// Location implements agenda.Locale.
func (t *Translator) Location() *time.Location {
	return t.location
}

// FormatDate implements agenda.Locale.
func (t *Translator) FormatDate(ts time.Time) string {
	return t.cldr().FmtDateMedium(ts.In(t.location))
}

// FormatTime implements agenda.Locale.
func (t *Translator) FormatTime(ts time.Time) string {
	return t.cldr().FmtTimeShort(ts.In(t.location))
}

// FormatDateTime implements agenda.Locale.
func (t *Translator) FormatDateTime(ts time.Time) string {
	return t.FormatDate(ts) + " " + t.FormatTime(ts)
}

// FormatNumber renders value with the locale's decimal separator.
func (t *Translator) FormatNumber(value float64, decimals int) string {
	return t.cldr().FmtNumber(value, uint64(decimals))
}

// Text implements agenda.Locale. Unknown keys render as the key itself.
func (t *Translator) Text(key string, params ...string) string {
	if want := placeholders(t.lang, key); len(params) < want {
		params = append(params, make([]string, want-len(params))...)
	}
	text, err := t.trans.T(key, params...)
	if err != nil {
		return key
	}
	return text
}

func (t *Translator) cldr() locales.Translator {
	return t.trans
}

func placeholders(lang, key string) int {
	text, ok := catalogs[lang][key]
	if !ok {
		return 0
	}
	count := 0
	for strings.Contains(text, fmt.Sprintf("{%d}", count)) {
		count++
	}
	return count
}
