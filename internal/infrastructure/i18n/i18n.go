// Package i18n localizes user-facing messages and numbers. Vietnamese is the
// default; English is selected through Accept-Language.
package i18n

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
)

// Supported lists the languages with translations, default first.
var Supported = []language.Tag{language.Vietnamese, language.English}

var (
	matcher  = language.NewMatcher(Supported)
	messages = newCatalog()
)

// Match picks the best supported language for an Accept-Language header.
// An empty or unparsable header selects fallback.
func Match(acceptLanguage string, fallback language.Tag) language.Tag {
	if acceptLanguage == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return Supported[idx]
}

// Parse returns the supported language for a tag such as "vi" or "en-US",
// or the default language when it is not recognised.
func Parse(s string) language.Tag {
	return Match(s, Supported[0])
}

// Localizer formats messages for one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Localizer for tag.
func New(tag language.Tag) *Localizer {
	return &Localizer{tag: tag, printer: message.NewPrinter(tag, message.Catalog(messages))}
}

// Language returns the localizer's language.
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// T translates key. Untranslated keys are returned as is.
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Error translates an error code, falling back to msg when the code has no
// translation.
func (l *Localizer) Error(code, msg string) string {
	key := "error." + code
	if !hasKey(l.tag, key) {
		return msg
	}
	return l.printer.Sprintf(key)
}

// Amount formats a money amount with two decimals and the language's separators.
func (l *Localizer) Amount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return l.printer.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Count formats an integer with grouping separators.
func (l *Localizer) Count(n int) string {
	return l.printer.Sprint(number.Decimal(n))
}

type ctxKey struct{}

// WithLanguage attaches the request language to ctx.
func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, tag)
}

// FromContext returns a Localizer for the language attached to ctx, or the default.
func FromContext(ctx context.Context) *Localizer {
	if tag, ok := ctx.Value(ctxKey{}).(language.Tag); ok {
		return New(tag)
	}
	return New(Supported[0])
}

func hasKey(tag language.Tag, key string) bool {
	if entries, ok := translations[tag]; ok {
		_, ok = entries[key]
		return ok
	}
	_, ok := translations[Supported[0]][key]
	return ok
}

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(Supported[0]))
	for tag, entries := range translations {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}
