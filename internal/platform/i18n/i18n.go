// Package i18n resolves request locales and formats numbers for them.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

var (
	supportedTags = []language.Tag{language.AmericanEnglish, language.BrazilianPortuguese}
	matcher       = language.NewMatcher(supportedTags)
)

// SupportedTags returns the locales numbers can be formatted for.
func SupportedTags() []language.Tag {
	return append([]language.Tag(nil), supportedTags...)
}

// DefaultTag returns the fallback locale.
func DefaultTag() language.Tag {
	return supportedTags[0]
}

// ParseTag parses value and matches it to a supported locale. ok is false for
// unparseable values and for matches below high confidence.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence < language.High {
		return DefaultTag(), false
	}
	return supportedTags[idx], true
}

// MatchTags returns the best supported locale for an ordered preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supportedTags[idx]
}

// ResolveTag picks the locale for r: the lang query parameter wins over
// Accept-Language.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return DefaultTag()
	}
	if tag, ok := ParseTag(r.URL.Query().Get(LangParam)); ok {
		return tag
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return MatchTags(tags)
		}
	}
	return DefaultTag()
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// Mass formats a payload mass mark such as "2,000 Kg".
func Mass(p *message.Printer, kg int) string {
	if p == nil {
		p = Printer(DefaultTag())
	}
	return p.Sprintf("%d Kg", kg)
}

// Percent formats a ratio in [0, 1] as a percentage with one decimal.
func Percent(p *message.Printer, ratio float64) string {
	if p == nil {
		p = Printer(DefaultTag())
	}
	return p.Sprintf("%.1f%%", ratio*100)
}

// Count formats an integer with locale grouping.
func Count(p *message.Printer, n int) string {
	if p == nil {
		p = Printer(DefaultTag())
	}
	return p.Sprintf("%d", n)
}
