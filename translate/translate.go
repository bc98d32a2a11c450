// Package translate formats user-facing messages for the user's locale.
package translate

import (
	"github.com/jeandeaual/go-locale"
	"github.com/sirupsen/logrus"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:generate go tool gotext -srclang=en-US update -out=catalog.go -lang=en-US github.com/ezrec/accum/cpu github.com/ezrec/accum/io github.com/ezrec/accum/emulator github.com/ezrec/accum/cmd/accum

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		logrus.WithError(err).Debug("accum: locale")
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// SetLanguage replaces the printer with one for a specific language tag.
// An unparsable tag leaves the current printer in place.
func SetLanguage(tag string) (err error) {
	lang, err := language.Parse(tag)
	if err != nil {
		return
	}

	printer = message.NewPrinter(lang)
	return
}
