package cli

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	msgSourceCount = "%d sources, %d enabled"
	msgImported    = "imported %d sources from %s"
	msgModuleCount = "%d modules loaded"
)

func init() {
	if err := errors.Join(
		message.Set(language.English, msgSourceCount,
			plural.Selectf(1, "%d",
				plural.One, "%[1]d source, %[2]d enabled",
				plural.Other, "%[1]d sources, %[2]d enabled")),
		message.Set(language.English, msgImported,
			plural.Selectf(1, "%d",
				plural.One, "imported %[1]d source from %[2]s",
				plural.Other, "imported %[1]d sources from %[2]s")),
		message.Set(language.English, msgModuleCount,
			plural.Selectf(1, "%d",
				plural.One, "%[1]d module loaded",
				plural.Other, "%[1]d modules loaded")),
	); err != nil {
		panic(fmt.Sprintf("registering CLI messages: %v", err))
	}
}

var printer = message.NewPrinter(language.English)

// printf writes a catalog message followed by a newline.
func printf(w io.Writer, key message.Reference, args ...any) {
	printer.Fprintf(w, key, args...)
	io.WriteString(w, "\n")
}
