package backend

import "strings"

// GMarkup only defines these five entities.
var pangoReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Mirrors Qt's plain-text to rich-text conversion.
var qtReplacer = strings.NewReplacer(
	"\n", "<br>",
	"\t", " ",
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
)

func escapePango(text string) string {
	return pangoReplacer.Replace(text)
}

func escapeQt(text string) string {
	return "<html><body>" + qtReplacer.Replace(text) + "</body></html>"
}

var appleReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// appleString quotes s as an AppleScript string literal.
func appleString(s string) string {
	return `"` + appleReplacer.Replace(s) + `"`
}
