package textutil

import "strings"

// labelReplacer maps characters that are unsafe or awkward inside segment
// filenames. Path separators and colons become dashes, shell-hostile
// punctuation is dropped, and spaces become underscores so a display name
// stays a single token.
var labelReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	" ", "_",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName converts a voice display name into a form safe to embed
// in a segment filename. Returns "" when nothing usable remains.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.Trim(labelReplacer.Replace(name), "_-")
}
