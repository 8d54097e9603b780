package archive

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// FileNameFor builds "<name>.<ext>" for an export. The name is NFC-normalized
// so "Spätzle" typed on different platforms yields the same file, and
// characters that cannot appear in a file name are replaced.
func FileNameFor(name, ext string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, norm.NFC.String(name))
	cleaned = strings.Trim(strings.TrimSpace(cleaned), ".")
	if cleaned == "" {
		cleaned = "recipe"
	}
	return cleaned + "." + ext
}

// FileName returns the archive file name for a recipe name.
func FileName(name string) string {
	return FileNameFor(name, Extension)
}
