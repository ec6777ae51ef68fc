package textutil

import (
	"path/filepath"
	"strings"
)

// dirNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var dirNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeDirName replaces filesystem-unsafe characters in a directory name.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. Leading/trailing whitespace and dots are trimmed so
// the result is never hidden or empty-looking on any platform. An album name
// that sanitizes to nothing yields "untitled".
func SanitizeDirName(name string) string {
	name = strings.TrimSpace(name)
	name = dirNameReplacer.Replace(name)
	name = strings.Trim(name, " .")
	if name == "" {
		return "untitled"
	}
	return name
}

// Stem returns the lower-cased filename without its extension. This is the
// key used to match exported files against catalog assets: Lightroom rewrites
// photo extensions to .jpg on export, so only the base name is stable.
func Stem(filename string) string {
	base := filepath.Base(filename)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
