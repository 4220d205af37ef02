package manifest

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	mapSuffix   = ".map"
	styleSuffix = ".css"
)

var scriptSuffixes = []string{".js", ".mjs", ".cjs"}

// NormalizeName returns the canonical form of an output file name: forward
// slashes, no leading "./", Unicode NFC.
func NormalizeName(name string) string {
	p := filepath.ToSlash(strings.TrimSpace(name))
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return norm.NFC.String(p)
}

// IsMap reports whether name is a source map.
func IsMap(name string) bool {
	return strings.HasSuffix(name, mapSuffix)
}

// IsScript reports whether name is a script file.
func IsScript(name string) bool {
	for _, s := range scriptSuffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// IsStyle reports whether name is a stylesheet.
func IsStyle(name string) bool {
	return strings.HasSuffix(name, styleSuffix)
}
