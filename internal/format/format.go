package format

import (
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
)

// SanitizeName replaces characters that are problematic in file paths
// Replaces: / \ : * ? " < > | with -
func SanitizeName(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "-",
		"<", "-",
		">", "-",
		"|", "-",
	)
	name = replacer.Replace(name)
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(strings.TrimLeft(name, "."))
}

// Stem returns the file name without directory and extensions,
// e.g. "/dl/report.tar.gz" -> "report". Hidden files keep their name
// minus the leading dot.
func Stem(path string) string {
	base := strings.TrimLeft(filepath.Base(path), ".")
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

// NameFromFile derives a tempdir name from a downloaded file.
// Returns "" when nothing usable is left.
func NameFromFile(path string) string {
	return SanitizeName(Stem(path))
}

// Age formats t relative to now ("3 hours ago").
func Age(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Size formats a byte count ("1.2 MB"). Negative sizes mean unknown.
func Size(n int64) string {
	if n < 0 {
		return "?"
	}
	return humanize.Bytes(uint64(n))
}
