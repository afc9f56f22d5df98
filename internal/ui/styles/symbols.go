package styles

// Symbols holds the markers used in listings.
type Symbols struct {
	Current    string
	Persistent string
	Temporary  string
	Hidden     string
}

var defaultSymbols = Symbols{
	Current:    "→",
	Persistent: "●",
	Temporary:  "○",
	Hidden:     "◌",
}

// CurrentSymbols returns the active symbol set
func CurrentSymbols() Symbols {
	return defaultSymbols
}

// KindSymbol returns the marker for a tempdir kind as reported by
// tempdir.Dir.Kind.
func KindSymbol(kind string) string {
	switch kind {
	case "persistent":
		return defaultSymbols.Persistent
	case "temporary":
		return defaultSymbols.Temporary
	case "hidden":
		return defaultSymbols.Hidden
	default:
		return ""
	}
}

// FormatKind returns the kind prefixed with its marker, styled so that
// persistent tempdirs stand out.
func FormatKind(kind string) string {
	sym := KindSymbol(kind)
	if sym == "" {
		return kind
	}
	text := sym + " " + kind
	switch kind {
	case "persistent":
		return Success().Render(text)
	case "hidden":
		return Muted().Render(text)
	default:
		return text
	}
}
