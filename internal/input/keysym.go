package input

// keysymForRune maps a rune to its X keysym name under a US layout plus
// whether Shift must be held. Unsupported runes return ok=false.
func keysymForRune(r rune) (name string, shift bool, ok bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return string(r), false, true
	case r >= 'A' && r <= 'Z':
		return string(r + ('a' - 'A')), true, true
	case r >= '0' && r <= '9':
		return string(r), false, true
	}

	if name, ok := punctuation[r]; ok {
		return name.sym, name.shift, true
	}
	return "", false, false
}

type sym struct {
	sym   string
	shift bool
}

// US layout punctuation. Shifted entries live on the same physical key
// as their unshifted keysym, but XTEST takes keysyms directly so each
// rune just names its own.
var punctuation = map[rune]sym{
	' ':  {"space", false},
	'\n': {"Return", false},
	'\t': {"Tab", false},
	'!':  {"exclam", true},
	'"':  {"quotedbl", true},
	'#':  {"numbersign", true},
	'$':  {"dollar", true},
	'%':  {"percent", true},
	'&':  {"ampersand", true},
	'\'': {"apostrophe", false},
	'(':  {"parenleft", true},
	')':  {"parenright", true},
	'*':  {"asterisk", true},
	'+':  {"plus", true},
	',':  {"comma", false},
	'-':  {"minus", false},
	'.':  {"period", false},
	'/':  {"slash", false},
	':':  {"colon", true},
	';':  {"semicolon", false},
	'<':  {"less", true},
	'=':  {"equal", false},
	'>':  {"greater", true},
	'?':  {"question", true},
	'@':  {"at", true},
	'[':  {"bracketleft", false},
	'\\': {"backslash", false},
	']':  {"bracketright", false},
	'^':  {"asciicircum", true},
	'_':  {"underscore", true},
	'`':  {"grave", false},
	'{':  {"braceleft", true},
	'|':  {"bar", true},
	'}':  {"braceright", true},
	'~':  {"asciitilde", true},
}
