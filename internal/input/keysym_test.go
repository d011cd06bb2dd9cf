package input

import "testing"

func TestKeysymForRune(t *testing.T) {
	cases := []struct {
		r     rune
		name  string
		shift bool
	}{
		{'a', "a", false},
		{'z', "z", false},
		{'A', "a", true},
		{'Q', "q", true},
		{'0', "0", false},
		{'7', "7", false},
		{' ', "space", false},
		{'\n', "Return", false},
		{'\t', "Tab", false},
		{'!', "exclam", true},
		{'/', "slash", false},
		{'?', "question", true},
		{'@', "at", true},
		{'_', "underscore", true},
		{'~', "asciitilde", true},
		{'\'', "apostrophe", false},
		{'"', "quotedbl", true},
	}
	for _, tc := range cases {
		name, shift, ok := keysymForRune(tc.r)
		if !ok {
			t.Errorf("keysymForRune(%q): not mapped", tc.r)
			continue
		}
		if name != tc.name || shift != tc.shift {
			t.Errorf("keysymForRune(%q) = (%q, %v), want (%q, %v)", tc.r, name, shift, tc.name, tc.shift)
		}
	}
}

func TestKeysymForRune_Unsupported(t *testing.T) {
	for _, r := range []rune{'é', '→', '\x00', '日'} {
		if _, _, ok := keysymForRune(r); ok {
			t.Errorf("keysymForRune(%q) should not be mapped", r)
		}
	}
}

// All printable ASCII must be typeable.
func TestKeysymForRune_CoversPrintableASCII(t *testing.T) {
	for r := rune(0x20); r < 0x7f; r++ {
		if _, _, ok := keysymForRune(r); !ok {
			t.Errorf("printable ASCII %q has no keysym mapping", r)
		}
	}
}
