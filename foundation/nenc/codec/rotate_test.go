package codec

import (
	"testing"
)

func TestRotateLatin(t *testing.T) {
	tests := []struct {
		name  string
		input string
		shift int
		want  string
	}{
		{"rot13", "Hello, World!", 13, "Uryyb, Jbeyq!"},
		{"wrap upper", "XYZ", 3, "ABC"},
		{"wrap lower", "xyz", 3, "abc"},
		{"negative", "abc", -1, "zab"},
		{"negative upper", "ABC", -1, "ZAB"},
		{"negative past band", "Cb", -10, "Sr"},
		{"full turn", "Hello", 26, "Hello"},
		{"more than a turn", "Hello", 27, "Ifmmp"},
		{"negative more than a turn", "abc", -27, "zab"},
		{"zero", "Hello", 0, "Hello"},
		{"gap untouched", "[\\]^_`", 5, "[\\]^_`"},
		{"digits untouched", "0129 {}", 7, "0129 {}"},
		{"non latin untouched", "\u00e9\u00df\u20ac", 4, "\u00e9\u00df\u20ac"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rotate(tt.input, tt.shift, false)
			if err != nil {
				t.Fatalf("Rotate(%q, %d) error = %v", tt.input, tt.shift, err)
			}
			if got != tt.want {
				t.Errorf("Rotate(%q, %d) = %q, want %q", tt.input, tt.shift, got, tt.want)
			}
		})
	}
}

func TestRotateLatinDoubleRot13IsIdentity(t *testing.T) {
	for _, s := range []string{"abcdefghijklmnopqrstuvwxyz", "ABCDEFGHIJKLMNOPQRSTUVWXYZ", "TheQuickBrownFox"} {
		once, _ := Rotate(s, 13, false)
		twice, _ := Rotate(once, 13, false)
		if twice != s {
			t.Errorf("rot13(rot13(%q)) = %q", s, twice)
		}
	}
}

func TestRotateFullCharset(t *testing.T) {
	tests := []struct {
		name  string
		input string
		shift int
		want  string
	}{
		{"forward", "abc", 1, "bcd"},
		{"crosses band", "z", 1, "{"},
		{"backward", "B", -1, "A"},
		{"to zero", "A", -65, "\x00"},
		{"below zero", "A", -66, "\ufffd"},
		{"into surrogates", "\ud7ff", 1, "\ufffd"},
		{"zero", "Hello", 0, "Hello"},
		{"large shift", "A", 26 * 3, "\u008f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rotate(tt.input, tt.shift, true)
			if err != nil {
				t.Fatalf("Rotate(%q, %d, full) error = %v", tt.input, tt.shift, err)
			}
			if got != tt.want {
				t.Errorf("Rotate(%q, %d, full) = %q, want %q", tt.input, tt.shift, got, tt.want)
			}
		})
	}
}

func TestRotateFullCharsetInverse(t *testing.T) {
	for _, s := range []string{"Hello, World!", "~ tilde and space", "\u00fcmlaut"} {
		there, _ := Rotate(s, 5, true)
		back, _ := Rotate(there, -5, true)
		if back != s {
			t.Errorf("rot-5a(rot5a(%q)) = %q", s, back)
		}
	}
}
