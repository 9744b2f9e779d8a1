package bib

import "testing"

func TestDecodeLaTeX(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Plain Title", "Plain Title"},
		{"acute braced", `Garc{\'\i}a`, "García"},
		{"acute bare", `Caf\'e`, "Café"},
		{"umlaut braced", `M\"{u}ller`, "Müller"},
		{"grave", `\` + "`" + `a la carte`, "à la carte"},
		{"tilde accent", `Pe\~na`, "Peña"},
		{"cedilla", `Fran\c{c}ois`, "François"},
		{"caron with space", `\v s`, "š"},
		{"sharp s", `Stra\ss{}e`, "Straße"},
		{"slashed o", `{\O}stergaard`, "Østergaard"},
		{"grouping braces dropped", `The {GNU} Way`, "The GNU Way"},
		{"ampersand left alone", `Politics \& Society`, `Politics \& Society`},
		{"emph left alone", `\emph{Word}`, `\emphWord`},
		{"ldots not a symbol", `\ldots`, `\ldots`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeLaTeX(tt.in); got != tt.want {
				t.Errorf("DecodeLaTeX(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
