package sanitize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  Olá   equipe ", want: "Olá equipe"},
		{in: "<b>PGR</b> pronto?", want: "PGR pronto?"},
		{in: "&lt;script&gt;alert(1)&lt;/script&gt;ok", want: "alert(1)ok"},
		{in: "linha 1\nlinha 2", want: "linha 1\nlinha 2"},
		{in: "   ", want: ""},
	}

	for _, tt := range tests {
		if got := Text(tt.in); got != tt.want {
			t.Fatalf("Text(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLineCollapsesNewlines(t *testing.T) {
	if got := Line(" Planilha\nM1.xlsx "); got != "Planilha M1.xlsx" {
		t.Fatalf("unexpected result %q", got)
	}
}
