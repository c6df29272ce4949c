package markup

import "testing"

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain", input: "hello", want: "hello"},
		{name: "bold", input: "**Deforestation** is", want: "<strong>Deforestation</strong> is"},
		{name: "italic", input: "an *example*", want: "an <em>example</em>"},
		{name: "underline", input: "__note__", want: "<u>note</u>"},
		{name: "mixed", input: "**a** and *b*", want: "<strong>a</strong> and <em>b</em>"},
		{name: "line breaks", input: "one\ntwo\r\nthree", want: "one<br />two<br />three"},
		{name: "no span across lines", input: "*a\nb*", want: "*a<br />b*"},
		{name: "escapes html", input: "<b>x</b> & **y**", want: "&lt;b&gt;x&lt;/b&gt; &amp; <strong>y</strong>"},
		{name: "unclosed", input: "**open", want: "**open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.input); got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
