package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeTableCell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "Instagram", want: "Instagram"},
		{name: "pipe", in: "A | B", want: `A \| B`},
		{name: "newline", in: "line one\nline two", want: "line one<br>line two"},
		{name: "crlf", in: "a\r\nb", want: "a<br>b"},
		{name: "bare carriage return", in: "a\rb", want: "a<br>b"},
		{name: "surrounding whitespace", in: "  padded \n", want: "padded"},
		{name: "hashtags untouched", in: "#acme #coffee", want: "#acme #coffee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeTableCell(tt.in))
		})
	}
}

func TestEscapeInline(t *testing.T) {
	assert.Equal(t, "", EscapeInline(""))
	assert.Equal(t, "Hook<br><br>Body | kept", EscapeInline("Hook\n\nBody | kept\n"))
}
