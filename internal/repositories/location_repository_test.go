package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"newtown", "newtown"},
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`new\`, `new\\`},
		{`\%`, `\\\%`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeLike(tt.in), "input %q", tt.in)
	}
}
