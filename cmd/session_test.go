package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLocators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single", input: "cv.pdf", want: []string{"cv.pdf"}},
		{name: "trims and drops blanks", input: " a.pdf, ,b.txt ,, ", want: []string{"a.pdf", "b.txt"}},
		{name: "empty", input: "   ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, splitLocators(tt.input))
		})
	}
}
