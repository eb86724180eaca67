package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain json untouched", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n[1,2]\n```", "[1,2]"},
		{"fence mid-text", "before ```json\n{}\n``` after", "before \n{}\n after"},
		{"surrounding whitespace", "  \n {\"a\":1} \n ", `{"a":1}`},
		{"empty", "", ""},
		{"only fences", "```json```", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripFences(tc.in))
		})
	}
}
