package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReindent(t *testing.T) {
	cases := []struct {
		name string
		n    int
		in   string
		want string
	}{
		{"empty", 4, "", ""},
		{"only blank lines", 4, "\n   \n\n", ""},
		{"trims edges and shifts", 8, "\n    A = 0,\n    B = 1,\n", "        A = 0,\n        B = 1,"},
		{"keeps relative indentation", 4, "  void f()\n  {\n      x = 1;\n  }", "    void f()\n    {\n        x = 1;\n    }"},
		{"interior blank lines stay empty", 2, "a;\n   \nb;", "  a;\n\n  b;"},
		{"trailing whitespace stripped", 0, "  a;   \n  b;\t", "a;\nb;"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Reindent(tc.n, tc.in))
		})
	}
}
