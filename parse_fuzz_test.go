package texpr_test

import (
	"testing"

	"github.com/punchadam/texpr"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add(`\frac{1}{2}`)
	f.Add("2(3+4)")
	f.Add(`\left( \sin x^2 \right)!`)
	f.Fuzz(func(t *testing.T, s string) {
		tree, err := texpr.Parse(s)
		if err != nil {
			if _, ok := err.(texpr.InputError); !ok {
				t.Errorf("error %v from %q is not an input error", err, s)
			}
			return
		}
		// Rendering a parsed tree must not panic.
		_ = tree.String()
	})
}
