package minify

import "testing"

func TestStripComments(t *testing.T) {
	var tests = []struct{ in, out string }{
		{
			"<p>a</p><!-- note --><p>b</p>",
			"<p>a</p><p>b</p>",
		},
		{
			"x<!--a-->y<!--b-->z",
			"xyz",
		},
		{
			"no comments here",
			"no comments here",
		},
		// Preserve markers keep the comment.
		{
			"<!-- if (x) { } -->",
			"<!-- if (x) { } -->",
		},
		{
			"<!--[if IE]>x<![endif]-->",
			"<!--[if IE]>x<![endif]-->",
		},
		{
			"<!-- var x = 1; -->",
			"<!-- var x = 1; -->",
		},
		{
			"<!-- function f() -->",
			"<!-- function f() -->",
		},
		// A preserved comment also preserves everything after it.
		{
			"<!-- keep { } --><!-- decorative -->",
			"<!-- keep { } --><!-- decorative -->",
		},
		{
			"<!-- decorative --><!-- keep { } --><!-- also kept -->",
			"<!-- keep { } --><!-- also kept -->",
		},
		// Unterminated comment stops scanning.
		{
			"a<!-- unterminated",
			"a<!-- unterminated",
		},
		{
			"a<!--gone-->b<!-- unterminated",
			"ab<!-- unterminated",
		},
	}
	for i, v := range tests {
		out := stripComments(v.in)
		if v.out != out {
			t.Errorf("%d: expected %q, got %q", i, v.out, out)
		}
	}
}
