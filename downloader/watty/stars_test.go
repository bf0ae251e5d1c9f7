package watty

import "testing"

func TestRenderStars(t *testing.T) {
	tests := []struct {
		rating    float64
		fullEmpty bool
		want      string
	}{
		{0, false, "☆"},
		{5, false, "★★★★★☆"},
		{3.7, false, "★★★⯪☆"},
		{3.4, false, "★★★☆"},
		{3.5, false, "★★★☆"},
		{4.2, false, "★★★★☆"},
		{0.9, false, "⯪☆"},

		{0, true, "☆☆☆☆☆"},
		{5, true, "★★★★★"},
		{3.7, true, "★★★⯪☆"},
		{3.4, true, "★★★☆☆"},
		{4.6, true, "★★★★⯪"},
		{1, true, "★☆☆☆☆"},
	}
	for _, tt := range tests {
		if got := RenderStars(tt.rating, tt.fullEmpty); got != tt.want {
			t.Errorf("RenderStars(%v, %v) = %q, want %q", tt.rating, tt.fullEmpty, got, tt.want)
		}
	}
}
