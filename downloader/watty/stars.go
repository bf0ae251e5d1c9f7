package watty

import (
	"math"
	"strings"
)

const (
	fullStar  = "★"
	halfStar  = "⯪"
	emptyStar = "☆"
)

// RenderStars draws a 0..5 rating. By default a single empty star always
// closes the string, which is how existing books look; with fullEmpty the
// remaining slots up to five are filled with empty stars instead.
func RenderStars(rating float64, fullEmpty bool) string {
	whole := math.Floor(rating)
	full := int(math.Max(0, math.Min(5, whole)))
	half := rating-whole > 0.5

	empty := 1
	if fullEmpty {
		empty = 5 - full
		if half {
			empty--
		}
		empty = max(empty, 0)
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(fullStar, full))
	if half {
		b.WriteString(halfStar)
	}
	b.WriteString(strings.Repeat(emptyStar, empty))
	return b.String()
}
