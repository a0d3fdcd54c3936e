package boarding

import (
	"fmt"
	"strconv"
	"strings"
)

// dollars renders non-negative cents as "1,234.56". All configured prices
// are whole dollars; fractions only appear in report averages.
func dollars(cents int64) string {
	d := cents / 100
	rem := cents % 100

	s := strconv.FormatInt(d, 10)
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return fmt.Sprintf("%s.%02d", b.String(), rem)
}

// wholeDollars renders configured prices the way the rate card shows
// them: "$30", no cents.
func wholeDollars(cents int64) string {
	return strconv.FormatInt(cents/100, 10)
}

// lbs trims trailing zeros off a weight: 25 -> "25", 20.5 -> "20.5".
func lbs(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
