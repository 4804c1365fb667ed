// Duration parsing.  Nextflow reports task durations as HhMmSs where all segments are optional
// but appear in that order, the seconds may be fractional, and whitespace may separate the
// segments.  We return fractional hours because that's what the cost models want.

package nextflow

import (
	"fmt"
	"strconv"
	"strings"
)

// Convert a duration string to fractional hours.  Absent segments contribute zero, and a string
// with no recognizable segment at all is zero.  A segment whose numeric part does not parse is an
// error, never a silent zero.

func ToHours(s string) (float64, error) {
	var hours, minutes int64
	var seconds float64
	var err error
	rest := strings.TrimSpace(s)
	if i := strings.IndexByte(rest, 'h'); i >= 0 {
		hours, err = strconv.ParseInt(strings.TrimSpace(rest[:i]), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("Invalid hour segment in duration %q", s)
		}
		rest = strings.TrimSpace(rest[i+1:])
	}
	if i := strings.IndexByte(rest, 'm'); i >= 0 {
		minutes, err = strconv.ParseInt(strings.TrimSpace(rest[:i]), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("Invalid minute segment in duration %q", s)
		}
		rest = strings.TrimSpace(rest[i+1:])
	}
	if i := strings.IndexByte(rest, 's'); i >= 0 {
		seconds, err = strconv.ParseFloat(strings.TrimSpace(rest[:i]), 64)
		if err != nil {
			return 0, fmt.Errorf("Invalid second segment in duration %q", s)
		}
	}
	return float64(hours) + float64(minutes)/60 + seconds/3600, nil
}
