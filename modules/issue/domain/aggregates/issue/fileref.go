package issue

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatFileref renders a fileref as the group prefix plus the number
// zero-padded to at least four digits. Numbers past 9999 keep all their
// digits ("R9999" is followed by "R10000").
func FormatFileref(prefix string, n int64) string {
	return fmt.Sprintf("%s%04d", prefix, n)
}

// FilerefNumber extracts the numeric suffix of a fileref within the given
// prefix group. Returns false for refs from other groups or malformed refs.
func FilerefNumber(fileref, prefix string) (int64, bool) {
	if !strings.HasPrefix(fileref, prefix) {
		return 0, false
	}
	n, err := strconv.ParseInt(fileref[len(prefix):], 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
