package render

import (
	"strings"
	"time"
)

const monthLayout = "2006-01"

// FormatMonth turns a stored "year-month" value into "Jun 2021". Empty input
// gives empty output. Anything that is not a year-month is shown as typed
// rather than as an error.
func FormatMonth(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2006")
}

// dateRange joins two already formatted ends with " - ", leaving out an
// empty end.
func dateRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	}
	return start + " - " + end
}
