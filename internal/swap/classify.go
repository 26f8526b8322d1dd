package swap

import (
	"regexp"
	"strings"
)

// UnitMarker is the ampere-hour unit printed on every billable swap line.
const UnitMarker = "(安時)"

// timeOfDay matches HH:MM:SS without validating the ranges.
var timeOfDay = regexp.MustCompile(`\p{Nd}{2}:\p{Nd}{2}:\p{Nd}{2}`)

// Classify reports whether a row looks like a billable swap line: it must
// carry both a time of day and the ampere-hour marker.
func Classify(text string) bool {
	return strings.Contains(text, UnitMarker) && timeOfDay.MatchString(text)
}
