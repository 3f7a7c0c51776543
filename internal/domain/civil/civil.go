// Package civil holds the fixed civil time zone used for every
// date-boundary and deadline computation in the system.
package civil

import "time"

// KST is the study group's civil time zone (UTC+9). All dates stored in the
// document store are calendar dates in this zone.
var KST = time.FixedZone("KST", 9*60*60)

// Now returns the current time in KST.
func Now() time.Time {
	return time.Now().In(KST)
}

// DateString formats t as a KST calendar date (YYYY-MM-DD).
func DateString(t time.Time) string {
	return t.In(KST).Format("2006-01-02")
}
