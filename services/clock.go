package services

import (
	"sync"
	"time"
)

var jakartaOnce sync.Once
var jakartaLoc *time.Location

// Jakarta returns the WIB timezone used for all user-facing timestamps.
// Falls back to a fixed UTC+7 zone when tzdata is unavailable.
func Jakarta() *time.Location {
	jakartaOnce.Do(func() {
		loc, err := time.LoadLocation("Asia/Jakarta")
		if err != nil {
			loc = time.FixedZone("WIB", 7*60*60)
		}
		jakartaLoc = loc
	})
	return jakartaLoc
}

// NowJakarta is the current WIB wall-clock time.
func NowJakarta() time.Time {
	return time.Now().In(Jakarta())
}
