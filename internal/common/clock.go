package common

import "time"

// Now is the service clock. Tests may replace it.
var Now = func() time.Time {
	return time.Now().UTC()
}
