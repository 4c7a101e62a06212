package cache

import "time"

// clock is factored out so expiry can be tested without sleeping
type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
