package clock

import "time"

// Clock supplies the current time. Injected so expiry and cooldown logic can
// be tested against a controlled time source.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns a Clock backed by the wall clock (UTC).
func System() Clock { return systemClock{} }
