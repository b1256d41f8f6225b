package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func Location() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Now returns the current time in the platform timezone. Session and audit
// timestamps all go through here so stored times are comparable.
func Now() time.Time {
	return time.Now().In(Location())
}
