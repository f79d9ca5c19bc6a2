package reminder

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock fire time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// String renders the canonical "HH:MM" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay parses strict "HH:MM" user input. Anything else, out of
// range values included, is an error the caller shows back to the user.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}
