package enums

import "fmt"

// WorkingTime represents the employment mode of a job position.
type WorkingTime string

const (
	WorkingTimePartTime WorkingTime = "part-time"
	WorkingTimeFullTime WorkingTime = "full-time"
)

var validWorkingTimes = []WorkingTime{
	WorkingTimePartTime,
	WorkingTimeFullTime,
}

// String implements fmt.Stringer.
func (w WorkingTime) String() string {
	return string(w)
}

// IsValid reports whether the value is a known WorkingTime.
func (w WorkingTime) IsValid() bool {
	for _, candidate := range validWorkingTimes {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWorkingTime converts raw input into a WorkingTime.
func ParseWorkingTime(value string) (WorkingTime, error) {
	for _, candidate := range validWorkingTimes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid working time %q", value)
}
