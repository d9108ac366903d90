package enums

import "fmt"

// JobLocation represents where a job position is performed.
type JobLocation string

const (
	JobLocationOnsite   JobLocation = "onsite"
	JobLocationRemotely JobLocation = "remotely"
	JobLocationHybrid   JobLocation = "hybrid"
)

var validJobLocations = []JobLocation{
	JobLocationOnsite,
	JobLocationRemotely,
	JobLocationHybrid,
}

// String implements fmt.Stringer.
func (l JobLocation) String() string {
	return string(l)
}

// IsValid reports whether the value is a known JobLocation.
func (l JobLocation) IsValid() bool {
	for _, candidate := range validJobLocations {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseJobLocation converts raw input into a JobLocation.
func ParseJobLocation(value string) (JobLocation, error) {
	for _, candidate := range validJobLocations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid job location %q", value)
}
