package enums

import "fmt"

// SeniorityLevel represents the experience tier a job position targets.
type SeniorityLevel string

// Casing matches the values stored by the legacy system.
const (
	SeniorityJunior   SeniorityLevel = "junior"
	SeniorityMidLevel SeniorityLevel = "mid-Level"
	SenioritySenior   SeniorityLevel = "senior"
	SeniorityTeamLead SeniorityLevel = "team-Lead"
	SeniorityCTO      SeniorityLevel = "CTO"
)

var validSeniorityLevels = []SeniorityLevel{
	SeniorityJunior,
	SeniorityMidLevel,
	SenioritySenior,
	SeniorityTeamLead,
	SeniorityCTO,
}

// String implements fmt.Stringer.
func (s SeniorityLevel) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SeniorityLevel.
func (s SeniorityLevel) IsValid() bool {
	for _, candidate := range validSeniorityLevels {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSeniorityLevel converts raw input into a SeniorityLevel.
func ParseSeniorityLevel(value string) (SeniorityLevel, error) {
	for _, candidate := range validSeniorityLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid seniority level %q", value)
}
