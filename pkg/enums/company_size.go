package enums

import "fmt"

// CompanySize buckets the employee head count of a company.
type CompanySize string

const (
	CompanySize1To10   CompanySize = "1-10"
	CompanySize11To20  CompanySize = "11-20"
	CompanySize21To50  CompanySize = "21-50"
	CompanySize51To100 CompanySize = "51-100"
	CompanySize501Plus CompanySize = "501+"
)

var validCompanySizes = []CompanySize{
	CompanySize1To10,
	CompanySize11To20,
	CompanySize21To50,
	CompanySize51To100,
	CompanySize501Plus,
}

// String implements fmt.Stringer.
func (c CompanySize) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CompanySize.
func (c CompanySize) IsValid() bool {
	for _, candidate := range validCompanySizes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCompanySize converts raw input into a CompanySize.
func ParseCompanySize(value string) (CompanySize, error) {
	for _, candidate := range validCompanySizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid company size %q", value)
}
