package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFolderHelpers(t *testing.T) {
	assert.Equal(t, "JobHive/users/u1", UserFolder("JobHive", "u1"))
	assert.Equal(t, "JobHive/companies/c1", CompanyFolder("JobHive", "c1"))
	assert.Equal(t, "JobHive/jobs/company-c1/job-j1/applications", ResumeFolder("JobHive", "c1", "j1"))
}
