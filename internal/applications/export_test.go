package applications

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportDaySheet(t *testing.T) {
	dir := t.TempDir()
	apps := []ApplicationDTO{
		{
			JobID:      uuid.New(),
			UserID:     uuid.New(),
			TechSkills: []string{"go", "postgresql"},
			SoftSkills: []string{"communication"},
			CreatedDay: "2025-06-01",
		},
	}

	path, err := ExportDaySheet(dir, "2025-06-01", apps)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "jobApplications-2025-06-01.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportColumns, rows[0])
	assert.Equal(t, apps[0].JobID.String(), rows[1][0])
	assert.Equal(t, "go, postgresql", rows[1][2])
}

func TestExportDaySheetEmpty(t *testing.T) {
	dir := t.TempDir()
	path, err := ExportDaySheet(dir, "2025-06-02", nil)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestExportDaySheetRejectsNonDates(t *testing.T) {
	dir := t.TempDir()
	for _, day := range []string{"x/../../escaped", "..", "2025-6-1", "yesterday", ""} {
		_, err := ExportDaySheet(dir, day, nil)
		require.Error(t, err, "day %q", day)
	}
	// nothing may be written outside the export dir
	assert.NoFileExists(t, filepath.Join(dir, "..", "escaped.xlsx"))
	matches, err := filepath.Glob(filepath.Join(dir, "*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
