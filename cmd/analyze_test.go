package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRiskFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "risks.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRisks(t *testing.T) {
	path := writeRiskFile(t, `[
		{"id": 1, "description": "Coastal flooding", "category": "Physical Risk", "likelihood": 0.6, "impact": 0.8},
		{"id": 2, "description": "Carbon tax expansion", "category": "Policy Risk", "likelihood": 0.7, "impact": 0.5}
	]`)

	risks, err := loadRisks(path)
	require.NoError(t, err)
	require.Len(t, risks, 2)
	assert.Equal(t, 1, risks[0].ID)
	assert.Equal(t, "Coastal flooding", risks[0].Description)
	assert.Equal(t, 0.5, risks[1].Impact)
}

func TestLoadRisksMissingFile(t *testing.T) {
	_, err := loadRisks(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read risk file")
}

func TestLoadRisksMalformedJSON(t *testing.T) {
	path := writeRiskFile(t, `{"not": "an array"`)
	_, err := loadRisks(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse risk file")
}

func TestLoadRisksEmptySet(t *testing.T) {
	path := writeRiskFile(t, `[]`)
	_, err := loadRisks(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contains no risks")
}
