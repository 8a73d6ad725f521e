package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigFile drops a YAML config into a temp dir and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger().Level)
	assert.Equal(t, "console", cfg.Logger().Format)
	assert.Equal(t, "climarisk", cfg.Logger().ServiceName)

	assert.Equal(t, "gemini", cfg.Oracle().Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Oracle().Model)
	assert.Equal(t, 60*time.Second, cfg.Oracle().APITimeout)
	assert.Equal(t, 4, cfg.Oracle().Concurrency)
	assert.Equal(t, 2.0, cfg.Oracle().RequestsPerSecond)

	assert.Equal(t, 3, cfg.Analysis().Clusters)
	assert.Equal(t, int64(42), cfg.Analysis().ClusterSeed)
	assert.Equal(t, 0.5, cfg.Analysis().CascadeThreshold)
	assert.Equal(t, 10, cfg.Analysis().CascadeMaxSteps)
	assert.Equal(t, 1000, cfg.Analysis().MonteCarloIterations)

	assert.False(t, cfg.Database().Enabled)
	assert.Equal(t, "output", cfg.Report().OutputDir)
	assert.Equal(t, "json", cfg.Report().Format)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
logger:
  level: debug
  format: json
oracle:
  concurrency: 8
analysis:
  clusters: 5
  cascade_threshold: 0.35
  seed_risks: [2, 7]
  key_dependencies: ["water", "semiconductors"]
report:
  format: html
  output_dir: /tmp/reports
`)

	cfg, err := load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger().Level)
	assert.Equal(t, "json", cfg.Logger().Format)
	assert.Equal(t, 8, cfg.Oracle().Concurrency)
	assert.Equal(t, 5, cfg.Analysis().Clusters)
	assert.Equal(t, 0.35, cfg.Analysis().CascadeThreshold)
	assert.Equal(t, []int{2, 7}, cfg.Analysis().SeedRisks)
	assert.Equal(t, []string{"water", "semiconductors"}, cfg.Analysis().KeyDependencies)
	assert.Equal(t, "html", cfg.Report().Format)
	assert.Equal(t, "/tmp/reports", cfg.Report().OutputDir)

	// Keys the file does not touch keep their defaults.
	assert.Equal(t, 10, cfg.Analysis().CascadeMaxSteps)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadValidation(t *testing.T) {
	testCases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "zero clusters",
			yaml:    "analysis:\n  clusters: 0\n",
			wantErr: "analysis.clusters",
		},
		{
			name:    "zero cascade steps",
			yaml:    "analysis:\n  cascade_max_steps: 0\n",
			wantErr: "analysis.cascade_max_steps",
		},
		{
			name:    "zero concurrency",
			yaml:    "oracle:\n  concurrency: 0\n",
			wantErr: "oracle.concurrency",
		},
		{
			name:    "bogus report format",
			yaml:    "report:\n  format: xml\n",
			wantErr: "report.format",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfigFile(t, tc.yaml)
			_, err := load(viper.New(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestAPIKeyEnvOverride(t *testing.T) {
	path := writeConfigFile(t, "oracle:\n  api_key: from-file\n")
	t.Setenv("CLIMARISK_ORACLE_API_KEY", "from-env")

	cfg, err := load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Oracle().APIKey, "the dedicated env var must beat the config file")
}

func TestSettersDriveGetters(t *testing.T) {
	cfg, err := load(viper.New(), "")
	require.NoError(t, err)

	cfg.SetAnalysisClusters(7)
	cfg.SetAnalysisCascadeThreshold(0.42)
	cfg.SetAnalysisCascadeMaxSteps(3)
	cfg.SetAnalysisSeedRisks([]int{9})
	cfg.SetOracleConcurrency(16)
	cfg.SetReportOutputDir("elsewhere")
	cfg.SetReportFormat("html")

	assert.Equal(t, 7, cfg.Analysis().Clusters)
	assert.Equal(t, 0.42, cfg.Analysis().CascadeThreshold)
	assert.Equal(t, 3, cfg.Analysis().CascadeMaxSteps)
	assert.Equal(t, []int{9}, cfg.Analysis().SeedRisks)
	assert.Equal(t, 16, cfg.Oracle().Concurrency)
	assert.Equal(t, "elsewhere", cfg.Report().OutputDir)
	assert.Equal(t, "html", cfg.Report().Format)
}
