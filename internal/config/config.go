// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Oracle() OracleConfig
	Analysis() AnalysisConfig
	Database() DatabaseConfig
	Report() ReportConfig

	// Analysis setters, driven by CLI flags.
	SetAnalysisClusters(int)
	SetAnalysisCascadeThreshold(float64)
	SetAnalysisCascadeMaxSteps(int)
	SetAnalysisSeedRisks([]int)

	// Oracle setters.
	SetOracleConcurrency(int)

	// Report setters.
	SetReportOutputDir(string)
	SetReportFormat(string)
}

// LoggerConfig controls the zap logger bootstrap.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"` // "console" or "json"
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`

	// File output with rotation (lumberjack). Empty LogFile disables it.
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"` // days
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// OracleConfig configures the external interaction-scoring oracle. The API
// key is explicit configuration handed to the scorer at construction time;
// there is no package-level global.
type OracleConfig struct {
	Provider   string        `mapstructure:"provider" yaml:"provider"`
	Model      string        `mapstructure:"model" yaml:"model"`
	APIKey     string        `mapstructure:"api_key" yaml:"api_key"`
	Endpoint   string        `mapstructure:"endpoint" yaml:"endpoint"`
	APITimeout time.Duration `mapstructure:"api_timeout" yaml:"api_timeout"`

	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`

	// Concurrency bounds the worker pool for the O(n^2) pairwise scoring
	// pass; RequestsPerSecond paces the calls below provider rate limits.
	Concurrency       int     `mapstructure:"concurrency" yaml:"concurrency"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" yaml:"requests_per_second"`
}

// AnalysisConfig holds the tunables of the graph analytics pass.
type AnalysisConfig struct {
	Clusters         int     `mapstructure:"clusters" yaml:"clusters"`
	ClusterSeed      int64   `mapstructure:"cluster_seed" yaml:"cluster_seed"`
	CascadeThreshold float64 `mapstructure:"cascade_threshold" yaml:"cascade_threshold"`
	CascadeMaxSteps  int     `mapstructure:"cascade_max_steps" yaml:"cascade_max_steps"`
	SeedRisks        []int   `mapstructure:"seed_risks" yaml:"seed_risks"`

	// KeyDependencies feed the systemic-risk keyword matching.
	KeyDependencies []string `mapstructure:"key_dependencies" yaml:"key_dependencies"`

	MonteCarloIterations int   `mapstructure:"monte_carlo_iterations" yaml:"monte_carlo_iterations"`
	MonteCarloSeed       int64 `mapstructure:"monte_carlo_seed" yaml:"monte_carlo_seed"`
}

// DatabaseConfig configures the optional PostgreSQL run store.
type DatabaseConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	URL     string `mapstructure:"url" yaml:"url"`
}

// ReportConfig controls where and how the final report is rendered.
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	Format    string `mapstructure:"format" yaml:"format"` // "json" or "html"
}

// Config holds the entire application configuration. It uses private fields
// to enforce access through the Interface's getter methods.
type Config struct {
	logger   LoggerConfig
	oracle   OracleConfig
	analysis AnalysisConfig
	database DatabaseConfig
	report   ReportConfig
}

var _ Interface = (*Config)(nil)

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig     { return c.logger }
func (c *Config) Oracle() OracleConfig     { return c.oracle }
func (c *Config) Analysis() AnalysisConfig { return c.analysis }
func (c *Config) Database() DatabaseConfig { return c.database }
func (c *Config) Report() ReportConfig     { return c.report }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetAnalysisClusters(k int)                { c.analysis.Clusters = k }
func (c *Config) SetAnalysisCascadeThreshold(t float64)    { c.analysis.CascadeThreshold = t }
func (c *Config) SetAnalysisCascadeMaxSteps(s int)         { c.analysis.CascadeMaxSteps = s }
func (c *Config) SetAnalysisSeedRisks(ids []int)           { c.analysis.SeedRisks = ids }
func (c *Config) SetOracleConcurrency(n int)               { c.oracle.Concurrency = n }
func (c *Config) SetReportOutputDir(dir string)            { c.report.OutputDir = dir }
func (c *Config) SetReportFormat(format string)            { c.report.Format = format }

// rawConfig mirrors Config with exported fields so viper can unmarshal into
// it before we seal the values behind the accessor interface.
type rawConfig struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	Oracle   OracleConfig   `mapstructure:"oracle"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Database DatabaseConfig `mapstructure:"database"`
	Report   ReportConfig   `mapstructure:"report"`
}

// setDefaults registers the default value for every key so a bare invocation
// without a config file still produces a usable configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "climarisk")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)

	v.SetDefault("oracle.provider", "gemini")
	v.SetDefault("oracle.model", "gemini-2.0-flash")
	v.SetDefault("oracle.api_timeout", 60*time.Second)
	v.SetDefault("oracle.temperature", 0.7)
	v.SetDefault("oracle.max_tokens", 400)
	v.SetDefault("oracle.concurrency", 4)
	v.SetDefault("oracle.requests_per_second", 2.0)

	v.SetDefault("analysis.clusters", 3)
	v.SetDefault("analysis.cluster_seed", 42)
	v.SetDefault("analysis.cascade_threshold", 0.5)
	v.SetDefault("analysis.cascade_max_steps", 10)
	v.SetDefault("analysis.monte_carlo_iterations", 1000)
	v.SetDefault("analysis.monte_carlo_seed", 1)

	v.SetDefault("database.enabled", false)

	v.SetDefault("report.output_dir", "output")
	v.SetDefault("report.format", "json")
}

// Load reads configuration from the given file (or the default search path
// when empty), layered under CLIMARISK_* environment variables.
func Load(cfgFile string) (*Config, error) {
	v := viper.GetViper()
	return load(v, cfgFile)
}

func load(v *viper.Viper, cfgFile string) (*Config, error) {
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".climarisk"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("CLIMARISK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults and env vars.
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg := &Config{
		logger:   raw.Logger,
		oracle:   raw.Oracle,
		analysis: raw.Analysis,
		database: raw.Database,
		report:   raw.Report,
	}

	// The API key may also arrive via a dedicated environment variable,
	// which beats the config file so keys stay out of checked-in YAML.
	if key := os.Getenv("CLIMARISK_ORACLE_API_KEY"); key != "" {
		cfg.oracle.APIKey = key
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.analysis.Clusters < 1 {
		return fmt.Errorf("analysis.clusters must be >= 1, got %d", c.analysis.Clusters)
	}
	if c.analysis.CascadeMaxSteps < 1 {
		return fmt.Errorf("analysis.cascade_max_steps must be >= 1, got %d", c.analysis.CascadeMaxSteps)
	}
	if c.oracle.Concurrency < 1 {
		return fmt.Errorf("oracle.concurrency must be >= 1, got %d", c.oracle.Concurrency)
	}
	switch c.report.Format {
	case "json", "html":
	default:
		return fmt.Errorf("report.format must be json or html, got %q", c.report.Format)
	}
	return nil
}
