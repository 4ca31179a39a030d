package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort             = "8091"
	defaultMaxUploadBytes   = 20971520 // 20MB
	defaultWorkerCount      = 4
	defaultMaxQueueSize     = 100
	defaultTableParallelism = 4
	defaultJobTTL           = 1 * time.Hour
	defaultStatsWindow      = 1 * time.Hour
	defaultPDFColumnGap     = 12.0
)

var portPattern = regexp.MustCompile(`^[0-9]{1,5}$`)

type Config struct {
	Port string `yaml:"port" json:"port"`

	// Auth
	APIKey string `yaml:"api_key" json:"api_key"`

	// Upload limits
	MaxUploadBytes int64 `yaml:"max_upload_bytes" json:"max_upload_bytes"`

	// Worker pool
	WorkerCount      int `yaml:"worker_count" json:"worker_count"`
	MaxQueueSize     int `yaml:"max_queue_size" json:"max_queue_size"`
	TableParallelism int `yaml:"table_parallelism" json:"table_parallelism"`

	// Job state
	JobTTL      time.Duration `yaml:"job_ttl" json:"job_ttl"`
	StatsWindow time.Duration `yaml:"stats_window" json:"stats_window"`

	// PDF
	PDFFallbackPdftotext bool    `yaml:"pdf_fallback_pdftotext" json:"pdf_fallback_pdftotext"`
	PDFColumnGap         float64 `yaml:"pdf_column_gap" json:"pdf_column_gap"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Port:                 defaultPort,
		MaxUploadBytes:       defaultMaxUploadBytes,
		WorkerCount:          defaultWorkerCount,
		MaxQueueSize:         defaultMaxQueueSize,
		TableParallelism:     defaultTableParallelism,
		JobTTL:               defaultJobTTL,
		StatsWindow:          defaultStatsWindow,
		PDFFallbackPdftotext: true,
		PDFColumnGap:         defaultPDFColumnGap,
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// RISKHTML_CONFIG (if any), then environment variables.
func Load() (Config, error) {
	cfg := Defaults()

	if path := os.Getenv("RISKHTML_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("RISKHTML_API_KEY", cfg.APIKey)
	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.WorkerCount = envInt("WORKER_COUNT", cfg.WorkerCount)
	cfg.MaxQueueSize = envInt("MAX_QUEUE_SIZE", cfg.MaxQueueSize)
	cfg.TableParallelism = envInt("TABLE_PARALLELISM", cfg.TableParallelism)
	cfg.JobTTL = envDuration("JOB_TTL", cfg.JobTTL)
	cfg.StatsWindow = envDuration("STATS_WINDOW", cfg.StatsWindow)
	cfg.PDFFallbackPdftotext = envBool("PDF_FALLBACK_PDFTOTEXT", cfg.PDFFallbackPdftotext)
	cfg.PDFColumnGap = envFloat("PDF_COLUMN_GAP", cfg.PDFColumnGap)

	cfg.clamp()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) clamp() {
	if c.Port == "" {
		c.Port = defaultPort
	}
	if c.WorkerCount <= 0 {
		c.WorkerCount = defaultWorkerCount
	}
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = defaultMaxQueueSize
	}
	if c.TableParallelism <= 0 {
		c.TableParallelism = 1
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = defaultMaxUploadBytes
	}
	if c.JobTTL <= 0 {
		c.JobTTL = defaultJobTTL
	}
	if c.StatsWindow <= 0 {
		c.StatsWindow = defaultStatsWindow
	}
	if c.PDFColumnGap <= 0 {
		c.PDFColumnGap = defaultPDFColumnGap
	}
}

// Validate checks the settings the HTTP server cannot run without.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Required, validation.Match(portPattern)),
		validation.Field(&c.APIKey, validation.Required.Error("RISKHTML_API_KEY is required")),
		validation.Field(&c.MaxUploadBytes, validation.Min(int64(1024))),
		validation.Field(&c.WorkerCount, validation.Min(1), validation.Max(256)),
		validation.Field(&c.MaxQueueSize, validation.Min(1)),
		validation.Field(&c.TableParallelism, validation.Min(1), validation.Max(64)),
		validation.Field(&c.JobTTL, validation.Min(time.Second)),
		validation.Field(&c.StatsWindow, validation.Min(time.Second)),
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
