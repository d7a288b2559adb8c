// Package config provides configuration loading and validation for the API server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Defaults used when the corresponding environment variable is unset.
const (
	DefaultPort           = 8080
	DefaultBatchChunkSize = 100
	DefaultRequestTimeout = 30
)

// Config holds the runtime configuration for the clinic jobs API.
// All values are read from the environment; table names default to the
// deployment's conventional names.
type Config struct {
	Port           int
	AWSRegion      string
	DynamoEndpoint string // optional override for local development

	JobsTable         string
	ApplicationsTable string
	ProfilesTable     string
	NegotiationsTable string

	// BatchChunkSize bounds the number of keys per batched fetch.
	// DynamoDB caps BatchGetItem at 100 keys per request.
	BatchChunkSize int

	// RequestTimeoutSeconds bounds a single aggregation request end to end.
	RequestTimeoutSeconds int

	// DefaultStatuses is the allowed-status set for the cross-clinic summary
	// when the request does not override it.
	DefaultStatuses []string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                  DefaultPort,
		AWSRegion:             os.Getenv("AWS_REGION"),
		DynamoEndpoint:        os.Getenv("DYNAMO_ENDPOINT"),
		JobsTable:             envOrDefault("JOBS_TABLE", "clinic-jobs"),
		ApplicationsTable:     envOrDefault("APPLICATIONS_TABLE", "clinic-applications"),
		ProfilesTable:         envOrDefault("PROFILES_TABLE", "applicant-profiles"),
		NegotiationsTable:     envOrDefault("NEGOTIATIONS_TABLE", "negotiations"),
		BatchChunkSize:        DefaultBatchChunkSize,
		RequestTimeoutSeconds: DefaultRequestTimeout,
		DefaultStatuses:       []string{"pending", "negotiate"},
	}

	if cfg.AWSRegion == "" {
		cfg.AWSRegion = "us-east-1"
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if chunkStr := os.Getenv("BATCH_CHUNK_SIZE"); chunkStr != "" {
		chunk, err := strconv.Atoi(chunkStr)
		if err != nil {
			return nil, fmt.Errorf("invalid BATCH_CHUNK_SIZE: %v", err)
		}
		cfg.BatchChunkSize = chunk
	}

	if timeoutStr := os.Getenv("REQUEST_TIMEOUT_SECONDS"); timeoutStr != "" {
		timeout, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT_SECONDS: %v", err)
		}
		cfg.RequestTimeoutSeconds = timeout
	}

	if statuses := os.Getenv("SUMMARY_STATUSES"); statuses != "" {
		cfg.DefaultStatuses = splitStatuses(statuses)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be in 1-65535, got: %d", c.Port)
	}
	if c.BatchChunkSize < 1 || c.BatchChunkSize > 100 {
		return fmt.Errorf("config error: BATCH_CHUNK_SIZE must be in 1-100, got: %d", c.BatchChunkSize)
	}
	if c.RequestTimeoutSeconds < 1 {
		return fmt.Errorf("config error: REQUEST_TIMEOUT_SECONDS must be at least 1, got: %d", c.RequestTimeoutSeconds)
	}
	if len(c.DefaultStatuses) == 0 {
		return fmt.Errorf("config error: SUMMARY_STATUSES must name at least one status")
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitStatuses(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}
