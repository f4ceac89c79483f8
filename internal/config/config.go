// Package config resolves batch-run settings from the environment. Command-line
// flags override these values; the environment only supplies defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/simdem/archive-plugins/internal/pipeline"
)

const (
	// ManifestEnv overrides the plugin manifest location.
	ManifestEnv = "ARCHIVE_PLUGINS_MANIFEST"

	appDir       = "sd-archivemanager"
	manifestFile = "plugins.toml"
)

// LoadPipelineOptions reads worker settings from WORKERS, MAX_RETRIES,
// REQUEST_TIMEOUT, RATE_LIMIT_RPS and FAIL_FAST.
func LoadPipelineOptions() (pipeline.Options, error) {
	workers, err := envInt("WORKERS", 4)
	if err != nil {
		return pipeline.Options{}, err
	}
	maxRetries, err := envInt("MAX_RETRIES", 0)
	if err != nil {
		return pipeline.Options{}, err
	}
	requestTimeout, err := envDuration("REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return pipeline.Options{}, err
	}
	failFast, err := envBool("FAIL_FAST")
	if err != nil {
		return pipeline.Options{}, err
	}
	rateLimitRPS, err := envFloat("RATE_LIMIT_RPS", 0)
	if err != nil {
		return pipeline.Options{}, err
	}

	return pipeline.Options{
		Workers:        workers,
		MaxRetries:     maxRetries,
		RequestTimeout: requestTimeout,
		RateLimitRPS:   rateLimitRPS,
		FailFast:       failFast,
	}, nil
}

// ManifestPath returns $ARCHIVE_PLUGINS_MANIFEST, or plugins.toml in the
// archive manager's XDG data directory.
func ManifestPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(ManifestEnv)); p != "" {
		return p, nil
	}
	dataHome := strings.TrimSpace(os.Getenv("XDG_DATA_HOME"))
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve data directory: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appDir, manifestFile), nil
}

func envInt(varName string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback, nil
	}
	out, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}

func envFloat(varName string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback, nil
	}
	out, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}

func envDuration(varName string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback, nil
	}
	out, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}

func envBool(varName string) (bool, error) {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return false, nil
	}
	out, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}
