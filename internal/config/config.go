package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/supchaser/postergen/internal/backoff"
)

const (
	APIModeLive = "live"
	APIModeMock = "mock"

	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"

	DefaultMockArtifactURL = "https://placehold.co/768x1024.png"
)

type Config struct {
	LogMode    string
	ServerPort string

	DashScopeBaseURL string
	APIMode          string
	MockArtifactURLs []string

	PollInterval         time.Duration
	PollMaxAttempts      int
	PollMaxFetchFailures int
	PollRetryPolicy      string

	MaxActiveGenerations int

	CredentialBackend string
	CredentialFile    string
	RedisAddr         string
	RedisPassword     string

	RelayForceHTTPS bool
	HTTPTimeout     time.Duration
}

func checkEnv(envVars []string) error {
	var missingVars []string

	for _, envVar := range envVars {
		if value, exists := os.LookupEnv(envVar); !exists || value == "" {
			missingVars = append(missingVars, envVar)
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("error: this env vars are missing: %v", missingVars)
	}
	return nil
}

func validateEnv() error {
	err := checkEnv([]string{
		"LOG_MODE",
		"SERVER_PORT",
	})
	if err != nil {
		return err
	}

	switch mode := getEnv("API_MODE", APIModeLive); mode {
	case APIModeLive, APIModeMock:
	default:
		return fmt.Errorf("API_MODE must be %q or %q, got %q", APIModeLive, APIModeMock, mode)
	}

	switch backend := getEnv("CREDENTIAL_BACKEND", BackendFile); backend {
	case BackendMemory, BackendFile:
	case BackendRedis:
		if err := checkEnv([]string{"REDIS_ADDR"}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("CREDENTIAL_BACKEND must be one of memory, file, redis, got %q", backend)
	}

	if policy := getEnv("POLL_RETRY_POLICY", backoff.PolicyFixed); !backoff.Valid(policy) {
		return fmt.Errorf("unknown POLL_RETRY_POLICY %q", policy)
	}

	for _, key := range []string{
		"POLL_INTERVAL_MS",
		"POLL_MAX_ATTEMPTS",
		"POLL_MAX_FETCH_FAILURES",
		"MAX_ACTIVE_GENERATIONS",
		"HTTP_TIMEOUT_SECONDS",
	} {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			continue
		}
		if n, err := strconv.Atoi(v); err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
		}
	}

	return nil
}

func stringToInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if n := stringToInt(os.Getenv(key)); n > 0 {
		return n
	}
	return fallback
}

func LoadConfig(path string) (*Config, error) {
	err := godotenv.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration file: %w", err)
	}

	err = validateEnv()
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}

	forceHTTPS, err := strconv.ParseBool(getEnv("RELAY_FORCE_HTTPS", "true"))
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: RELAY_FORCE_HTTPS: %w", err)
	}

	maxFetchFailures := 3
	if v, ok := os.LookupEnv("POLL_MAX_FETCH_FAILURES"); ok && strings.TrimSpace(v) != "" {
		maxFetchFailures = stringToInt(v)
	}

	return &Config{
		LogMode:    os.Getenv("LOG_MODE"),
		ServerPort: os.Getenv("SERVER_PORT"),

		DashScopeBaseURL: getEnv("DASHSCOPE_BASE_URL", "https://dashscope.aliyuncs.com"),
		APIMode:          getEnv("API_MODE", APIModeLive),
		MockArtifactURLs: getEnvList("MOCK_ARTIFACT_URLS", []string{DefaultMockArtifactURL}),

		PollInterval:         time.Duration(getEnvInt("POLL_INTERVAL_MS", 3000)) * time.Millisecond,
		PollMaxAttempts:      getEnvInt("POLL_MAX_ATTEMPTS", 30),
		PollMaxFetchFailures: maxFetchFailures,
		PollRetryPolicy:      getEnv("POLL_RETRY_POLICY", backoff.PolicyFixed),

		MaxActiveGenerations: getEnvInt("MAX_ACTIVE_GENERATIONS", 10),

		CredentialBackend: getEnv("CREDENTIAL_BACKEND", BackendFile),
		CredentialFile:    os.Getenv("CREDENTIAL_FILE"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),

		RelayForceHTTPS: forceHTTPS,
		HTTPTimeout:     time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 60)) * time.Second,
	}, nil
}
