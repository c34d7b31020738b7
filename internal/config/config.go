package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/Amund211/brawltools/internal/constants"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

const defaultPort = "8123"

type Config struct {
	apiBaseURL             string
	cloudSQLUnixSocketPath string
	dBPassword             string
	dBUsername             string
	sentryDSN              string
	googleCloudProject     string
	port                   string
	env                    environment
}

// APIBaseURL is the address of the statistics API, without a trailing slash
func (c *Config) APIBaseURL() string {
	return c.apiBaseURL
}

func (c *Config) CloudSQLUnixSocketPath() string {
	return c.cloudSQLUnixSocketPath
}

func (c *Config) DBPassword() string {
	return c.dBPassword
}

func (c *Config) DBUsername() string {
	return c.dBUsername
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

// GoogleCloudProject is used to link log entries to traces, and may be empty
func (c *Config) GoogleCloudProject() string {
	return c.googleCloudProject
}

func (c *Config) Port() string {
	return c.port
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf("Config{env: %s, apiBaseURL: %s, port: %s, ...}", string(c.env), c.apiBaseURL, c.port)
}

func parseAPIBaseURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: BRAWLTOOLS_API_URL (%s): %w", ErrInvalidValue, raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: BRAWLTOOLS_API_URL (%s): scheme must be http or https", ErrInvalidValue, raw)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("%w: BRAWLTOOLS_API_URL (%s): missing host", ErrInvalidValue, raw)
	}
	if parsed.RawQuery != "" || parsed.Fragment != "" {
		return "", fmt.Errorf("%w: BRAWLTOOLS_API_URL (%s): must not have a query or fragment", ErrInvalidValue, raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}

	var env environment
	rawEnv, ok := os.LookupEnv("BRAWLTOOLS_ENVIRONMENT")
	if !ok {
		return missingKey("BRAWLTOOLS_ENVIRONMENT")
	}
	switch rawEnv {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return Config{}, fmt.Errorf("%w: BRAWLTOOLS_ENVIRONMENT (%s)", ErrInvalidValue, rawEnv)
	}
	if string(env) == "" {
		panic("logic error: env is empty")
	}

	apiBaseURL := constants.DEFAULT_API_URL
	if rawAPIBaseURL := os.Getenv("BRAWLTOOLS_API_URL"); rawAPIBaseURL != "" {
		parsed, err := parseAPIBaseURL(rawAPIBaseURL)
		if err != nil {
			return Config{}, err
		}
		apiBaseURL = parsed
	}

	port := defaultPort
	if rawPort := os.Getenv("PORT"); rawPort != "" {
		parsed, err := strconv.Atoi(rawPort)
		if err != nil || parsed <= 0 || parsed > 65535 {
			return Config{}, fmt.Errorf("%w: PORT (%s)", ErrInvalidValue, rawPort)
		}
		port = rawPort
	}

	cloudSQLUnixSocketPath := os.Getenv("CLOUDSQL_UNIX_SOCKET")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbUsername := os.Getenv("DB_USERNAME")
	sentryDSN := os.Getenv("SENTRY_DSN")
	googleCloudProject := os.Getenv("GOOGLE_CLOUD_PROJECT")

	if env == production || env == staging {
		if cloudSQLUnixSocketPath == "" {
			return missingKey("CLOUDSQL_UNIX_SOCKET")
		}
		if dbUsername == "" {
			return missingKey("DB_USERNAME")
		}
		if dbPassword == "" {
			return missingKey("DB_PASSWORD")
		}
		if sentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
	}

	return Config{
		apiBaseURL:             apiBaseURL,
		cloudSQLUnixSocketPath: cloudSQLUnixSocketPath,
		dBPassword:             dbPassword,
		dBUsername:             dbUsername,
		sentryDSN:              sentryDSN,
		googleCloudProject:     googleCloudProject,
		port:                   port,
		env:                    env,
	}, nil
}
