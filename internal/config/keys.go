package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "organization-id").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set validates and applies a value for this key to the given Config
	// (in memory only; the caller is responsible for calling Save).
	Set func(cfg *Config, value string) error
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "api-base-url",
		Description: "Base URL of the analytics API (env DONORLENS_API_BASE_URL)",
		Get:         func(cfg *Config) string { return cfg.APIBaseURL },
		Set: func(cfg *Config, v string) error {
			u, err := url.Parse(v)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("invalid URL %q: expected scheme and host", v)
			}
			cfg.APIBaseURL = strings.TrimRight(v, "/")
			return nil
		},
	},
	{
		Name:        "organization-id",
		Description: "Organization whose dashboards are loaded",
		Get:         func(cfg *Config) string { return cfg.OrganizationID },
		Set: func(cfg *Config, v string) error {
			cfg.OrganizationID = v
			return nil
		},
	},
	{
		Name:        "fetch-retries",
		Description: "Extra attempts for transient query failures (default 0)",
		Get:         func(cfg *Config) string { return intString(cfg.FetchRetries) },
		Set: func(cfg *Config, v string) error {
			n, err := nonNegative(v)
			if err != nil {
				return err
			}
			cfg.FetchRetries = n
			return nil
		},
	},
	{
		Name:        "request-timeout",
		Description: "Per-request timeout, e.g. 30s or 1m (default 30s)",
		Get:         func(cfg *Config) string { return cfg.RequestTimeout },
		Set: func(cfg *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				return fmt.Errorf("invalid duration %q", v)
			}
			cfg.RequestTimeout = d.String()
			return nil
		},
	},
	{
		Name:        "fetch-concurrency",
		Description: "Maximum concurrent queries per tab, 0 for unlimited",
		Get:         func(cfg *Config) string { return intString(cfg.FetchConcurrency) },
		Set: func(cfg *Config, v string) error {
			n, err := nonNegative(v)
			if err != nil {
				return err
			}
			cfg.FetchConcurrency = n
			return nil
		},
	},
}

func intString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func nonNegative(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid value %q: expected a non-negative integer", v)
	}
	return n, nil
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
