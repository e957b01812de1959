// Package config loads pipeline configuration and assembles the explicit
// [Context] threaded through normalize instead of ambient globals: the
// oracle handle, the KV store handle, pacing parameters, and a logger.
//
// File configuration is JSONC (JSON with comments and trailing commas):
// github.com/tidwall/jsonc strips comments/trailing commas while
// preserving byte length, then encoding/json does the actual decode.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tidwall/jsonc"

	"github.com/haldor-ness/docbasis/kvstore"
	"github.com/haldor-ness/docbasis/oracle"
	"github.com/haldor-ness/docbasis/oracle/anthropicprovider"
	"github.com/haldor-ness/docbasis/oracle/cached"
	"github.com/haldor-ness/docbasis/oracle/groqprovider"
	"github.com/haldor-ness/docbasis/oracle/openaiprovider"
)

// Provider names accepted by File's "provider" field.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGroq      = "groq"
)

// File is the on-disk JSONC shape consumed by [Load].
type File struct {
	Provider  string `json:"provider"`
	APIKey    string `json:"api_key"`
	Model     string `json:"model,omitempty"`
	StorePath string `json:"store_path"`
	LogLevel  string `json:"log_level,omitempty"`
}

// Context is the explicit handle set threaded through the normalize
// pipeline: every stage that needs the oracle, the cache, pacing
// parameters, or a logger takes one of these rather than reaching for a
// package-level global.
type Context struct {
	Oracle      *cached.Cache
	Store       *kvstore.Store
	PacingDelay time.Duration
	Logger      *slog.Logger
}

// Close releases the resources Context owns. Callers open a Context once
// per normalize call and close it when the pipeline returns, per spec
// section 5's "KV store handle opened once per normalize call" resource
// rule.
func (c *Context) Close() error {
	if c.Store == nil {
		return nil
	}
	return c.Store.Close()
}

// Load reads and decodes a JSONC config file at path, opens its KV store,
// and constructs the oracle provider it names.
func Load(path string, logger *slog.Logger) (*Context, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var f File
	if err := json.Unmarshal(jsonc.ToJSON(raw), &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return New(f, logger)
}

// New constructs a Context directly from a decoded File, useful for
// callers that assemble configuration programmatically rather than
// reading a JSONC file. Load calls it after decoding its file.
func New(f File, logger *slog.Logger) (*Context, error) {
	o, err := buildOracle(f)
	if err != nil {
		return nil, err
	}

	store, err := kvstore.Open(f.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Context{
		Oracle:      cached.New(o, store),
		Store:       store,
		PacingDelay: 1 * time.Second,
		Logger:      logger,
	}, nil
}

// buildOracle constructs the named provider. Each provider's New already
// substitutes its own DefaultModel when f.Model is empty, so the model is
// passed through verbatim.
func buildOracle(f File) (oracle.Oracle, error) {
	switch f.Provider {
	case ProviderOpenAI:
		return openaiprovider.New(f.APIKey, f.Model), nil
	case ProviderAnthropic:
		return anthropicprovider.New(f.APIKey, f.Model), nil
	case ProviderGroq:
		return groqprovider.New(f.APIKey, f.Model), nil
	default:
		return nil, fmt.Errorf("unknown oracle provider %q (expected one of %q, %q, %q)",
			f.Provider, ProviderOpenAI, ProviderAnthropic, ProviderGroq)
	}
}
