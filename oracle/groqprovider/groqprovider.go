// Package groqprovider backs the oracle.Oracle capability set with
// Groq's chat completions API. Groq's API is OpenAI-wire-compatible, so
// this provider reuses github.com/openai/openai-go pointed at Groq's
// base URL rather than a Groq-specific client — see DESIGN.md.
package groqprovider

import (
	"github.com/haldor-ness/docbasis/oracle"
	"github.com/haldor-ness/docbasis/oracle/openaiwire"
)

// BaseURL is Groq's OpenAI-compatible endpoint.
const BaseURL = "https://api.groq.com/openai/v1"

// DefaultModel is used when config.File.Model is unset for this
// provider.
const DefaultModel = "llama-3.3-70b-versatile"

// New constructs an oracle.Oracle backed by Groq's endpoint.
func New(apiKey, model string) oracle.Oracle {
	if model == "" {
		model = DefaultModel
	}
	return openaiwire.New(apiKey, BaseURL, model)
}
