// Package openaiprovider backs the oracle.Oracle capability set with
// OpenAI's chat completions API.
package openaiprovider

import (
	"github.com/haldor-ness/docbasis/oracle"
	"github.com/haldor-ness/docbasis/oracle/openaiwire"
)

// DefaultModel is used when config.File.Model is unset for this
// provider.
const DefaultModel = "gpt-4o-mini"

// New constructs an oracle.Oracle backed by OpenAI's default endpoint.
func New(apiKey, model string) oracle.Oracle {
	if model == "" {
		model = DefaultModel
	}
	return openaiwire.New(apiKey, "", model)
}
