// Package anthropicprovider backs the oracle.Oracle capability set with
// Anthropic's Messages API via github.com/anthropics/anthropic-sdk-go.
package anthropicprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/haldor-ness/docbasis/oracle"
	"github.com/haldor-ness/docbasis/xerr"
)

// DefaultModel is used when config.File.Model is unset for this
// provider.
const DefaultModel = anthropic.ModelClaude3_5HaikuLatest

const systemPrompt = "You are a structural classifier for semi-structured markup documents. " +
	"Respond with a single JSON object matching the requested shape and nothing else: no prose, no markdown fences."

// Provider is an oracle.Oracle backed by Anthropic's Messages API.
type Provider struct {
	client anthropic.Client
	model  anthropic.Model
}

var _ oracle.Oracle = (*Provider)(nil)

// New constructs a Provider.
func New(apiKey, model string) *Provider {
	m := anthropic.Model(model)
	if model == "" {
		m = DefaultModel
	}
	return &Provider{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  m,
	}
}

// complete sends one message request, priming the assistant turn with
// "{" so the model continues directly into a JSON object rather than
// prose, and returns the reassembled text.
func (p *Provider) complete(ctx context.Context, user string) (string, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
			anthropic.NewAssistantMessage(anthropic.NewTextBlock("{")),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("anthropicprovider: empty content in message response")
	}
	return "{" + resp.Content[0].Text, nil
}

func decodeJSON[T any](raw string) (T, error) {
	var out T
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &out)
	return out, err
}

func (p *Provider) GetPageType(ctx context.Context, page string) (oracle.PageClassification, error) {
	prompt := fmt.Sprintf(
		"Classify this page. Respond as JSON: {\"page_type_id\":string,\"name\":string,\"core_purpose\":string,\"has_recursive\":bool}.\n\nPage:\n%s",
		page,
	)
	raw, err := p.complete(ctx, prompt)
	if err != nil {
		return oracle.PageClassification{}, xerr.New(xerr.OracleFailure, "get_page_type", "message request failed").WithCause(err)
	}
	out, err := decodeJSON[oracle.PageClassification](raw)
	if err != nil {
		return oracle.PageClassification{}, xerr.New(xerr.OracleFailure, "get_page_type", "malformed JSON response").WithCause(err)
	}
	return out, nil
}

func (p *Provider) InterpretAssociations(ctx context.Context, snippets [][2]string) ([][]string, error) {
	prompt := fmt.Sprintf(
		"Group these (label, snippet) pairs into related clusters. Respond as a JSON array of arrays of labels.\n\nPairs:\n%v",
		snippets,
	)
	raw, err := p.complete(ctx, prompt)
	if err != nil {
		return nil, xerr.New(xerr.OracleFailure, "interpret_associations", "message request failed").WithCause(err)
	}
	out, err := decodeJSON[[][]string](raw)
	if err != nil {
		return nil, xerr.New(xerr.OracleFailure, "interpret_associations", "malformed JSON response").WithCause(err)
	}
	return out, nil
}

func (p *Provider) InterpretDataStructure(ctx context.Context, snippets []string) (oracle.RecursiveStructure, error) {
	prompt := fmt.Sprintf(
		"Given these representative snippets of a repeating substructure, infer its recursion shape. "+
			"Respond as JSON: {\"is_recursive\":bool,\"item_name\":string,\"depth\":int}.\n\nSnippets:\n%v",
		snippets,
	)
	raw, err := p.complete(ctx, prompt)
	if err != nil {
		return oracle.RecursiveStructure{}, xerr.New(xerr.OracleFailure, "interpret_data_structure", "message request failed").WithCause(err)
	}
	out, err := decodeJSON[oracle.RecursiveStructure](raw)
	if err != nil {
		return oracle.RecursiveStructure{}, xerr.New(xerr.OracleFailure, "interpret_data_structure", "malformed JSON response").WithCause(err)
	}
	return out, nil
}

func (p *Provider) InterpretElementData(ctx context.Context, attributes, snippets []string, corePurpose string) ([]oracle.NodeData, error) {
	prompt := fmt.Sprintf(
		"Page purpose: %s\nMeaningful attributes: %v\nRepresentative snippets: %v\n\n"+
			"Label each distinct field on this element. Respond as a JSON array of objects: "+
			"{\"name\":string,\"element_fields\":{\"attribute\":string,\"is_id\":bool}|null,\"text_fields\":{\"informational\":bool}|null}.",
		corePurpose, attributes, snippets,
	)
	raw, err := p.complete(ctx, prompt)
	if err != nil {
		return nil, xerr.New(xerr.OracleFailure, "interpret_element_data", "message request failed").WithCause(err)
	}
	out, err := decodeJSON[[]oracle.NodeData](raw)
	if err != nil {
		return nil, xerr.New(xerr.OracleFailure, "interpret_element_data", "malformed JSON response").WithCause(err)
	}
	return out, nil
}

func (p *Provider) InterpretTextData(ctx context.Context, snippets []string, corePurpose string) (oracle.NodeData, error) {
	prompt := fmt.Sprintf(
		"Page purpose: %s\nRepresentative text snippets: %v\n\n"+
			"Label this text node's field. Respond as JSON: "+
			"{\"name\":string,\"text_fields\":{\"informational\":bool}}.",
		corePurpose, snippets,
	)
	raw, err := p.complete(ctx, prompt)
	if err != nil {
		return oracle.NodeData{}, xerr.New(xerr.OracleFailure, "interpret_text_data", "message request failed").WithCause(err)
	}
	out, err := decodeJSON[oracle.NodeData](raw)
	if err != nil {
		return oracle.NodeData{}, xerr.New(xerr.OracleFailure, "interpret_text_data", "malformed JSON response").WithCause(err)
	}
	return out, nil
}

func (p *Provider) InterpretNode(ctx context.Context, descriptor string) (string, error) {
	prompt := fmt.Sprintf(
		"Given this node descriptor (its own field names, and each child's propagated type name or field names), "+
			"assign a single semantic complex-type name. Respond as JSON: {\"name\":string}.\n\nDescriptor:\n%s",
		descriptor,
	)
	raw, err := p.complete(ctx, prompt)
	if err != nil {
		return "", xerr.New(xerr.OracleFailure, "interpret_node", "message request failed").WithCause(err)
	}
	out, err := decodeJSON[struct {
		Name string `json:"name"`
	}](raw)
	if err != nil {
		return "", xerr.New(xerr.OracleFailure, "interpret_node", "malformed JSON response").WithCause(err)
	}
	return out.Name, nil
}
