// Package openaiwire implements the oracle.Oracle capability set against
// any OpenAI-wire-compatible chat completions endpoint, using
// github.com/openai/openai-go. It backs both oracle/openaiprovider
// (OpenAI's own endpoint) and oracle/groqprovider (Groq's
// OpenAI-compatible endpoint, reached by pointing the same client at a
// different base URL). See DESIGN.md for why Groq does not get its own SDK.
package openaiwire

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/haldor-ness/docbasis/oracle"
	"github.com/haldor-ness/docbasis/xerr"
)

// Provider is an oracle.Oracle backed by a chat completions endpoint.
type Provider struct {
	client openai.Client
	model  string
}

// New constructs a Provider. baseURL may be empty to use OpenAI's default
// endpoint, or set to an OpenAI-compatible endpoint such as Groq's.
func New(apiKey, baseURL, model string) *Provider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Provider{client: openai.NewClient(opts...), model: model}
}

var _ oracle.Oracle = (*Provider)(nil)

const jsonOnlySystemPrompt = "You are a structural classifier for semi-structured markup documents. " +
	"Respond with a single JSON object matching the requested shape and nothing else: no prose, no markdown fences."

// complete sends a single chat completion request and returns the raw
// assistant message content.
func (p *Provider) complete(ctx context.Context, user string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(jsonOnlySystemPrompt),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openaiwire: empty choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
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
		return oracle.PageClassification{}, xerr.New(xerr.OracleFailure, "get_page_type", "completion request failed").WithCause(err)
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
		return nil, xerr.New(xerr.OracleFailure, "interpret_associations", "completion request failed").WithCause(err)
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
		return oracle.RecursiveStructure{}, xerr.New(xerr.OracleFailure, "interpret_data_structure", "completion request failed").WithCause(err)
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
		return nil, xerr.New(xerr.OracleFailure, "interpret_element_data", "completion request failed").WithCause(err)
	}
	out, err := decodeJSON[[]wireNodeData](raw)
	if err != nil {
		return nil, xerr.New(xerr.OracleFailure, "interpret_element_data", "malformed JSON response").WithCause(err)
	}
	result := make([]oracle.NodeData, 0, len(out))
	for _, w := range out {
		result = append(result, w.toNodeData())
	}
	return result, nil
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
		return oracle.NodeData{}, xerr.New(xerr.OracleFailure, "interpret_text_data", "completion request failed").WithCause(err)
	}
	out, err := decodeJSON[wireNodeData](raw)
	if err != nil {
		return oracle.NodeData{}, xerr.New(xerr.OracleFailure, "interpret_text_data", "malformed JSON response").WithCause(err)
	}
	return out.toNodeData(), nil
}

func (p *Provider) InterpretNode(ctx context.Context, descriptor string) (string, error) {
	prompt := fmt.Sprintf(
		"Given this node descriptor (its own field names, and each child's propagated type name or field names), "+
			"assign a single semantic complex-type name. Respond as JSON: {\"name\":string}.\n\nDescriptor:\n%s",
		descriptor,
	)
	raw, err := p.complete(ctx, prompt)
	if err != nil {
		return "", xerr.New(xerr.OracleFailure, "interpret_node", "completion request failed").WithCause(err)
	}
	out, err := decodeJSON[struct {
		Name string `json:"name"`
	}](raw)
	if err != nil {
		return "", xerr.New(xerr.OracleFailure, "interpret_node", "malformed JSON response").WithCause(err)
	}
	return out.Name, nil
}

// wireNodeData is the JSON wire shape for oracle.NodeData: snake_case
// keys, nullable nested objects, matching the original's
// #[derive(Serialize, Deserialize)] field names on NodeData/
// ElementNodeData/TextNodeData.
type wireNodeData struct {
	Name          string `json:"name"`
	ElementFields *struct {
		Attribute string `json:"attribute"`
		IsID      bool   `json:"is_id"`
	} `json:"element_fields"`
	TextFields *struct {
		Informational bool `json:"informational"`
	} `json:"text_fields"`
}

func (w wireNodeData) toNodeData() oracle.NodeData {
	nd := oracle.NodeData{Name: w.Name}
	if w.ElementFields != nil {
		nd.Element = &oracle.ElementFields{Attribute: w.ElementFields.Attribute, IsID: w.ElementFields.IsID}
	}
	if w.TextFields != nil {
		nd.Text = &oracle.TextFields{Informational: w.TextFields.Informational}
	}
	return nd
}
