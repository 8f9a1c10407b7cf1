package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultClaudeModel is the model used when none is configured. A small
// fast model; room descriptions are short and numerous.
const DefaultClaudeModel = "claude-haiku-4-5-20251001"

const describePromptTemplate = "You are writing room descriptions for a text adventure set in %s. " +
	"Write a vivid 2-3 sentence description of the room called %q. " +
	"Stay true to the setting. Return ONLY the description prose, no preamble."

const namePromptTemplate = "You are naming locations for a text adventure called %q. " +
	"First print one line of the form SETTING: <the physical setting the title implies, a few words>. " +
	"Then print %d location names, one per line, no numbering, each 1-4 words. " +
	"Print nothing else."

// ClaudeDescriber generates room descriptions through the Anthropic
// API.
type ClaudeDescriber struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	enabled   bool
}

// NewClaudeDescriber returns a ClaudeDescriber. An empty apiKey yields
// a permanently unavailable provider, which lets callers build the
// chain unconditionally.
func NewClaudeDescriber(apiKey, model string) *ClaudeDescriber {
	if model == "" {
		model = DefaultClaudeModel
	}
	return &ClaudeDescriber{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: 500,
		enabled:   apiKey != "",
	}
}

// Name implements Describer.
func (d *ClaudeDescriber) Name() string {
	return "claude(" + d.model + ")"
}

// DescribeRoom implements Describer.
func (d *ClaudeDescriber) DescribeRoom(ctx context.Context, worldName, roomName string) (string, error) {
	if !d.enabled {
		return "", ErrUnavailable
	}

	prompt := fmt.Sprintf(describePromptTemplate, worldName, roomName)
	message, err := d.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(d.model),
		MaxTokens: d.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("enrich: claude request: %w", err)
	}

	var b strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}

// ClaudeNamer proposes room names and a setting through the Anthropic
// API.
type ClaudeNamer struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	enabled   bool
}

// NewClaudeNamer returns a ClaudeNamer. An empty apiKey yields a
// permanently unavailable provider.
func NewClaudeNamer(apiKey, model string) *ClaudeNamer {
	if model == "" {
		model = DefaultClaudeModel
	}
	return &ClaudeNamer{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: 1000,
		enabled:   apiKey != "",
	}
}

// Name implements Namer.
func (n *ClaudeNamer) Name() string {
	return "claude(" + n.model + ")"
}

// SuggestRooms implements Namer.
func (n *ClaudeNamer) SuggestRooms(ctx context.Context, worldName string, count int) (Suggestion, error) {
	if !n.enabled {
		return Suggestion{}, ErrUnavailable
	}

	prompt := fmt.Sprintf(namePromptTemplate, worldName, count)
	message, err := n.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(n.model),
		MaxTokens: n.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return Suggestion{}, fmt.Errorf("enrich: claude request: %w", err)
	}

	var b strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return ParseSuggestion(b.String(), count), nil
}
