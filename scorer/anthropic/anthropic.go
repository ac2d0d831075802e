// Package anthropic provides a scorer.Scorer backed by the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/prefmesh/prefmesh/scorer"
)

// Options configure the Anthropic scorer adapter (model id, temperature,
// max tokens, API key).
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Scorer wraps the Anthropic Messages API behind the scorer.Scorer interface.
type Scorer struct {
	client   *anthropic.Client
	profiles scorer.ProfileSource
	opts     Options
}

// NewScorer creates a new Anthropic scorer using the official client.
func NewScorer(profiles scorer.ProfileSource, optFns ...func(o *Options)) *Scorer {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Scorer{client: &client, profiles: profiles, opts: opts}
}

// NewScorerFromClient creates a new Anthropic scorer from an existing client.
func NewScorerFromClient(client *anthropic.Client, profiles scorer.ProfileSource, optFns ...func(o *Options)) *Scorer {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Scorer{client: client, profiles: profiles, opts: opts}
}

func defaultOptions() Options {
	return Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   1024,
	}
}

// Score implements scorer.Scorer.
func (s *Scorer) Score(ctx context.Context, agentID, adID, adContent string) (scorer.ScoreRecord, error) {
	profile, err := s.profiles.Profile(agentID)
	if err != nil {
		return scorer.ScoreRecord{}, fmt.Errorf("resolve profile: %w", err)
	}

	params := anthropic.MessageNewParams{
		Model:       s.opts.Model,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: anthropic.Float(s.opts.Temperature),
		System:      []anthropic.TextBlockParam{{Text: scorer.Instruction(profile)}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(scorer.EvaluationPrompt(adID, adContent))),
		},
	}

	resp, err := s.client.Messages.New(ctx, params)
	if err != nil {
		return scorer.ScoreRecord{}, fmt.Errorf("anthropic api error: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.AsText().Text)
		}
	}
	if text.Len() == 0 {
		return scorer.ScoreRecord{}, fmt.Errorf("anthropic returned no text content")
	}

	return scorer.ParseRecord(agentID, adID, text.String())
}
