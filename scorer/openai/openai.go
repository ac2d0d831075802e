// Package openai provides a scorer.Scorer backed by the OpenAI Chat
// Completions API. It renders the persona instruction from the agent's
// profile, requests a JSON evaluation and parses the response into a
// ScoreRecord.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/prefmesh/prefmesh/scorer"
)

// Options configure the OpenAI scorer adapter.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Scorer wraps the OpenAI Chat Completions API behind the scorer.Scorer interface.
type Scorer struct {
	client   *openai.Client
	profiles scorer.ProfileSource
	opts     Options
}

// NewScorer creates a new OpenAI scorer using the official client.
func NewScorer(profiles scorer.ProfileSource, optFns ...func(o *Options)) *Scorer {
	client := openai.NewClient()
	return NewScorerFromClient(&client, profiles, optFns...)
}

// NewScorerFromClient creates a new OpenAI scorer from an existing client.
func NewScorerFromClient(client *openai.Client, profiles scorer.ProfileSource, optFns ...func(o *Options)) *Scorer {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Scorer{client: client, profiles: profiles, opts: opts}
}

// Score implements scorer.Scorer.
func (s *Scorer) Score(ctx context.Context, agentID, adID, adContent string) (scorer.ScoreRecord, error) {
	profile, err := s.profiles.Profile(agentID)
	if err != nil {
		return scorer.ScoreRecord{}, fmt.Errorf("resolve profile: %w", err)
	}

	params := openai.ChatCompletionNewParams{
		Model: s.opts.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(scorer.Instruction(profile)),
			openai.UserMessage(scorer.EvaluationPrompt(adID, adContent)),
		},
		Temperature:         openai.Float(s.opts.Temperature),
		MaxCompletionTokens: openai.Int(s.opts.MaxCompletionTokens),
	}

	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return scorer.ScoreRecord{}, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return scorer.ScoreRecord{}, fmt.Errorf("openai returned no choices")
	}

	return scorer.ParseRecord(agentID, adID, resp.Choices[0].Message.Content)
}
