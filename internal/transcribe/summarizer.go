package transcribe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const summarySystemPrompt = `You are a clinical scribe. Summarize the visit transcript ` +
	`into a concise note a physician can review in under a minute. Cover the chief ` +
	`complaint, relevant findings, assessment, and plan. Do not invent details that ` +
	`are not in the transcript.`

// Summarizer turns a visit transcript into a clinical summary.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// BedrockConverseAPI is the subset of the Bedrock client used for
// summarization.
type BedrockConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockSummarizer generates summaries through the Bedrock Converse API.
type BedrockSummarizer struct {
	client  BedrockConverseAPI
	modelID string
}

// NewBedrockSummarizer creates a summarizer for the given model.
func NewBedrockSummarizer(client BedrockConverseAPI, modelID string) *BedrockSummarizer {
	if client == nil {
		panic("transcribe: bedrock client cannot be nil")
	}
	if modelID == "" {
		panic("transcribe: bedrock model id cannot be empty")
	}
	return &BedrockSummarizer{client: client, modelID: modelID}
}

// Summarize sends the transcript to Bedrock and returns the summary text.
func (s *BedrockSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", errors.New("transcribe: transcript is empty")
	}

	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(s.modelID),
		System: []brtypes.SystemContentBlock{
			&brtypes.SystemContentBlockMemberText{Value: summarySystemPrompt},
		},
		Messages: []brtypes.Message{
			{
				Role: brtypes.ConversationRoleUser,
				Content: []brtypes.ContentBlock{
					&brtypes.ContentBlockMemberText{Value: transcript},
				},
			},
		},
		InferenceConfig: &brtypes.InferenceConfiguration{
			MaxTokens:   aws.Int32(1024),
			Temperature: aws.Float32(0.0),
		},
	}

	resp, err := s.client.Converse(ctx, input)
	if err != nil {
		return "", fmt.Errorf("transcribe: bedrock converse: %w", err)
	}

	output, ok := resp.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok || len(output.Value.Content) == 0 {
		return "", errors.New("transcribe: bedrock returned no content")
	}
	text, ok := output.Value.Content[0].(*brtypes.ContentBlockMemberText)
	if !ok {
		return "", errors.New("transcribe: bedrock returned non-text content")
	}
	return strings.TrimSpace(text.Value), nil
}

// GeminiSummarizer generates summaries through the Gemini API. Used as a
// fallback when no Bedrock model is configured.
type GeminiSummarizer struct {
	client  *genai.Client
	modelID string
}

// NewGeminiSummarizer creates a Gemini-backed summarizer.
func NewGeminiSummarizer(ctx context.Context, apiKey, modelID string) (*GeminiSummarizer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("transcribe: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("transcribe: create gemini client: %w", err)
	}
	return &GeminiSummarizer{client: client, modelID: modelID}, nil
}

// Summarize sends the transcript to Gemini and returns the summary text.
func (s *GeminiSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", errors.New("transcribe: transcript is empty")
	}

	model := s.client.GenerativeModel(s.modelID)
	model.SetTemperature(0)
	model.SystemInstruction = genai.NewUserContent(genai.Text(summarySystemPrompt))

	resp, err := model.GenerateContent(ctx, genai.Text(transcript))
	if err != nil {
		return "", fmt.Errorf("transcribe: gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("transcribe: gemini returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	summary := strings.TrimSpace(sb.String())
	if summary == "" {
		return "", errors.New("transcribe: gemini returned empty summary")
	}
	return summary, nil
}
