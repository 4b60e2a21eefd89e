package cohere

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alan-mat/deepresearch/internal/api"
	co "github.com/cohere-ai/cohere-go/v2"
	coclient "github.com/cohere-ai/cohere-go/v2/client"
	cocore "github.com/cohere-ai/cohere-go/v2/core"
	"github.com/cohere-ai/cohere-go/v2/option"
)

const DefaultModel = "command-r-08-2024"

type CohereProvider struct {
	client *coclient.Client
}

func New(apiKey string, baseURL string) *CohereProvider {
	opts := []option.RequestOption{
		coclient.WithToken(apiKey),
		coclient.WithHTTPClient(
			&http.Client{
				Timeout: 60 * time.Second,
			},
		),
	}
	if baseURL != "" {
		opts = append(opts, coclient.WithBaseURL(baseURL))
	}
	return &CohereProvider{
		client: coclient.NewClient(opts...),
	}
}

func (p CohereProvider) Generate(ctx context.Context, req api.GenerationRequest) (api.CompletionStream, error) {
	temp := float64(req.Temperature)
	cohereReq := &co.V2ChatStreamRequest{
		Model:       DefaultModel,
		Temperature: &temp,
		Messages: co.ChatMessages{
			{
				Role: "user",
				User: &co.UserMessage{Content: &co.UserMessageContent{
					String: req.Prompt,
				}},
			},
		},
	}

	if req.ModelName != "" {
		cohereReq.Model = req.ModelName
	}

	stream, err := p.client.V2.ChatStream(ctx, cohereReq)
	if err != nil {
		return nil, fmt.Errorf("chat streaming request failed: %w", err)
	}

	return &CohereCompletionStream{stream: stream}, nil
}

type CohereCompletionStream struct {
	stream *cocore.Stream[co.StreamedChatResponseV2]
}

// Recv skips events until the next content delta.
func (s CohereCompletionStream) Recv() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if err != nil {
			return "", err
		}

		delta := resp.ContentDelta
		if delta == nil || delta.Delta == nil || delta.Delta.Message == nil ||
			delta.Delta.Message.Content == nil || delta.Delta.Message.Content.Text == nil {
			continue
		}
		return *delta.Delta.Message.Content.Text, nil
	}
}

func (s CohereCompletionStream) Close() error {
	return s.stream.Close()
}
