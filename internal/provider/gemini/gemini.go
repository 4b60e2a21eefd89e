package gemini

import (
	"context"
	"fmt"
	"io"
	"iter"

	"github.com/alan-mat/deepresearch/internal/api"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-1.5-flash"

type GeminiProvider struct {
	client  *genai.Client
	initErr error
}

// New creates a Gemini provider. Client construction errors, such as a
// missing API key, are reported by the first call to Generate.
func New(ctx context.Context, apiKey string) *GeminiProvider {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		err = fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{
		client:  c,
		initErr: err,
	}
}

func (p GeminiProvider) Generate(ctx context.Context, req api.GenerationRequest) (api.CompletionStream, error) {
	if p.initErr != nil {
		return nil, p.initErr
	}

	config := &genai.GenerateContentConfig{
		Temperature: &req.Temperature,
	}

	modelName := DefaultModel
	if req.ModelName != "" {
		modelName = req.ModelName
	}

	contents := genai.Text(req.Prompt)
	i := p.client.Models.GenerateContentStream(ctx, modelName, contents, config)

	next, stop := iter.Pull2(i)
	return NewCompletionStream(next, stop), nil
}

type GeminiCompletionStream struct {
	next func() (*genai.GenerateContentResponse, error, bool)
	stop func()
}

// NewCompletionStream wraps a pulled response iterator.
func NewCompletionStream(next func() (*genai.GenerateContentResponse, error, bool), stop func()) *GeminiCompletionStream {
	return &GeminiCompletionStream{
		next: next,
		stop: stop,
	}
}

func (s GeminiCompletionStream) Recv() (string, error) {
	res, err, valid := s.next()
	if !valid {
		// iterator is finished
		return "", io.EOF
	}

	if err != nil {
		return "", err
	}

	if res == nil {
		return "", nil
	}
	return res.Text(), nil
}

func (s GeminiCompletionStream) Close() error {
	s.stop()
	return nil
}
