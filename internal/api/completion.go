package api

import (
	"context"
	"errors"
	"io"
	"strings"
)

// DefaultTemperature is the sampling temperature used by [FromPrompt].
const DefaultTemperature float32 = 0.7

type GenerationRequest struct {
	// Required
	Prompt string

	// Optional params
	ModelName   string
	Temperature float32
}

func FromPrompt(prompt string) *GenerationRequest {
	return &GenerationRequest{
		Prompt:      prompt,
		ModelName:   "",
		Temperature: DefaultTemperature,
	}
}

type CompletionStream interface {
	Recv() (string, error)
	Close() error
}

// StreamReadAll receives from a completion stream accumulating the results
// and returning the streamed chunks as a whole. The first error received from
// the stream, or the context error once ctx is done, is returned together with
// the text accumulated so far. Calling this function will always close the
// underlying stream.
func StreamReadAll(ctx context.Context, stream CompletionStream) (string, error) {
	defer stream.Close()

	var acc strings.Builder
	for {
		if err := ctx.Err(); err != nil {
			return acc.String(), err
		}

		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return acc.String(), nil
		}
		if err != nil {
			return acc.String(), err
		}

		acc.WriteString(chunk)
	}
}
