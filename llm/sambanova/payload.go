package sambanova

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"sambanova-go/llm"
)

// buildChatPayload assembles the request body for a text chat call.
// The model is gated against the chat catalog before anything else.
func buildChatPayload(prompt, model, systemPrompt string, maxTokens int) (*llm.RequestPayload, error) {
	if err := llm.ValidateChatModel(model); err != nil {
		return nil, err
	}

	var messages []llm.Message
	if systemPrompt != "" {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})

	return newPayload(messages, model, maxTokens), nil
}

// buildVisionPayload assembles the request body for an image+text call.
// The image bytes are embedded as a base64 data URL in the content array.
func buildVisionPayload(prompt string, image []byte, mime, model string, maxTokens int) (*llm.RequestPayload, error) {
	if err := llm.ValidateVisionModel(model); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(image))
	parts := []llm.ContentPart{
		{Type: "text", Text: prompt},
		{Type: "image_url", ImageURL: &llm.ImageURL{URL: url}},
	}
	messages := []llm.Message{{Role: llm.RoleUser, Content: parts}}

	return newPayload(messages, model, maxTokens), nil
}

func newPayload(messages []llm.Message, model string, maxTokens int) *llm.RequestPayload {
	return &llm.RequestPayload{
		Body: llm.RequestBody{
			Messages:      messages,
			MaxTokens:     maxTokens,
			Stop:          []string{"<|eot_id|>"},
			Stream:        true,
			StreamOptions: llm.StreamOptions{IncludeUsage: true},
			Model:         model,
			EnvType:       "text",
			Fingerprint:   uuid.NewString(),
		},
	}
}

// loadImage reads a local image file and sniffs its mime type from the
// extension, defaulting to jpeg.
func loadImage(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &llm.ImageUnavailableError{Path: path, Err: err}
	}

	mime := "image/jpeg"
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".png"):
		mime = "image/png"
	case strings.HasSuffix(strings.ToLower(path), ".gif"):
		mime = "image/gif"
	case strings.HasSuffix(strings.ToLower(path), ".webp"):
		mime = "image/webp"
	}

	return data, mime, nil
}
