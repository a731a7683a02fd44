package sambanova

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sambanova-go/llm"
)

func TestBuildChatPayload_Shape(t *testing.T) {
	payload, err := buildChatPayload("Hi, who are you?", "Meta-Llama-3.2-1B-Instruct", "You are a helpful assistant.", 2048)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	body := payload.Body
	if len(body.Messages) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(body.Messages))
	}
	if body.Messages[0].Role != llm.RoleSystem || body.Messages[1].Role != llm.RoleUser {
		t.Fatalf("unexpected roles: %v, %v", body.Messages[0].Role, body.Messages[1].Role)
	}
	if body.Messages[1].Content != "Hi, who are you?" {
		t.Fatalf("unexpected user content: %v", body.Messages[1].Content)
	}
	if !body.Stream || !body.StreamOptions.IncludeUsage {
		t.Fatalf("expected streaming with usage enabled")
	}
	if len(body.Stop) != 1 || body.Stop[0] != "<|eot_id|>" {
		t.Fatalf("unexpected stop sequences: %v", body.Stop)
	}
	if body.EnvType != "text" {
		t.Fatalf("expected env_type=text, got %q", body.EnvType)
	}
	if body.MaxTokens != 2048 {
		t.Fatalf("unexpected max_tokens: %d", body.MaxTokens)
	}
	if body.Fingerprint == "" {
		t.Fatalf("expected a fingerprint to be generated")
	}
}

func TestBuildChatPayload_OmitsEmptySystemPrompt(t *testing.T) {
	payload, err := buildChatPayload("hi", "Meta-Llama-3.2-1B-Instruct", "", 100)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if len(payload.Body.Messages) != 1 {
		t.Fatalf("expected single user message, got %d", len(payload.Body.Messages))
	}
	if payload.Body.Messages[0].Role != llm.RoleUser {
		t.Fatalf("expected user role, got %v", payload.Body.Messages[0].Role)
	}
}

func TestBuildChatPayload_FingerprintUniquePerCall(t *testing.T) {
	a, err := buildChatPayload("same", "Meta-Llama-3.2-1B-Instruct", "same", 100)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	b, err := buildChatPayload("same", "Meta-Llama-3.2-1B-Instruct", "same", 100)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if a.Body.Fingerprint == b.Body.Fingerprint {
		t.Fatalf("expected distinct fingerprints, both %q", a.Body.Fingerprint)
	}
}

func TestBuildChatPayload_UnknownModel(t *testing.T) {
	_, err := buildChatPayload("hi", "not-a-real-model", "", 100)
	if err == nil {
		t.Fatalf("expected error for unknown model")
	}

	var notFound *llm.ModelNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ModelNotFoundError, got %T", err)
	}
}

func TestBuildVisionPayload_Shape(t *testing.T) {
	image := []byte{0xFF, 0xD8, 0xFF}
	payload, err := buildVisionPayload("describe this", image, "image/jpeg", "Llama-3.2-11B-Vision-Instruct", 512)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if len(payload.Body.Messages) != 1 {
		t.Fatalf("expected single user message, got %d", len(payload.Body.Messages))
	}

	parts, ok := payload.Body.Messages[0].Content.([]llm.ContentPart)
	if !ok {
		t.Fatalf("expected content part array, got %T", payload.Body.Messages[0].Content)
	}
	if len(parts) != 2 {
		t.Fatalf("expected text + image parts, got %d", len(parts))
	}
	if parts[0].Type != "text" || parts[0].Text != "describe this" {
		t.Fatalf("unexpected text part: %+v", parts[0])
	}
	if parts[1].Type != "image_url" || parts[1].ImageURL == nil {
		t.Fatalf("unexpected image part: %+v", parts[1])
	}

	wantURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)
	if parts[1].ImageURL.URL != wantURL {
		t.Fatalf("unexpected data URL: %q", parts[1].ImageURL.URL)
	}
}

func TestBuildVisionPayload_RejectsChatModel(t *testing.T) {
	_, err := buildVisionPayload("hi", []byte{1}, "image/jpeg", "Meta-Llama-3.2-1B-Instruct", 100)

	var notFound *llm.ModelNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ModelNotFoundError for chat model in vision call, got %v", err)
	}
}

func TestLoadImage_MissingFile(t *testing.T) {
	_, _, err := loadImage(filepath.Join(t.TempDir(), "nope.jpg"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}

	var unavailable *llm.ImageUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ImageUnavailableError, got %T", err)
	}
	if !os.IsNotExist(errors.Unwrap(err)) {
		t.Fatalf("expected wrapped not-exist error, got %v", errors.Unwrap(err))
	}
}

func TestLoadImage_MimeSniffing(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"a.jpg":  "image/jpeg",
		"b.PNG":  "image/png",
		"c.gif":  "image/gif",
		"d.webp": "image/webp",
		"e.bin":  "image/jpeg",
	}
	for name, want := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("img"), 0644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
		data, mime, err := loadImage(path)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if mime != want {
			t.Fatalf("expected mime %q for %s, got %q", want, name, mime)
		}
		if string(data) != "img" {
			t.Fatalf("unexpected bytes for %s: %q", name, data)
		}
	}
}
