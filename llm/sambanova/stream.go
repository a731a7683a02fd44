package sambanova

import (
	"bufio"
	"context"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"sambanova-go/llm"
)

const doneSentinel = "[DONE]"

// decodeStream consumes SSE-style data lines from r and accumulates content
// deltas into a single result. Malformed fragments are counted and skipped;
// a usage fragment overwrites any earlier one. Decoding stops at the [DONE]
// sentinel, on end of stream, or when ctx is cancelled.
//
// Only a transport-level read failure is an error. A call that fails
// mid-stream returns no result: the contract is all-or-nothing.
func decodeStream(ctx context.Context, scanner *bufio.Scanner, onChunk func(string)) (*llm.StreamResult, error) {
	result := &llm.StreamResult{}
	var content strings.Builder

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, &llm.RequestError{Err: ctx.Err()}
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "data:") {
			// keep-alive or comment frame
			continue
		}

		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == doneSentinel {
			break
		}

		if !gjson.Valid(data) {
			result.Skipped++
			continue
		}
		parsed := gjson.Parse(data)

		if delta := parsed.Get("choices.0.delta.content"); delta.Exists() && delta.String() != "" {
			content.WriteString(delta.String())
			if onChunk != nil {
				onChunk(delta.String())
			}
		}

		if u := parsed.Get("usage"); u.IsObject() {
			var usage llm.Usage
			if err := json.Unmarshal([]byte(u.Raw), &usage); err == nil {
				result.Usage = &usage
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &llm.RequestError{Err: err}
	}

	result.Content = content.String()
	return result, nil
}
