package ai

import (
	"bytes"
	"encoding/json"
	"strings"
)

// extractJSON strips markdown code fences and anything outside the
// outermost braces. Replies requested in json_object mode are usually
// clean already; this only repairs the wrapping, never the content.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end > start {
		content = content[start : end+1]
	}
	return content
}

// decodeReply parses a model reply into out. Unknown keys are ignored but
// the reply must be a single JSON object.
func decodeReply(content string, out any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(extractJSON(content))))
	if err := dec.Decode(out); err != nil {
		return err
	}
	if dec.More() {
		return errTrailingData
	}
	return nil
}

type replyError string

func (e replyError) Error() string { return string(e) }

const (
	errTrailingData replyError = "unexpected data after JSON object"
	errEmptyReply   replyError = "model returned no choices"
)
