package protocol

import (
	"encoding/json"
	"fmt"
)

type typeTag struct {
	Type string `json:"type"`
}

// PeekType reads just the discriminator field out of a JSON object body,
// without unmarshaling the rest — used to pick which concrete struct to
// decode a frame into.
func PeekType(body []byte) (string, error) {
	var t typeTag
	if err := json.Unmarshal(body, &t); err != nil {
		return "", fmt.Errorf("protocol: peek type: %w", err)
	}
	if t.Type == "" {
		return "", fmt.Errorf("protocol: missing type field")
	}
	return t.Type, nil
}
