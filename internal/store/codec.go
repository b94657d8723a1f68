// Package store holds the collection encoding shared by every catalog backend.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
)

// EmptyCollection is the serialized form of an empty catalog.
var EmptyCollection = []byte("[]")

// Encode serializes the whole collection as an indented JSON array.
func Encode(tools []domain.Tool) ([]byte, error) {
	if tools == nil {
		tools = []domain.Tool{}
	}
	normalized := make([]domain.Tool, len(tools))
	for i, t := range tools {
		normalized[i] = t.Normalize()
	}
	data, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode tools: %w", err)
	}
	return data, nil
}

// Decode parses a stored collection. Empty input and any top-level JSON value
// other than an array decode to an empty collection; malformed JSON is an error.
func Decode(data []byte) ([]domain.Tool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []domain.Tool{}, nil
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("failed to parse tools: invalid JSON")
	}
	if trimmed[0] != '[' {
		return []domain.Tool{}, nil
	}

	var tools []domain.Tool
	if err := json.Unmarshal(trimmed, &tools); err != nil {
		return nil, fmt.Errorf("failed to parse tools: %w", err)
	}
	if tools == nil {
		tools = []domain.Tool{}
	}
	for i := range tools {
		tools[i] = tools[i].Normalize()
	}
	return tools, nil
}
