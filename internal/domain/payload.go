package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// ErrMalformedBody is returned when a request body is not valid JSON.
var ErrMalformedBody = errors.New("malformed JSON body")

// CreateInput carries the fields of a create request.
//
// The JSON names are the create wire names (mainCategory, isFeatured), which
// differ from the stored record names.
type CreateInput struct {
	Name             string   `json:"name" validate:"required"`
	URL              string   `json:"url" validate:"required"`
	ShortDescription string   `json:"shortDescription" validate:"required"`
	Category         string   `json:"mainCategory,omitempty"`
	Pricing          string   `json:"pricing,omitempty"`
	Tags             []string `json:"tags"`
	Featured         bool     `json:"isFeatured"`
	Language         string   `json:"language,omitempty"`
}

// Tool builds the record for a freshly minted id, applying defaults.
func (in CreateInput) Tool(id string) Tool {
	t := Tool{
		ID:               id,
		Name:             in.Name,
		ShortDescription: in.ShortDescription,
		URL:              in.URL,
		Category:         in.Category,
		Pricing:          in.Pricing,
		Tags:             in.Tags,
		Featured:         in.Featured,
		Language:         in.Language,
	}
	if t.Category == "" {
		t.Category = DefaultCategory
	}
	if t.Pricing == "" {
		t.Pricing = DefaultPricing
	}
	return t.Normalize().Clone()
}

// Patch is a partial update. A nil field is unset and keeps the stored value.
type Patch struct {
	Name             *string   `json:"name,omitempty"`
	URL              *string   `json:"url,omitempty"`
	ShortDescription *string   `json:"shortDescription,omitempty"`
	Category         *string   `json:"category,omitempty"`
	Pricing          *string   `json:"pricing,omitempty"`
	Tags             *[]string `json:"tags,omitempty"`
	Featured         *bool     `json:"featured,omitempty"`
	Language         *string   `json:"language,omitempty"`
}

// IsEmpty reports whether the patch sets nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.URL == nil && p.ShortDescription == nil &&
		p.Category == nil && p.Pricing == nil && p.Tags == nil &&
		p.Featured == nil && p.Language == nil
}

// Apply returns t with every set field replaced. The id is never touched.
func (p Patch) Apply(t Tool) Tool {
	out := t.Clone()
	setString(&out.Name, p.Name)
	setString(&out.URL, p.URL)
	setString(&out.ShortDescription, p.ShortDescription)
	setString(&out.Category, p.Category)
	setString(&out.Pricing, p.Pricing)
	setString(&out.Language, p.Language)
	if p.Tags != nil {
		out.Tags = append([]string{}, (*p.Tags)...)
	}
	if p.Featured != nil {
		out.Featured = *p.Featured
	}
	return out.Normalize()
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// DecodeCreateInput reads a create body leniently: fields of the wrong JSON
// type are treated as absent, tags fall back to an empty list unless they are
// an array of strings, and isFeatured is coerced by JSON truthiness.
func DecodeCreateInput(data []byte) (CreateInput, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return CreateInput{}, err
	}

	in := CreateInput{Tags: []string{}}
	in.Name, _ = stringField(fields, "name")
	in.URL, _ = stringField(fields, "url")
	in.ShortDescription, _ = stringField(fields, "shortDescription")
	in.Category, _ = stringField(fields, "mainCategory")
	in.Pricing, _ = stringField(fields, "pricing")
	in.Language, _ = stringField(fields, "language")
	if tags, ok := stringSliceField(fields, "tags"); ok {
		in.Tags = tags
	}
	if raw, ok := fields["isFeatured"]; ok {
		in.Featured = truthy(raw)
	}
	return in, nil
}

// DecodePatch reads an update body. Only fields whose JSON value has the
// expected type are set; everything else is left unset.
func DecodePatch(data []byte) (Patch, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return Patch{}, err
	}

	var p Patch
	p.Name = optString(fields, "name")
	p.URL = optString(fields, "url")
	p.ShortDescription = optString(fields, "shortDescription")
	p.Category = optString(fields, "category")
	p.Pricing = optString(fields, "pricing")
	p.Language = optString(fields, "language")
	if tags, ok := stringSliceField(fields, "tags"); ok {
		p.Tags = &tags
	}
	if b, ok := boolField(fields, "featured"); ok {
		p.Featured = &b
	}
	return p, nil
}

// decodeObject returns the top-level members of a JSON object. An empty body
// or a non-object JSON value yields no fields.
func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return map[string]json.RawMessage{}, nil
	}
	if !json.Valid(data) {
		return nil, ErrMalformedBody
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return map[string]json.RawMessage{}, nil
	}
	return fields, nil
}

func optString(fields map[string]json.RawMessage, key string) *string {
	if s, ok := stringField(fields, key); ok {
		return &s
	}
	return nil
}

func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok || len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func boolField(fields map[string]json.RawMessage, key string) (bool, bool) {
	switch string(fields[key]) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

func stringSliceField(fields map[string]json.RawMessage, key string) ([]string, bool) {
	raw, ok := fields[key]
	if !ok || len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	if out == nil {
		out = []string{}
	}
	return out, true
}

// truthy mirrors JSON-value truthiness: null, false, 0 and "" are false.
func truthy(raw json.RawMessage) bool {
	s := string(bytes.TrimSpace(raw))
	switch s {
	case "", "null", "false", `""`:
		return false
	}
	if c := s[0]; c == '-' || (c >= '0' && c <= '9') {
		f, err := strconv.ParseFloat(s, 64)
		return err != nil || f != 0
	}
	return true
}
