package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCreateInput(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected CreateInput
	}{
		{
			name: "minimal body",
			body: `{"name":"Alpha","url":"https://a.example","shortDescription":"desc"}`,
			expected: CreateInput{
				Name: "Alpha", URL: "https://a.example", ShortDescription: "desc",
				Tags: []string{},
			},
		},
		{
			name: "full body uses create wire names",
			body: `{"name":"Beta","url":"https://b.example","shortDescription":"d",
				"mainCategory":"coding-development","pricing":"free","tags":["go","cli"],
				"isFeatured":true,"language":"English"}`,
			expected: CreateInput{
				Name: "Beta", URL: "https://b.example", ShortDescription: "d",
				Category: "coding-development", Pricing: "free",
				Tags: []string{"go", "cli"}, Featured: true, Language: "English",
			},
		},
		{
			name: "tags not an array fall back to empty",
			body: `{"name":"A","url":"u","shortDescription":"d","tags":"go"}`,
			expected: CreateInput{
				Name: "A", URL: "u", ShortDescription: "d", Tags: []string{},
			},
		},
		{
			name: "wrong typed name is treated as absent",
			body: `{"name":42,"url":"u","shortDescription":"d"}`,
			expected: CreateInput{
				URL: "u", ShortDescription: "d", Tags: []string{},
			},
		},
		{
			name: "truthy isFeatured string",
			body: `{"name":"A","url":"u","shortDescription":"d","isFeatured":"yes"}`,
			expected: CreateInput{
				Name: "A", URL: "u", ShortDescription: "d", Tags: []string{}, Featured: true,
			},
		},
		{
			name: "falsy isFeatured zero",
			body: `{"name":"A","url":"u","shortDescription":"d","isFeatured":0}`,
			expected: CreateInput{
				Name: "A", URL: "u", ShortDescription: "d", Tags: []string{},
			},
		},
		{
			name:     "empty body",
			body:     ``,
			expected: CreateInput{Tags: []string{}},
		},
		{
			name:     "array body has no fields",
			body:     `[1,2,3]`,
			expected: CreateInput{Tags: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCreateInput([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecodeCreateInputMalformed(t *testing.T) {
	_, err := DecodeCreateInput([]byte(`{"name":`))
	assert.ErrorIs(t, err, ErrMalformedBody)
}

func TestCreateInputToolDefaults(t *testing.T) {
	in := CreateInput{Name: "Alpha", URL: "https://a.example", ShortDescription: "desc"}
	got := in.Tool("abcdefghij")

	assert.Equal(t, Tool{
		ID:               "abcdefghij",
		Name:             "Alpha",
		ShortDescription: "desc",
		URL:              "https://a.example",
		Category:         DefaultCategory,
		Pricing:          DefaultPricing,
		Tags:             []string{},
	}, got)
}

func TestDecodePatchTypeGuard(t *testing.T) {
	p, err := DecodePatch([]byte(`{
		"name": "Renamed",
		"url": 12,
		"tags": "not-a-list",
		"featured": "true",
		"category": null,
		"pricing": "paid",
		"id": "hijack"
	}`))
	require.NoError(t, err)

	require.NotNil(t, p.Name)
	assert.Equal(t, "Renamed", *p.Name)
	require.NotNil(t, p.Pricing)
	assert.Equal(t, "paid", *p.Pricing)
	assert.Nil(t, p.URL)
	assert.Nil(t, p.Tags)
	assert.Nil(t, p.Featured)
	assert.Nil(t, p.Category)
	assert.Nil(t, p.ShortDescription)
}

func TestPatchApply(t *testing.T) {
	current := Tool{
		ID: "id00000001", Name: "Alpha", URL: "https://a.example", ShortDescription: "desc",
		Category: "coding-development", Pricing: "free", Tags: []string{"go"}, Featured: true,
	}

	p, err := DecodePatch([]byte(`{"shortDescription":"","tags":[],"featured":false}`))
	require.NoError(t, err)

	got := p.Apply(current)
	assert.Equal(t, "id00000001", got.ID)
	assert.Equal(t, "Alpha", got.Name)
	assert.Equal(t, "", got.ShortDescription, "blank strings are accepted on update")
	assert.Equal(t, []string{}, got.Tags)
	assert.False(t, got.Featured)
	assert.Equal(t, []string{"go"}, current.Tags, "input record must not be mutated")
}

func TestPatchIsEmpty(t *testing.T) {
	assert.True(t, Patch{}.IsEmpty())
	name := "x"
	assert.False(t, Patch{Name: &name}.IsEmpty())
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		raw      string
		expected bool
	}{
		{"true", true},
		{"false", false},
		{"null", false},
		{"0", false},
		{"0.0", false},
		{"-0", false},
		{"1", true},
		{`""`, false},
		{`"false"`, true},
		{"[]", true},
		{"{}", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, truthy([]byte(tt.raw)))
		})
	}
}
