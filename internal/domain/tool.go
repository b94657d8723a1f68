package domain

// Tool represents one catalog entry.
//
// The JSON shape is the persisted and wire format: the whole collection is
// stored as a JSON array of Tool values.
type Tool struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is minted once at creation and never changes.
	// Example: "V1StGXR8_Z"
	ID string `json:"id"`

	// ─────────────────────────────
	// Display
	// ─────────────────────────────

	Name             string `json:"name"`
	ShortDescription string `json:"shortDescription"`
	URL              string `json:"url"`

	// ─────────────────────────────
	// Classification
	// ─────────────────────────────

	// Category is one of Categories, or DefaultCategory.
	// Not enforced server-side.
	Category string `json:"category"`

	// Pricing is one of PricingModels, or DefaultPricing.
	Pricing string `json:"pricing"`

	// Tags is never nil once normalized, so it encodes as [] rather than null.
	Tags []string `json:"tags"`

	Featured bool `json:"featured"`

	// Language describes the tool's operating language(s). Optional.
	Language string `json:"language,omitempty"`
}

// Clone returns a deep copy so callers cannot alias the stored tag slice.
func (t Tool) Clone() Tool {
	c := t
	c.Tags = make([]string, len(t.Tags))
	copy(c.Tags, t.Tags)
	return c
}

// Normalize fills the zero values that must not leak into JSON as null.
func (t Tool) Normalize() Tool {
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t
}

// CloneAll deep-copies a collection.
func CloneAll(tools []Tool) []Tool {
	out := make([]Tool, len(tools))
	for i, t := range tools {
		out[i] = t.Clone()
	}
	return out
}

// IndexOf returns the position of the tool with the given id, or -1.
func IndexOf(tools []Tool, id string) int {
	for i := range tools {
		if tools[i].ID == id {
			return i
		}
	}
	return -1
}
