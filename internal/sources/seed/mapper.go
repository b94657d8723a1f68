package seed

import (
	"sort"
	"strings"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
)

// Map converts a seed file into create inputs, in file order. Entries without
// a url are skipped. When a single list item holds several keys they are taken
// in name order, since YAML mappings carry no order once decoded.
func Map(file File) []domain.CreateInput {
	var inputs []domain.CreateInput
	for _, group := range file {
		for _, category := range sortedKeys(group) {
			for _, item := range group[category] {
				for _, name := range sortedKeys(item) {
					entry := item[name]
					if strings.TrimSpace(entry.URL) == "" {
						continue
					}
					inputs = append(inputs, toInput(category, name, entry))
				}
			}
		}
	}
	return inputs
}

func toInput(category, name string, e Entry) domain.CreateInput {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.CreateInput{
		Name:             strings.TrimSpace(name),
		URL:              strings.TrimSpace(e.URL),
		ShortDescription: strings.TrimSpace(e.Description),
		Category:         strings.TrimSpace(category),
		Pricing:          strings.TrimSpace(e.Pricing),
		Tags:             tags,
		Featured:         e.Featured,
		Language:         strings.TrimSpace(e.Language),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
