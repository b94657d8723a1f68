package redis

import "strings"

const (
	// DefaultKeyPrefix namespaces every key written by toolshelf.
	DefaultKeyPrefix = "toolshelf:"
	// keyTools holds the whole collection as one JSON document.
	keyTools = "tools"
)

// ToolsKey returns the key holding the collection for prefix.
// An empty prefix falls back to DefaultKeyPrefix.
func ToolsKey(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return prefix + keyTools
}
