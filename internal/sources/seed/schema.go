package seed

// File is the top-level seed document: a list of category groups, each
// holding a list of named entries.
//
//	- coding-development:
//	    - Playground:
//	        url: https://play.example
//	        description: Try code in the browser
//	        pricing: free
//	        tags: [go, sandbox]
//	        featured: true
type File []map[string][]map[string]Entry

// Entry holds the properties of one seeded tool.
type Entry struct {
	URL         string   `yaml:"url"`
	Description string   `yaml:"description"`
	Pricing     string   `yaml:"pricing,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	Featured    bool     `yaml:"featured,omitempty"`
	Language    string   `yaml:"language,omitempty"`
}
