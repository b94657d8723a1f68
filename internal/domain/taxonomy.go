package domain

const (
	// DefaultCategory is applied when a create request omits the category.
	DefaultCategory = "Other"
	// DefaultPricing is applied when a create request omits the pricing model.
	DefaultPricing = "unknown"
	// FilterAll disables a category or pricing filter.
	FilterAll = "all"
)

// Categories is the fixed set of catalog categories, in display order.
var Categories = []string{
	"writing-editing",
	"image-generation-editing",
	"image-analysis",
	"music-audio",
	"voice-generation-conversion",
	"art-creative-design",
	"social-media",
	"ai-detection-anti-detection",
	"coding-development",
	"video-animation",
	"daily-life",
	"legal-finance",
	"business-management",
	"marketing-advertising",
	"health-wellness",
	"business-research",
	"education-translation",
	"chatbots-virtual-companions",
	"interior-architectural-design",
}

// PricingModels is the fixed set of pricing values, in display order.
var PricingModels = []string{
	"free",
	"freemium",
	"paid",
	"free-trial",
	"contact",
	"opensource",
}

// IsKnownCategory reports whether c belongs to Categories.
func IsKnownCategory(c string) bool { return contains(Categories, c) }

// IsKnownPricing reports whether p belongs to PricingModels.
func IsKnownPricing(p string) bool { return contains(PricingModels, p) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
