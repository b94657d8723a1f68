package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
)

type optionsResponse struct {
	Categories []string `json:"categories"`
	Pricing    []string `json:"pricing"`
}

// Options lists the advisory category and pricing values for clients that
// build filter menus.
func Options() http.HandlerFunc {
	body := optionsResponse{
		Categories: domain.Categories,
		Pricing:    domain.PricingModels,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		writeJSON(w, http.StatusOK, body)
	}
}
