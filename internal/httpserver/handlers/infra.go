package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
)

type componentStatus struct {
	OK      bool   `json:"ok"`
	Backend string `json:"backend,omitempty"`
	Records *int   `json:"records,omitempty"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the store behind the catalog.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")

		store := checkStore(r.Context(), d)
		components := map[string]componentStatus{
			"store": store,
			"metrics": {
				OK: d.Gatherer != nil,
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if store, ok := components["store"]; ok && !store.OK {
		return "critical"
	}
	if metrics, ok := components["metrics"]; ok && !metrics.OK {
		return "degraded"
	}
	return "operational"
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(ctx, storeProbeTimeout)
	defer cancel()

	start := time.Now()
	tools, err := d.Catalog.List(ctx, domain.Filter{})
	if err != nil {
		return componentStatus{
			OK:      false,
			Backend: d.BackendName,
			Error:   "unreadable",
		}
	}
	n := len(tools)
	return componentStatus{
		OK:      true,
		Backend: d.BackendName,
		Records: &n,
		Latency: time.Since(start).Round(time.Microsecond).String(),
	}
}
