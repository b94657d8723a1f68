package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
)

type buildInfo struct {
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

type healthzResponse struct {
	Status  string    `json:"status"`
	Service string    `json:"service"`
	Backend string    `json:"backend,omitempty"`
	Uptime  string    `json:"uptime"`
	Build   buildInfo `json:"build"`
}

// Healthz reports liveness only; it never touches the store.
func Healthz(d deps.Deps) http.HandlerFunc {
	build := buildInfo{
		Version:   d.Version,
		Commit:    d.Commit,
		BuildDate: d.BuildDate,
		GoVersion: d.GoVersion,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:  "ok",
			Service: "toolshelf",
			Backend: d.BackendName,
			Uptime:  time.Since(d.StartTime).Truncate(time.Second).String(),
			Build:   build,
		})
	}
}
