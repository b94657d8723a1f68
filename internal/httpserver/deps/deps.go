package deps

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MrSnakeDoc/toolshelf/internal/catalog"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/mw"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
	"github.com/MrSnakeDoc/toolshelf/internal/metrics"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Catalog     catalog.Store // record operations behind /api/tools
	BackendName string        // reported by /infra

	Metrics  *metrics.Prometheus // nil disables request metrics
	Gatherer prometheus.Gatherer // served on /metrics, nil disables the route

	RequestTimeout time.Duration       // per-request deadline, 0 disables
	CORSOrigins    []string            // allowed browser origins
	MetricsCIDRS   []string            // IPs allowed to read /metrics, /infra, /readyz
	TrustProxy     bool                // true if running behind a trusted reverse proxy
	WriteLimit     mw.WriteLimitConfig // throttling for mutating requests
}
