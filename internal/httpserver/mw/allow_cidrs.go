package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/toolshelf/internal/logger"
	"github.com/MrSnakeDoc/toolshelf/internal/utils"
)

// AllowCIDRs rejects with 403 any client whose address is outside allowed
// (single IPs or CIDR prefixes). An empty list lets everything through.
// trustProxy reads the client address from X-Forwarded-For / X-Real-IP.
func AllowCIDRs(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		return func(next http.Handler) http.Handler { return next }
	}
	log.Debug("cidr allow-list enabled",
		logger.Strings("rules", allowed),
		logger.Bool("trust_proxy", trustProxy))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				log.Debug("cidr allow-list rejected request",
					logger.String("ip", ip),
					logger.String("path", r.URL.Path))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"Forbidden"}` + "\n"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
