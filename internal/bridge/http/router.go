package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/nimbusott/access-bridge/internal/bridge/service"
	"github.com/nimbusott/access-bridge/pkg/httpx"
	"github.com/nimbusott/access-bridge/pkg/slogx"
	"github.com/nimbusott/access-bridge/pkg/urlsign"

	_ "github.com/nimbusott/access-bridge/api/bridge" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	siteID       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	signer       *urlsign.Signer

	PassportService *service.PassportService
	PlansService    *service.PlansService
}

func NewRouter(
	siteID, buildVersion string,
	signer *urlsign.Signer,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		siteID:       siteID,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		signer:       signer,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccess()
	r.registerPlans()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	// Everything the mux cannot match answers with the bridge 404 shape
	// instead of the default text response.
	r.Mux.Handle("/", http.HandlerFunc(NotFoundHandler))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Access Bridge API
//	@version		0.1.0
//	@description	Converts viewer identity and purchased-plan entitlements into signed,
//	@description	time-bounded passport tokens that downstream delivery and DRM systems
//	@description	trust without re-querying the identity provider per request.
//
//	@license.name	Apache 2.0
//	@license.url	https://www.apache.org/licenses/LICENSE-2.0.html
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccess() {
	h := &AccessHandler{PassportService: r.PassportService}

	// PUT /access/generate - strict rate limit (token issuance)
	r.Mux.Handle("PUT /v2/sites/{site_id}/access/generate",
		httpx.Chain(http.HandlerFunc(h.HandleGenerate),
			ValidateSiteID(r.siteID),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// PUT /access/refresh - strict rate limit (token issuance)
	r.Mux.Handle("PUT /v2/sites/{site_id}/access/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			ValidateSiteID(r.siteID),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerPlans() {
	h := &PlansHandler{PlansService: r.PlansService}

	// GET /plans - moderate rate limit (read-only catalogue)
	r.Mux.Handle("GET /v2/sites/{site_id}/plans",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			ValidateSiteID(r.siteID),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.signer),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
