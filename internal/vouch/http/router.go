package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/vouch/internal/vouch/domain"
	"github.com/aussiebroadwan/vouch/internal/vouch/metrics"
	"github.com/aussiebroadwan/vouch/internal/vouch/service"
	"github.com/aussiebroadwan/vouch/internal/vouch/store"
	"github.com/aussiebroadwan/vouch/pkg/httpx"
	"github.com/aussiebroadwan/vouch/pkg/jwtx"
	"github.com/aussiebroadwan/vouch/pkg/slogx"

	_ "github.com/aussiebroadwan/vouch/api/vouch" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metrics.Metrics

	store             store.Store
	AccountService    *service.AccountService
	MFAService        *service.MFAService
	EmployerService   *service.EmployerService
	CredentialService *service.CredentialService
	ProfileService    *service.ProfileService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		metrics:      m,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerMFA()
	r.registerEmployers()
	r.registerRequests()
	r.registerProfiles()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Vouch Credential Service API
//	@version		0.1.0
//	@description	Job seekers request work-history attestations; employers approve or reject them, and approved attestations are minted as tokens to the seeker's wallet.
//	@description
//	@description				Session tokens are EdDSA JWTs and can be verified with the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/vouch
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern, counted in metrics as route.
func (r *Router) handle(pattern, route string, h http.Handler) {
	r.Mux.Handle(pattern, r.metrics.Instrument(route, h))
}

// secured wraps h with bearer authentication, a scope check (when scopes
// are given) and a per-account rate limit.
func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig, scopes ...string) http.Handler {
	mws := []httpx.Middleware{httpx.AuthnMiddleware(r.verifier)}
	if len(scopes) > 0 {
		mws = append(mws, httpx.RequireAnyScope(scopes...))
	}
	mws = append(mws, httpx.RateLimitByAccount(limit))
	return httpx.Chain(h, mws...)
}

func (r *Router) registerAccounts() {
	// Credential endpoints get the strict limit to slow down guessing.
	r.handle("POST /v1/accounts", "accounts_create",
		httpx.Chain(&SignupHandler{AccountService: r.AccountService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.handle("POST /v1/sessions", "sessions_create",
		httpx.Chain(&LoginHandler{AccountService: r.AccountService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.handle("GET /v1/session", "session_current",
		r.secured(http.HandlerFunc(CurrentSessionHandler), httpx.LenientLimit),
	)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	r.handle("POST /v1/mfa/totp/enroll", "mfa_enroll",
		r.secured(http.HandlerFunc(h.HandleEnroll), httpx.ModerateLimit),
	)
	// Strict: codes are six digits.
	r.handle("POST /v1/mfa/totp/verify", "mfa_verify",
		r.secured(http.HandlerFunc(h.HandleVerify), httpx.StrictLimit),
	)
	r.handle("DELETE /v1/mfa/totp", "mfa_remove",
		r.secured(http.HandlerFunc(h.HandleRemove), httpx.StrictLimit),
	)
}

func (r *Router) registerEmployers() {
	r.handle("GET /v1/organizations", "organizations_list",
		httpx.Chain(&OrganizationsHandler{EmployerService: r.EmployerService},
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.handle("POST /v1/employers", "employers_provision",
		httpx.Chain(&ProvisionEmployerHandler{EmployerService: r.EmployerService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerRequests() {
	h := &RequestsHandler{CredentialService: r.CredentialService}

	r.handle("POST /v1/requests", "requests_submit",
		r.secured(http.HandlerFunc(h.HandleSubmit), httpx.ModerateLimit, domain.ScopeRequestsWrite),
	)
	r.handle("GET /v1/requests", "requests_list",
		r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit, domain.ScopeRequestsRead),
	)
	r.handle("GET /v1/organization/requests", "requests_pending",
		r.secured(http.HandlerFunc(h.HandleListPending), httpx.LenientLimit, domain.ScopeRequestsReview),
	)
	r.handle("POST /v1/requests/{id}/approve", "requests_approve",
		r.secured(http.HandlerFunc(h.HandleApprove), httpx.ModerateLimit, domain.ScopeRequestsReview),
	)
	r.handle("POST /v1/requests/{id}/reject", "requests_reject",
		r.secured(http.HandlerFunc(h.HandleReject), httpx.ModerateLimit, domain.ScopeRequestsReview),
	)
}

func (r *Router) registerProfiles() {
	r.handle("GET /v1/profiles/{handle}", "profiles_get",
		httpx.Chain(&ProfileHandler{ProfileService: r.ProfileService},
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.handle("GET /.well-known/jwks.json", "jwks",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	// Monitoring polls these, so they are not instrumented.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
