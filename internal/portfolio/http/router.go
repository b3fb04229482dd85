package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/folio/internal/portfolio/cache"
	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
	"github.com/aussiebroadwan/folio/internal/portfolio/github"
	"github.com/aussiebroadwan/folio/internal/portfolio/service"
	"github.com/aussiebroadwan/folio/internal/portfolio/store"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/aussiebroadwan/folio/pkg/slogx"

	_ "github.com/aussiebroadwan/folio/api/portfolio" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limits       httpx.RateLimits
	metrics      *httpx.Metrics

	store store.Store
	cache cache.Portfolio

	Cookies          CookieConfig
	AuthService      *service.AuthService
	UserService      *service.UserService
	BootstrapService *service.BootstrapService
	PortfolioService *service.PortfolioService
	ContactService   *service.ContactService
	Resources        []*service.ResourceService
	GitHub           *github.Client
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion, corsOrigin string,
	st store.Store,
	c cache.Portfolio,
	limits httpx.RateLimits,
	metrics *httpx.Metrics,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		limits:       limits,
		metrics:      metrics,
		store:        st,
		cache:        c,
	}

	// Metrics must wrap the mux directly so r.Pattern is visible to it.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(corsOrigin),
		metrics.Middleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerResources()
	r.registerPortfolio()
	r.registerContact()
	r.registerGitHub()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Folio Portfolio API
//	@version					0.1.0
//	@description				REST backend for a personal portfolio site: accounts with JWT cookie sessions, owner scoped portfolio records and a public aggregate per user.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/folio
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
//	@description				JWT access token. Format: "Bearer {token}". Browsers use the accessToken cookie instead.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(r.verifier, r.AuthService)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{
		AuthService: r.AuthService,
		UserService: r.UserService,
		Cookies:     r.Cookies,
	}

	// Credential endpoints - strict rate limits
	r.Mux.Handle("POST /users/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
	r.Mux.Handle("POST /users/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndField(r.limits.Strict, "username"),
		),
	)
	r.Mux.Handle("POST /users/refresh-token",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)

	// Self-service endpoints - moderate rate limit by user
	self := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.authn(),
			httpx.RateLimitByUser(r.limits.Moderate),
		)
	}
	r.Mux.Handle("POST /users/logout", self(h.HandleLogout))
	r.Mux.Handle("GET /users/current-user", self(h.HandleCurrentUser))
	r.Mux.Handle("PATCH /users/change-password", self(h.HandleChangePassword))
	r.Mux.Handle("PATCH /users/update/{id}", self(h.HandleUpdate))
	r.Mux.Handle("DELETE /users/delete", self(h.HandleDeleteSelf))

	// Administration
	admin := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.authn(),
			httpx.RequireRole(string(domain.RoleAdmin)),
			httpx.RateLimitByUser(r.limits.Moderate),
		)
	}
	r.Mux.Handle("GET /users/retrieve", admin(h.HandleList))
	r.Mux.Handle("GET /users/retrieve/{id}", admin(h.HandleGet))
	r.Mux.Handle("DELETE /users/delete/{id}", admin(h.HandleDelete))
	r.Mux.Handle("PATCH /users/update-role/{id}", admin(h.HandleUpdateRole))

	// POST /users/bootstrap - very strict rate limit by IP (one-time setup endpoint)
	r.Mux.Handle("POST /users/bootstrap",
		httpx.Chain(&BootstrapHandler{BootstrapService: r.BootstrapService},
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
}

func (r *Router) registerResources() {
	for _, svc := range r.Resources {
		h := &ResourceHandler{Service: svc}
		base := "/" + svc.Schema.Collection

		write := func(fn http.HandlerFunc) http.Handler {
			return httpx.Chain(fn,
				r.authn(),
				httpx.RequireRole(string(domain.RoleAdmin)),
				httpx.RateLimitByUser(r.limits.Moderate),
			)
		}
		read := func(fn http.HandlerFunc) http.Handler {
			return httpx.Chain(fn, httpx.RateLimitByIP(r.limits.Public))
		}

		create := write(h.HandleCreate)
		if svc.Schema.OpenCreate {
			create = httpx.Chain(http.HandlerFunc(h.HandleCreate),
				r.authn(),
				httpx.RateLimitByUser(r.limits.Moderate),
			)
		}

		r.Mux.Handle("POST "+base+"/{userId}", create)
		r.Mux.Handle("GET "+base+"/byuserid/{userId}", read(h.HandleListByOwner))
		r.Mux.Handle("GET "+base+"/"+svc.Schema.ByIDSegment()+"/{id}", read(h.HandleGet))
		r.Mux.Handle("PUT "+base+"/{id}", write(h.HandleUpdate))
		r.Mux.Handle("DELETE "+base+"/{id}", write(h.HandleDelete))
	}
}

func (r *Router) registerPortfolio() {
	r.Mux.Handle("GET /portfolio/{username}",
		httpx.Chain(&PortfolioHandler{PortfolioService: r.PortfolioService},
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
}

func (r *Router) registerContact() {
	r.Mux.Handle("POST /contact",
		httpx.Chain(&ContactHandler{ContactService: r.ContactService},
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
}

func (r *Router) registerGitHub() {
	h := &GitHubHandler{Client: r.GitHub}
	r.Mux.Handle("GET /github/{username}",
		httpx.Chain(http.HandlerFunc(h.HandleUser), httpx.RateLimitByIP(r.limits.Public)),
	)
	r.Mux.Handle("GET /github/{username}/repos",
		httpx.Chain(http.HandlerFunc(h.HandleRepos), httpx.RateLimitByIP(r.limits.Public)),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - public rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.cache),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
