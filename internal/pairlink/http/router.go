package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/pairlink/internal/pairlink/service"
	"github.com/aussiebroadwan/pairlink/internal/pairlink/store"
	"github.com/aussiebroadwan/pairlink/pkg/httpx"
	"github.com/aussiebroadwan/pairlink/pkg/slogx"

	_ "github.com/aussiebroadwan/pairlink/api/pairlink" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion   string
	callbackSecret string
	startTime      time.Time
	logger         *slog.Logger

	store          store.Store
	TokenService   *service.TokenService
	PairingService *service.PairingService
}

// NewRouter creates a Router. callbackSecret guards POST /pair-claim; an
// empty secret leaves it open.
func NewRouter(buildVersion, callbackSecret string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		buildVersion:   buildVersion,
		callbackSecret: callbackSecret,
		startTime:      time.Now(),
		store:          st,
		logger:         logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.NoStore,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerTokens()
	r.registerPairing()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Pairlink API
//	@version		0.1.0
//	@description	Links a 17-digit account id to a chat identity through a short-lived signed pairing token and a pairing-code claim cache.
//	@description
//	@description				Tokens are HMAC-SHA256 signed; claims live in memory for a few minutes only.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/pairlink
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
//	@description				Callback secret for the bot. Format: "Bearer {secret}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerTokens() {
	r.Mux.Handle("POST /token", &TokenHandler{TokenService: r.TokenService})
	r.Mux.Handle("POST /verify", &VerifyHandler{TokenService: r.TokenService})
}

func (r *Router) registerPairing() {
	// Only the bot may record claims.
	r.Mux.Handle("POST /pair-claim",
		httpx.Chain(&PairClaimHandler{PairingService: r.PairingService},
			httpx.RequireSharedSecret(r.callbackSecret),
		),
	)

	r.Mux.Handle("GET /pair-status", &PairStatusHandler{PairingService: r.PairingService})
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.TokenService))
}
