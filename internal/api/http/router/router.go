package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/davitk/account-console/internal/api/http/handler"
	"github.com/davitk/account-console/internal/api/http/middleware"
	"github.com/davitk/account-console/internal/logger"
	"github.com/davitk/account-console/internal/model"
)

// Router wires the console's HTTP endpoints with their middleware.
type Router struct {
	verificationService handler.VerificationService
	accountService      handler.AccountService
	inspector           middleware.TokenInspector
	contextManager      model.ContextManager
	allowedOrigins      []string
	logger              *logger.Logger
}

// New creates a new Router instance.
func New(
	verificationService handler.VerificationService,
	accountService handler.AccountService,
	inspector middleware.TokenInspector,
	contextManager model.ContextManager,
	allowedOrigins []string,
	logger *logger.Logger,
) *Router {
	return &Router{
		verificationService: verificationService,
		accountService:      accountService,
		inspector:           inspector,
		contextManager:      contextManager,
		allowedOrigins:      allowedOrigins,
		logger:              logger,
	}
}

// Register builds the chi mux with logging, CORS and bearer
// authentication applied to every dashboard route.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.inspector, r.contextManager, r.logger)

	verificationHandler := handler.NewVerification(r.verificationService, r.contextManager, r.logger)
	accountHandler := handler.NewAccount(r.accountService, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	mux.Route("/dashboard", func(mux chi.Router) {
		mux.Use(authenticate.Handle)

		mux.Route("/verifications", func(mux chi.Router) {
			mux.Post("/", verificationHandler.Start)
			mux.Get("/current", verificationHandler.Current)
			mux.Post("/password", verificationHandler.SubmitPassword)
			mux.Post("/proof", verificationHandler.SubmitProof)
			mux.Delete("/", verificationHandler.Cancel)
		})

		mux.Route("/me", func(mux chi.Router) {
			mux.Get("/", accountHandler.Dashboard)
			mux.Patch("/", accountHandler.UpdateBasicInfo)
			mux.Patch("/profile", accountHandler.UpdateProfile)
			mux.Put("/custom-data", accountHandler.UpdateCustomData)
			mux.Get("/mfa-verifications", accountHandler.MfaVerifications)
		})
	})

	return mux
}
