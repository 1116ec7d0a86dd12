// Package imbasubvault предоставляет маршруты основного приложения.
package imbasubvault

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/naimbob95/ImbaSubVault/internal/config"
	forgotpassword "github.com/naimbob95/ImbaSubVault/internal/http/handlers/auth/forgotpassword"
	"github.com/naimbob95/ImbaSubVault/internal/http/handlers/auth/login"
	"github.com/naimbob95/ImbaSubVault/internal/http/handlers/auth/register"
	resetpassword "github.com/naimbob95/ImbaSubVault/internal/http/handlers/auth/resetpassword"
	categorycreate "github.com/naimbob95/ImbaSubVault/internal/http/handlers/category/create"
	categorylist "github.com/naimbob95/ImbaSubVault/internal/http/handlers/category/list"
	categoryread "github.com/naimbob95/ImbaSubVault/internal/http/handlers/category/read"
	categoryremove "github.com/naimbob95/ImbaSubVault/internal/http/handlers/category/remove"
	categoryseed "github.com/naimbob95/ImbaSubVault/internal/http/handlers/category/seed"
	categoryupdate "github.com/naimbob95/ImbaSubVault/internal/http/handlers/category/update"
	"github.com/naimbob95/ImbaSubVault/internal/http/handlers/dashboard/activecount"
	"github.com/naimbob95/ImbaSubVault/internal/http/handlers/dashboard/categorycounts"
	"github.com/naimbob95/ImbaSubVault/internal/http/handlers/dashboard/costbreakdown"
	"github.com/naimbob95/ImbaSubVault/internal/http/handlers/dashboard/monthlycost"
	"github.com/naimbob95/ImbaSubVault/internal/http/handlers/dashboard/overview"
	dashboardupcoming "github.com/naimbob95/ImbaSubVault/internal/http/handlers/dashboard/upcoming"
	"github.com/naimbob95/ImbaSubVault/internal/http/handlers/dashboard/yearlycost"
	"github.com/naimbob95/ImbaSubVault/internal/http/handlers/health"
	subscriptioncreate "github.com/naimbob95/ImbaSubVault/internal/http/handlers/subscription/create"
	"github.com/naimbob95/ImbaSubVault/internal/http/handlers/subscription/activelist"
	subscriptionlist "github.com/naimbob95/ImbaSubVault/internal/http/handlers/subscription/list"
	subscriptionread "github.com/naimbob95/ImbaSubVault/internal/http/handlers/subscription/read"
	subscriptionremove "github.com/naimbob95/ImbaSubVault/internal/http/handlers/subscription/remove"
	subscriptionupcoming "github.com/naimbob95/ImbaSubVault/internal/http/handlers/subscription/upcoming"
	subscriptionupdate "github.com/naimbob95/ImbaSubVault/internal/http/handlers/subscription/update"
	"github.com/naimbob95/ImbaSubVault/internal/http/handlers/user/changepassword"
	"github.com/naimbob95/ImbaSubVault/internal/http/handlers/user/profile"
	userremove "github.com/naimbob95/ImbaSubVault/internal/http/handlers/user/removeaccount"
	userupdate "github.com/naimbob95/ImbaSubVault/internal/http/handlers/user/update"
	"github.com/naimbob95/ImbaSubVault/internal/http/middlewarectx"
	"github.com/naimbob95/ImbaSubVault/internal/lib/jwt"
	authservice "github.com/naimbob95/ImbaSubVault/internal/services/auth"
	categoryservice "github.com/naimbob95/ImbaSubVault/internal/services/category"
	dashboardservice "github.com/naimbob95/ImbaSubVault/internal/services/dashboard"
	subscriptionservice "github.com/naimbob95/ImbaSubVault/internal/services/subscription"
	userservice "github.com/naimbob95/ImbaSubVault/internal/services/user"
)

// Services группирует бизнес-сервисы, нужные маршрутам.
type Services struct {
	Auth         *authservice.AuthService
	User         *userservice.UserService
	Category     *categoryservice.CategoryService
	Subscription *subscriptionservice.SubscriptionService
	Dashboard    *dashboardservice.DashboardService
}

// NewRouter регистрирует все маршруты приложения.
func NewRouter(cfg *config.Config, logger *slog.Logger, jwtMaker jwt.Maker, s Services) chi.Router {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	limiter := rate.NewLimiter(rate.Limit(20), 40)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/forgot-password", forgotpassword.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/reset-password", resetpassword.New(logger, s.Auth).ServeHTTP)

		r.Get("/categories", categorylist.New(logger, s.Category).ServeHTTP)
		r.Post("/categories", categorycreate.New(logger, s.Category).ServeHTTP)
		r.Post("/categories/seed", categoryseed.New(logger, s.Category).ServeHTTP)
		r.Get("/categories/{id}", categoryread.New(logger, s.Category).ServeHTTP)
		r.Patch("/categories/{id}", categoryupdate.New(logger, s.Category).ServeHTTP)
		r.Delete("/categories/{id}", categoryremove.New(logger, s.Category).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))

			r.Get("/users/profile", profile.New(logger, s.User).ServeHTTP)
			r.Put("/users/profile", userupdate.New(logger, s.User).ServeHTTP)
			r.Put("/users/change-password", changepassword.New(logger, s.User).ServeHTTP)
			r.Delete("/users/account", userremove.New(logger, s.User).ServeHTTP)

			r.Post("/subscriptions", subscriptioncreate.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions", subscriptionlist.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions/active/list", activelist.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions/upcoming/{days}", subscriptionupcoming.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions/{id}", subscriptionread.New(logger, s.Subscription).ServeHTTP)
			r.Put("/subscriptions/{id}", subscriptionupdate.New(logger, s.Subscription).ServeHTTP)
			r.Delete("/subscriptions/{id}", subscriptionremove.New(logger, s.Subscription).ServeHTTP)

			r.Get("/dashboard/overview", overview.New(logger, s.Dashboard).ServeHTTP)
			r.Get("/dashboard/upcoming-payments", dashboardupcoming.New(logger, s.Dashboard).ServeHTTP)
			r.Get("/dashboard/monthly-cost", monthlycost.New(logger, s.Dashboard).ServeHTTP)
			r.Get("/dashboard/yearly-cost", yearlycost.New(logger, s.Dashboard).ServeHTTP)
			r.Get("/dashboard/category-counts", categorycounts.New(logger, s.Dashboard).ServeHTTP)
			r.Get("/dashboard/active-count", activecount.New(logger, s.Dashboard).ServeHTTP)
			r.Get("/dashboard/cost-breakdown", costbreakdown.New(logger, s.Dashboard).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	return r
}
