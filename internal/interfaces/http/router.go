package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/parcerias-admin/internal/application/audit"
	"github.com/jhoicas/parcerias-admin/internal/application/auth"
	"github.com/jhoicas/parcerias-admin/internal/application/partnership"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	List      partnership.ListDeps
	Forms     *partnership.FormRegistry
	Reports   partnership.ReportGenerator
	AuditUC   *audit.UseCase
	Gatherer  prometheus.Gatherer // nil = sin /metrics
	JWTSecret string
	// RequestTimeout plazo de cada request bajo /api; cero = sin plazo.
	RequestTimeout time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api", RequestContext(deps.RequestTimeout))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token de operador)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(auth.RoleAdmin))

	partnershipHandler := NewPartnershipHandler(deps.List, deps.Forms, deps.Reports, deps.AuditUC)
	partnerships := protected.Group("/partnerships")
	partnerships.Get("/", partnershipHandler.List)
	partnerships.Post("/", partnershipHandler.Create)
	partnerships.Get("/report.pdf", partnershipHandler.Report)
	partnerships.Get("/audit", partnershipHandler.Audit)
	partnerships.Post("/:id/toggle", partnershipHandler.ToggleStatus)

	protected.Get("/cnpj/format", FormatCNPJ)
}
