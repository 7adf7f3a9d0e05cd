package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"

	_ "github.com/jhoicas/parcerias-admin/docs"
	"github.com/jhoicas/parcerias-admin/internal/application/audit"
	"github.com/jhoicas/parcerias-admin/internal/application/auth"
	"github.com/jhoicas/parcerias-admin/internal/application/partnership"
	"github.com/jhoicas/parcerias-admin/internal/domain/repository"
	"github.com/jhoicas/parcerias-admin/internal/infrastructure/lock"
	infrapdf "github.com/jhoicas/parcerias-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/parcerias-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/parcerias-admin/internal/infrastructure/upstream"
	httpRouter "github.com/jhoicas/parcerias-admin/internal/interfaces/http"
	"github.com/jhoicas/parcerias-admin/pkg/config"
	"github.com/jhoicas/parcerias-admin/pkg/logger"
	"github.com/jhoicas/parcerias-admin/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("upstream", cfg.Upstream.BaseURL).
		Msg("iniciando aplicación")

	ctx := context.Background()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Bitácora en PostgreSQL (opcional)
	var (
		pool      *pgxpool.Pool
		auditRepo repository.AuditRepository
	)
	if cfg.Audit.Enabled {
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones de auditoría")
		}
		auditRepo = postgres.NewAuditRepository(pool)
	}
	recorder := audit.NewRecorder(auditRepo, log.Named("audit"))

	// Candado por fila para los toggles: Redis si está configurado, si no en memoria
	var (
		redisClient *redis.Client
		rowLock     partnership.RowLock = lock.NewMemoryRowLock()
	)
	if cfg.Redis.Enabled() {
		redisClient, err = lock.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		redisLock, err := lock.NewRedisRowLock(redisClient, cfg.Redis.LockTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("candado Redis")
		}
		rowLock = redisLock
	}

	client := upstream.NewClient(upstream.Config{
		BaseURL:          cfg.Upstream.BaseURL,
		APIToken:         cfg.Upstream.APIToken,
		Timeout:          cfg.Upstream.Timeout,
		MaxResponseBytes: cfg.Upstream.MaxResponseBytes,
	}, m)
	partnershipGateway := upstream.NewPartnershipGateway(client, cfg.Upstream.StatusEncoding)
	directory := upstream.NewDirectoryGateway(client)

	createUC := partnership.NewCreatePartnershipUseCase(partnership.CreatePartnershipDeps{
		OSCs:         directory,
		Stores:       directory,
		Campaigns:    directory,
		Partnerships: partnershipGateway,
		Audit:        recorder,
		Metrics:      m,
		Logger:       log.Named("create_partnership"),
	})
	listDeps := partnership.ListDeps{
		Lister:  partnership.NewCoalescingLister(partnershipGateway),
		Reader:  partnershipGateway,
		Updater: partnershipGateway,
		Locks:   rowLock,
		Audit:   recorder,
		Metrics: m,
		Logger:  log.Named("partnership_list"),
	}

	authUC := auth.NewAuthUseCase(auth.AdminCredentials{
		Email:        cfg.Admin.Email,
		PasswordHash: cfg.Admin.PasswordHash,
	}, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Parcerias Admin API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		List:           listDeps,
		Forms:          partnership.NewFormRegistry(createUC),
		Reports:        infrapdf.NewMarotoPDFGenerator(),
		AuditUC:        audit.NewUseCase(auditRepo),
		Gatherer:       registry,
		JWTSecret:      cfg.JWT.Secret,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = app.ShutdownWithContext(shutdownCtx)
	if redisClient != nil {
		err = multierr.Append(err, redisClient.Close())
	}
	if pool != nil {
		pool.Close()
	}
	if err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
