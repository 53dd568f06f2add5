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

	_ "github.com/jhoicas/pharmabill/docs"
	"github.com/jhoicas/pharmabill/internal/application/dashboard"
	"github.com/jhoicas/pharmabill/internal/application/returns"
	"github.com/jhoicas/pharmabill/internal/infrastructure/billingapi"
	"github.com/jhoicas/pharmabill/internal/infrastructure/memory"
	"github.com/jhoicas/pharmabill/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/pharmabill/internal/infrastructure/pdf"
	"github.com/jhoicas/pharmabill/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pharmabill/internal/interfaces/http"
	"github.com/jhoicas/pharmabill/pkg/config"
	"github.com/jhoicas/pharmabill/pkg/logger"
)

// eventBus publica y consume eventos de facturas.
type eventBus interface {
	returns.EventPublisher
	dashboard.Subscriber
}

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
		Str("billing_api", cfg.API.BaseURL).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Archivo de recibos: PostgreSQL si hay base de datos, memoria si no.
	var archive returns.ReceiptArchive = memory.NewReceiptArchive()
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repo := postgres.NewReceiptRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("crear esquema de recibos")
		}
		archive = repo
		log.Info().Msg("archivo de recibos en PostgreSQL")
	} else {
		log.Warn().Msg("sin base de datos: los recibos se archivan en memoria")
	}

	// Canal de eventos: Redis Pub/Sub si está configurado, en proceso si no.
	var bus eventBus = notify.NewLocalBus()
	if cfg.Redis.Enabled() {
		rb, err := notify.NewRedisBus(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rb.Close()
		bus = rb
	}

	counters := dashboard.NewCounters(log)
	go func() {
		if err := counters.Run(ctx, bus); err != nil {
			log.Error().Err(err).Msg("contadores del dashboard detenidos")
		}
	}()

	renderer := infrapdf.NewReceiptRenderer(infrapdf.Pharmacy{
		Name:         cfg.Pharmacy.Name,
		AddressLine1: cfg.Pharmacy.AddressLine1,
		AddressLine2: cfg.Pharmacy.AddressLine2,
		Phone:        cfg.Pharmacy.Phone,
		Email:        cfg.Pharmacy.Email,
	})

	workflows := returns.NewManager(returns.Deps{
		API:      billingapi.New(cfg.API.BaseURL, cfg.API.Timeout, log),
		Renderer: renderer,
		Archive:  archive,
		Events:   bus,
		Logger:   log,
	}, returns.Options{
		Debounce:      cfg.Workflow.Debounce,
		MinPartyChars: cfg.Workflow.MinPartyChars,
	})

	// Limpieza de flujos abandonados.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				workflows.Sweep(now, cfg.Workflow.SessionIdleTTL)
			}
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.API.Timeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pharmabill API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "workflows": workflows.Len()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Workflows: workflows,
		Archive:   archive,
		Counters:  counters,
		Logger:    log,
		JWTSecret: cfg.JWT.Secret,
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

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	stop()

	log.Info().Msg("aplicación detenida")
}
