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

	"github.com/punchlist/traslados-api/internal/application/inventory"
	"github.com/punchlist/traslados-api/internal/application/signing"
	"github.com/punchlist/traslados-api/internal/application/transfer"
	infrapdf "github.com/punchlist/traslados-api/internal/infrastructure/pdf"
	"github.com/punchlist/traslados-api/internal/infrastructure/postgres"
	infraqr "github.com/punchlist/traslados-api/internal/infrastructure/qr"
	"github.com/punchlist/traslados-api/internal/infrastructure/storage"
	httpRouter "github.com/punchlist/traslados-api/internal/interfaces/http"
	"github.com/punchlist/traslados-api/pkg/config"
	"github.com/punchlist/traslados-api/pkg/logger"

	_ "github.com/punchlist/traslados-api/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	blobStore, err := storage.NewMinioBlobStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al blob store")
	}

	// Repos atados al pool (los casos de uso transaccionales reciben el TxRunner)
	movRepo := postgres.NewMovementRepository(pool)
	fileRepo := postgres.NewMovementFileRepository(pool)
	tokenRepo := postgres.NewPublicTokenRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	sectorRepo := postgres.NewSectorRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// QR: encoder local por defecto; servicio remoto si SIGNING_QR_REMOTE=true
	var qrEncoder transfer.QREncoder = infraqr.NewLocalEncoder()
	if cfg.Signing.QRRemote {
		qrEncoder = infraqr.NewRemoteEncoder(cfg.Signing.QREndpoint)
	}

	tokenIssuer := signing.NewTokenIssuer(tokenRepo, cfg.Signing.BaseURL, cfg.Signing.Path, cfg.Signing.TTLDays)
	formRenderer := infrapdf.NewMarotoFormRenderer()

	ledgerUC := inventory.NewLedgerUseCase(txRunner, false)
	feedUC := inventory.NewFeedUseCase(movRepo, fileRepo, tokenRepo)
	composeUC := transfer.NewComposeUseCase(tokenIssuer, movRepo, qrEncoder, formRenderer, blobStore, cfg.Signing.QRSize, log)
	signUC := signing.NewSignUseCase(tokenRepo, movRepo, itemRepo, sectorRepo, blobStore, txRunner, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 * 1024 * 1024, // margen sobre el máximo de subida de firmas
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Traslados API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:   ledgerUC,
		FeedUC:     feedUC,
		ComposeUC:  composeUC,
		SignUC:     signUC,
		MovRepo:    movRepo,
		SectorRepo: sectorRepo,
		JWTSecret:  cfg.JWT.Secret,
		SignPath:   cfg.Signing.Path,
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

	log.Info().Msg("aplicación detenida")
}
