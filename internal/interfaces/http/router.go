package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/punchlist/traslados-api/internal/application/inventory"
	"github.com/punchlist/traslados-api/internal/application/signing"
	"github.com/punchlist/traslados-api/internal/application/transfer"
	"github.com/punchlist/traslados-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC   *inventory.LedgerUseCase
	FeedUC     *inventory.FeedUseCase
	ComposeUC  *transfer.ComposeUseCase
	SignUC     *signing.SignUseCase
	MovRepo    repository.MovementRepository
	SectorRepo repository.SectorRepository
	JWTSecret  string
	SignPath   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Superficie pública de firma (el token de capacidad es la credencial)
	signPath := deps.SignPath
	if signPath == "" {
		signPath = "/sign"
	}
	signingHandler := NewSigningHandler(deps.SignUC)
	app.Get(signPath, signingHandler.GetPage)
	app.Post(signPath, signingHandler.PostSignature)

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.FeedUC)
	invGroup.Post("/stock/adjust", inventoryHandler.AdjustStock)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Transfers (protegido)
	transferHandler := NewTransferHandler(deps.ComposeUC, deps.MovRepo, deps.SectorRepo)
	invGroup.Post("/transfers/form", transferHandler.ComposeForm)
}
