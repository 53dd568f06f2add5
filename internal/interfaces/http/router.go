package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pharmabill/internal/application/dashboard"
	"github.com/jhoicas/pharmabill/internal/application/returns"
	"github.com/jhoicas/pharmabill/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Workflows *returns.Manager
	Archive   returns.ReceiptArchive
	Counters  *dashboard.Counters
	Logger    *logger.Logger
	JWTSecret string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Flujos de venta y devolución
	workflows := api.Group("/workflows")
	wh := NewWorkflowHandler(deps.Workflows, deps.Logger)
	workflows.Post("/", wh.Create)
	workflows.Get("/:id", wh.Get)
	workflows.Delete("/:id", wh.Delete)
	workflows.Put("/:id/query", wh.EditQuery)
	workflows.Post("/:id/load", wh.Load)
	workflows.Post("/:id/items/select-all", wh.SelectAll)
	workflows.Post("/:id/items", wh.AddItem)
	workflows.Patch("/:id/items/:key", wh.UpdateItem)
	workflows.Delete("/:id/items/:index", wh.RemoveItem)
	workflows.Put("/:id/header", wh.UpdateHeader)
	workflows.Post("/:id/advance", wh.Advance)
	workflows.Post("/:id/back", wh.Back)
	workflows.Post("/:id/submit", wh.Submit)

	// Recibos archivados
	receipts := api.Group("/receipts")
	rh := NewReceiptsHandler(deps.Archive, deps.Logger)
	receipts.Get("/", rh.List)
	receipts.Get("/:kind/:number", rh.Download)

	// Dashboard
	dh := NewDashboardHandler(deps.Counters)
	api.Get("/dashboard/counters", dh.GetCounters)
}
