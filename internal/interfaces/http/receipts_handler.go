package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pharmabill/internal/application/dto"
	"github.com/jhoicas/pharmabill/internal/application/returns"
	"github.com/jhoicas/pharmabill/internal/domain/entity"
	"github.com/jhoicas/pharmabill/pkg/logger"
)

// ReceiptsHandler descarga de recibos archivados (protegido).
type ReceiptsHandler struct {
	archive returns.ReceiptArchive
	log     *logger.Logger
}

// NewReceiptsHandler construye el handler.
func NewReceiptsHandler(archive returns.ReceiptArchive, log *logger.Logger) *ReceiptsHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ReceiptsHandler{archive: archive, log: log.Named("http")}
}

// List godoc
// @Summary      Recibos archivados de la cuenta
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        limit   query     int  false  "Máximo 100 (default 20)"
// @Param        offset  query     int  false  "Desplazamiento"
// @Success      200     {object}  dto.ReceiptListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/receipts [get]
func (h *ReceiptsHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := bindQuery(c, &page); !ok {
		return err
	}
	page.DefaultPage()

	items, err := h.archive.List(c.Context(), GetEmail(c), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.ReceiptListResponse{
		Items: make([]dto.ReceiptSummary, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, r := range items {
		out.Items = append(out.Items, dto.NewReceiptSummary(r))
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar el PDF de un recibo
// @Tags         receipts
// @Security     Bearer
// @Produce      application/pdf
// @Param        kind    path      string  true  "Tipo de factura"
// @Param        number  path      string  true  "Número de factura"
// @Success      200     {file}    binary
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/receipts/{kind}/{number} [get]
func (h *ReceiptsHandler) Download(c *fiber.Ctx) error {
	kind := entity.BillKindCode(c.Params("kind"))
	if _, ok := entity.LookupBillKind(kind); !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo de factura desconocido"})
	}
	r, err := h.archive.Get(c.Context(), GetEmail(c), kind, c.Params("number"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", r.Filename))
	return c.Send(r.Content)
}
