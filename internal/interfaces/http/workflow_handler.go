package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pharmabill/internal/application/dto"
	"github.com/jhoicas/pharmabill/internal/application/returns"
	"github.com/jhoicas/pharmabill/internal/domain/entity"
	"github.com/jhoicas/pharmabill/pkg/logger"
)

// WorkflowHandler expone los flujos de venta y devolución (protegido).
type WorkflowHandler struct {
	workflows *returns.Manager
	log       *logger.Logger
	now       func() time.Time
}

// NewWorkflowHandler construye el handler.
func NewWorkflowHandler(workflows *returns.Manager, log *logger.Logger) *WorkflowHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &WorkflowHandler{workflows: workflows, log: log.Named("http"), now: time.Now}
}

// Create godoc
// @Summary      Abrir un flujo de factura
// @Tags         workflows
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateWorkflowRequest  true  "client_expiry | supplier_expiry | purchase_return | sale"
// @Success      201   {object}  dto.WorkflowResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/workflows [post]
func (h *WorkflowHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkflowRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	id, e, err := h.workflows.Create(entity.BillKindCode(in.Kind), GetSession(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.view(id, e))
}

// Get godoc
// @Summary      Estado de un flujo
// @Tags         workflows
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del flujo"
// @Success      200  {object}  dto.WorkflowResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workflows/{id} [get]
func (h *WorkflowHandler) Get(c *fiber.Ctx) error {
	id, e, err := h.engine(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(h.view(id, e))
}

// EditQuery godoc
// @Summary      Editar parte y fechas
// @Description  Registra la edición y programa la recarga del catálogo tras el periodo de silencio.
// @Description  Cambiar parte o fechas descarta la lista en construcción.
// @Tags         workflows
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "ID del flujo"
// @Param        body  body      dto.QueryRequest  true  "party_name + start_date/end_date o date"
// @Success      202   {object}  dto.WorkflowResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/workflows/{id}/query [put]
func (h *WorkflowHandler) EditQuery(c *fiber.Ctx) error {
	id, e, err := h.engine(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.QueryRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	period, err := in.Period()
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := e.EditQuery(in.PartyName, period); err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(h.view(id, e))
}

// Load godoc
// @Summary      Cargar ítems devolvibles
// @Description  Consulta la API de facturación y reemplaza catálogo y lista. Invalida cargas pendientes.
// @Tags         workflows
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "ID del flujo"
// @Param        body  body      dto.QueryRequest  true  "party_name + start_date/end_date o date"
// @Success      200   {object}  dto.LoadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/workflows/{id}/load [post]
func (h *WorkflowHandler) Load(c *fiber.Ctx) error {
	id, e, err := h.engine(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.QueryRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	period, err := in.Period()
	if err != nil {
		return writeError(c, h.log, err)
	}
	res, err := e.LoadRemediableItems(c.Context(), in.PartyName, period)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.LoadResponse{
		Items:      res.Items,
		Empty:      res.Empty,
		Superseded: res.Superseded,
		Workflow:   h.view(id, e),
	})
}

// AddItem godoc
// @Summary      Agregar un lote a la lista
// @Tags         workflows
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "ID del flujo"
// @Param        body  body      dto.AddItemRequest  true  "item_name + batch"
// @Success      201   {object}  dto.WorkflowResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/workflows/{id}/items [post]
func (h *WorkflowHandler) AddItem(c *fiber.Ctx) error {
	id, e, err := h.engine(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.AddItemRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	if err := e.AddLineItem(in.ItemName, in.Batch); err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.view(id, e))
}

// SelectAll godoc
// @Summary      Seleccionar todos los lotes
// @Tags         workflows
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del flujo"
// @Success      200  {object}  dto.WorkflowResponse
// @Router       /api/workflows/{id}/items/select-all [post]
func (h *WorkflowHandler) SelectAll(c *fiber.Ctx) error {
	id, e, err := h.engine(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := e.SelectAll(); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(h.view(id, e))
}

// UpdateItem godoc
// @Summary      Editar una línea
// @Description  La cantidad se acota a [1, devolvible] y la respuesta incluye el valor aplicado.
// @Tags         workflows
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID del flujo"
// @Param        key   path      string                 true  "Clave de la línea (campo key)"
// @Param        body  body      dto.UpdateItemRequest  true  "return_quantity, discount_percent, toggle_selection"
// @Success      200   {object}  dto.QuantityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/workflows/{id}/items/{key} [patch]
func (h *WorkflowHandler) UpdateItem(c *fiber.Ctx) error {
	id, e, err := h.engine(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	key, err := dto.DecodeItemKey(c.Params("key"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.UpdateItemRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	if in.ReturnQuantity == nil && in.DiscountPercent == nil && !in.ToggleSelection {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no hay cambios que aplicar"})
	}

	applied := 0
	if in.ReturnQuantity != nil {
		if applied, err = e.SetReturnQuantity(key, *in.ReturnQuantity); err != nil {
			return writeError(c, h.log, err)
		}
	}
	if in.DiscountPercent != nil {
		if err := e.SetDiscount(key, *in.DiscountPercent); err != nil {
			return writeError(c, h.log, err)
		}
	}
	if in.ToggleSelection {
		if err := e.ToggleSelection(key); err != nil {
			return writeError(c, h.log, err)
		}
	}

	view := h.view(id, e)
	if applied == 0 {
		for _, it := range view.Items {
			if it.Key == c.Params("key") {
				applied = it.ReturnQuantity
			}
		}
	}
	return c.JSON(dto.QuantityResponse{ReturnQuantity: applied, Workflow: view})
}

// RemoveItem godoc
// @Summary      Quitar una línea
// @Tags         workflows
// @Security     Bearer
// @Produce      json
// @Param        id     path      string  true  "ID del flujo"
// @Param        index  path      int     true  "Posición de la línea"
// @Success      200    {object}  dto.WorkflowResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/workflows/{id}/items/{index} [delete]
func (h *WorkflowHandler) RemoveItem(c *fiber.Ctx) error {
	id, e, err := h.engine(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice inválido"})
	}
	if err := e.RemoveLineItem(index); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(h.view(id, e))
}

// UpdateHeader godoc
// @Summary      Editar notas, referencia o número GST
// @Tags         workflows
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "ID del flujo"
// @Param        body  body      dto.HeaderRequest  true  "notes, reference_number, gst_number"
// @Success      200   {object}  dto.WorkflowResponse
// @Router       /api/workflows/{id}/header [put]
func (h *WorkflowHandler) UpdateHeader(c *fiber.Ctx) error {
	id, e, err := h.engine(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.HeaderRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	edit := returns.HeaderEdit{Notes: in.Notes, ReferenceNumber: in.ReferenceNumber, GSTNumber: in.GSTNumber}
	if err := e.EditHeader(edit); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(h.view(id, e))
}

// Advance godoc
// @Summary      Avanzar al siguiente paso
// @Description  Desde la selección de parte carga el catálogo; desde la selección de ítems pasa a confirmación.
// @Tags         workflows
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del flujo"
// @Success      200  {object}  dto.WorkflowResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/workflows/{id}/advance [post]
func (h *WorkflowHandler) Advance(c *fiber.Ctx) error {
	id, e, err := h.engine(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := e.Advance(c.Context()); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(h.view(id, e))
}

// Back godoc
// @Summary      Volver al paso anterior
// @Tags         workflows
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del flujo"
// @Success      200  {object}  dto.WorkflowResponse
// @Router       /api/workflows/{id}/back [post]
func (h *WorkflowHandler) Back(c *fiber.Ctx) error {
	id, e, err := h.engine(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := e.Back(); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(h.view(id, e))
}

// Submit godoc
// @Summary      Enviar la factura
// @Description  Crea la factura en la API, descuenta inventario en ventas y genera el recibo.
// @Description  Si el inventario o el recibo fallan la factura sigue creada y la respuesta trae warnings.
// @Tags         workflows
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del flujo"
// @Success      201  {object}  dto.SubmitResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/workflows/{id}/submit [post]
func (h *WorkflowHandler) Submit(c *fiber.Ctx) error {
	_, e, err := h.engine(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	res, err := e.Submit(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSubmitResponse(res))
}

// Delete godoc
// @Summary      Cancelar y cerrar el flujo
// @Tags         workflows
// @Security     Bearer
// @Param        id   path  string  true  "ID del flujo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/workflows/{id} [delete]
func (h *WorkflowHandler) Delete(c *fiber.Ctx) error {
	id, e, err := h.engine(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := e.Cancel(); err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.workflows.Discard(id, GetSession(c)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (h *WorkflowHandler) engine(c *fiber.Ctx) (string, *returns.Engine, error) {
	id := c.Params("id")
	e, err := h.workflows.Get(id, GetSession(c))
	if err != nil {
		return id, nil, err
	}
	return id, e, nil
}

func (h *WorkflowHandler) view(id string, e *returns.Engine) dto.WorkflowResponse {
	return dto.NewWorkflowResponse(id, e.Kind(), e.Snapshot(), h.now())
}
