// Package returns implementa el flujo genérico de construcción de facturas de venta y
// devolución: selección de parte, conciliación de cantidades contra lo devolvible,
// cálculo de totales, envío a la API y generación del recibo.
package returns

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pharmabill/internal/domain"
	"github.com/jhoicas/pharmabill/internal/domain/billing"
	"github.com/jhoicas/pharmabill/internal/domain/entity"
	"github.com/jhoicas/pharmabill/pkg/logger"
)

// State estado del flujo.
type State string

const (
	StatePartySelection State = "party_selection"
	StateItemSelection  State = "item_selection"
	StateConfirmation   State = "confirmation"
)

// Deps colaboradores del flujo. Archive y Events son opcionales.
type Deps struct {
	API      BillingAPIClient
	Renderer ReceiptRenderer
	Archive  ReceiptArchive
	Events   EventPublisher
	Logger   *logger.Logger
}

// Options parámetros de comportamiento.
type Options struct {
	Debounce      time.Duration
	MinPartyChars int
	Clock         func() time.Time
}

// LoadResult resultado de una carga del catálogo.
type LoadResult struct {
	Items      int  // ítems con cantidad devolvible > 0
	Empty      bool // la consulta no devolvió nada devolvible (no es un error)
	Superseded bool // una petición posterior invalidó esta; el resultado se descartó
}

// SubmitResult factura creada, recibo (si se pudo generar) y avisos no fatales.
type SubmitResult struct {
	Bill     *entity.FinalizedBill
	Receipt  *entity.Receipt
	Warnings []*domain.WorkflowError
}

// Engine flujo de una sesión (selección de parte → ítems → confirmación → envío).
// Es seguro para uso concurrente; las mutaciones de la lista y el recálculo de totales
// ocurren bajo el mismo candado, nunca durante una llamada de red.
type Engine struct {
	mu sync.Mutex

	kind     entity.BillKind
	session  entity.Session
	api      BillingAPIClient
	renderer ReceiptRenderer
	archive  ReceiptArchive
	events   EventPublisher
	log      *logger.Logger
	now      func() time.Time
	minParty int
	search   *Search

	state         State
	header        entity.BillHeader
	catalog       []entity.RemediableItem
	staging       []entity.StagedLineItem
	totals        entity.BillTotals
	notice        string
	lastErr       *domain.WorkflowError
	submitting    bool
	lastSubmitted string
	touched       time.Time
}

// NewEngine construye el flujo para un tipo de factura y la sesión del usuario.
func NewEngine(kind entity.BillKind, sess entity.Session, deps Deps, opts Options) *Engine {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	minParty := opts.MinPartyChars
	if minParty < 1 {
		minParty = 1
	}
	e := &Engine{
		kind:     kind,
		session:  sess,
		api:      deps.API,
		renderer: deps.Renderer,
		archive:  deps.Archive,
		events:   deps.Events,
		log:      log.Named("returns").Field("bill_kind", string(kind.Code)),
		now:      clock,
		minParty: minParty,
		search:   NewSearch(opts.Debounce),
		state:    StatePartySelection,
		header:   entity.BillHeader{Email: sess.Email},
	}
	e.touched = clock()
	e.recomputeLocked()
	return e
}

// Kind tipo de factura del flujo.
func (e *Engine) Kind() entity.BillKind { return e.kind }

// UpdateSession refresca el token de la sesión (el email no cambia).
func (e *Engine) UpdateSession(sess entity.Session) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.Token = sess.Token
	e.touched = e.now()
}

// ── Consulta (parte + fechas) ─────────────────────────────────────────────────

// EditQuery registra la edición de parte o fechas y programa una recarga con debounce.
// Si la consulta cambió, el catálogo y la lista en construcción se descartan; si no cambió
// y ya hay catálogo cargado, no se recarga.
func (e *Engine) EditQuery(party string, period entity.Period) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guardLocked(); err != nil {
		return err
	}
	period = e.normalizePeriod(period)
	if party == e.header.PartyName && period == e.header.Period {
		if e.state != StatePartySelection {
			return nil
		}
	} else {
		e.discardStagingLocked()
		e.state = StatePartySelection
	}
	e.header.PartyName = party
	e.header.Period = period

	if len([]rune(strings.TrimSpace(party))) < e.minParty || e.validateQuery(party, period) != nil {
		e.search.Cancel()
		return nil
	}

	sess, kind := e.session, e.kind
	e.search.Schedule(func(ctx context.Context, token uint64) {
		items, err := e.api.FetchRemediableItems(ctx, sess, kind, party, period)

		e.mu.Lock()
		defer e.mu.Unlock()
		if !e.search.Current(token) || e.submitting {
			return
		}
		if err != nil {
			e.lastErr = asWorkflowError(err)
			e.log.Warn().Err(err).Str("party", party).Msg("carga con debounce fallida")
			return
		}
		e.applyLoadLocked(items)
	})
	return nil
}

// LoadRemediableItems consulta la API y reemplaza por completo catálogo y lista.
// Invalida cualquier carga con debounce pendiente.
func (e *Engine) LoadRemediableItems(ctx context.Context, party string, period entity.Period) (LoadResult, error) {
	e.mu.Lock()
	if err := e.guardLocked(); err != nil {
		e.mu.Unlock()
		return LoadResult{}, err
	}
	period = e.normalizePeriod(period)
	if err := e.validateQuery(party, period); err != nil {
		e.mu.Unlock()
		return LoadResult{}, err
	}
	e.header.PartyName = party
	e.header.Period = period
	sess, kind := e.session, e.kind
	token, fetchCtx, cancel := e.search.Begin(ctx)
	e.mu.Unlock()
	defer cancel()

	items, err := e.api.FetchRemediableItems(fetchCtx, sess, kind, party, period)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.search.Current(token) {
		return LoadResult{Superseded: true}, nil
	}
	if err != nil {
		we := asWorkflowError(err)
		e.lastErr = we
		return LoadResult{}, we
	}
	n := e.applyLoadLocked(items)
	return LoadResult{Items: n, Empty: n == 0}, nil
}

func (e *Engine) applyLoadLocked(items []entity.RemediableItem) int {
	e.discardStagingLocked()
	for _, it := range items {
		if it.ReturnableQuantity > 0 {
			e.catalog = append(e.catalog, it)
		}
	}
	e.lastErr = nil
	if len(e.catalog) == 0 {
		e.state = StatePartySelection
		e.notice = fmt.Sprintf("no hay ítems devolvibles para %q en el periodo seleccionado", e.header.PartyName)
		e.recomputeLocked()
		return 0
	}
	if e.kind.AutoStage {
		for _, it := range e.catalog {
			e.staging = append(e.staging, entity.NewStagedLineItem(it))
		}
	}
	e.state = StateItemSelection
	e.notice = ""
	e.recomputeLocked()
	return len(e.catalog)
}

// ── Lista en construcción ─────────────────────────────────────────────────────

// AddLineItem agrega un lote del catálogo. Un ítem+lote ya presente es un error de validación.
func (e *Engine) AddLineItem(itemName, batch string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guardEditLocked(); err != nil {
		return err
	}
	key := entity.NewBatchKey(itemName, batch)
	if e.stagedIndexLocked(key) >= 0 {
		return domain.Validation(domain.ErrDuplicateLineItem, fmt.Sprintf("%s (lote %s)", itemName, batch))
	}
	item, ok := e.catalogItemLocked(key)
	if !ok {
		return domain.Validation(domain.ErrUnknownBatch, fmt.Sprintf("%s (lote %s)", itemName, batch))
	}
	if e.kind.RejectExpired && item.ExpiredAt(e.now()) {
		return domain.Validation(domain.ErrExpiredBatch,
			fmt.Sprintf("%s (lote %s) venció el %s", item.ItemName, item.Batch, item.ExpiryDate.Format(entity.DateLayout)))
	}
	e.staging = append(e.staging, entity.NewStagedLineItem(item))
	e.recomputeLocked()
	return nil
}

// SelectAll agrega todos los lotes del catálogo que aún no están y marca todos como seleccionados.
func (e *Engine) SelectAll() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guardEditLocked(); err != nil {
		return err
	}
	now := e.now()
	for _, it := range e.catalog {
		if e.stagedIndexLocked(it.Key()) >= 0 {
			continue
		}
		if e.kind.RejectExpired && it.ExpiredAt(now) {
			continue
		}
		e.staging = append(e.staging, entity.NewStagedLineItem(it))
	}
	for i := range e.staging {
		e.staging[i].Selected = true
	}
	e.recomputeLocked()
	return nil
}

// RemoveLineItem quita la línea en la posición index.
func (e *Engine) RemoveLineItem(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guardEditLocked(); err != nil {
		return err
	}
	if index < 0 || index >= len(e.staging) {
		return domain.Validation(domain.ErrInvalidInput, fmt.Sprintf("no existe la línea %d", index))
	}
	e.staging = append(e.staging[:index], e.staging[index+1:]...)
	e.recomputeLocked()
	return nil
}

// ToggleSelection invierte la selección de una línea.
func (e *Engine) ToggleSelection(key entity.BatchKey) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guardEditLocked(); err != nil {
		return err
	}
	i := e.stagedIndexLocked(key)
	if i < 0 {
		return domain.Validation(domain.ErrUnknownBatch, key.String())
	}
	e.staging[i].Selected = !e.staging[i].Selected
	e.recomputeLocked()
	return nil
}

// SetReturnQuantity fija la cantidad acotada a [1, devolvible]. Nunca rechaza por rango;
// devuelve la cantidad efectivamente aplicada.
func (e *Engine) SetReturnQuantity(key entity.BatchKey, value int) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guardEditLocked(); err != nil {
		return 0, err
	}
	i := e.stagedIndexLocked(key)
	if i < 0 {
		return 0, domain.Validation(domain.ErrUnknownBatch, key.String())
	}
	q := billing.ClampQuantity(value, e.staging[i].ReturnableQuantity)
	e.staging[i].ReturnQuantity = q
	e.recomputeLocked()
	return q, nil
}

// SetDiscount fija el descuento de una línea acotado a [0, 100].
func (e *Engine) SetDiscount(key entity.BatchKey, percent decimal.Decimal) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guardEditLocked(); err != nil {
		return err
	}
	i := e.stagedIndexLocked(key)
	if i < 0 {
		return domain.Validation(domain.ErrUnknownBatch, key.String())
	}
	e.staging[i].DiscountPercent = billing.ClampPercent(percent)
	e.recomputeLocked()
	return nil
}

// ── Cabecera ──────────────────────────────────────────────────────────────────

// HeaderEdit campos editables de la cabecera; nil = sin cambio.
type HeaderEdit struct {
	Notes           *string
	ReferenceNumber *string
	GSTNumber       *string
}

// EditHeader actualiza notas, referencia o número GST.
func (e *Engine) EditHeader(edit HeaderEdit) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guardLocked(); err != nil {
		return err
	}
	if edit.Notes != nil {
		e.header.Notes = *edit.Notes
	}
	if edit.ReferenceNumber != nil {
		e.header.ReferenceNumber = strings.TrimSpace(*edit.ReferenceNumber)
	}
	if edit.GSTNumber != nil {
		e.header.GSTNumber = strings.TrimSpace(*edit.GSTNumber)
	}
	return nil
}

// SetNotes fija las notas libres del recibo.
func (e *Engine) SetNotes(notes string) error { return e.EditHeader(HeaderEdit{Notes: &notes}) }

// SetReference fija el número de recibo del proveedor.
func (e *Engine) SetReference(ref string) error {
	return e.EditHeader(HeaderEdit{ReferenceNumber: &ref})
}

// SetGSTNumber fija el número GST de la parte.
func (e *Engine) SetGSTNumber(gst string) error { return e.EditHeader(HeaderEdit{GSTNumber: &gst}) }

// Totals agregados actuales de las líneas seleccionadas.
func (e *Engine) Totals() entity.BillTotals {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totals
}

// ── Navegación ────────────────────────────────────────────────────────────────

// Advance avanza un paso. Desde la selección de parte carga el catálogo; desde la
// selección de ítems exige al menos uno seleccionado y, si el tipo lo requiere,
// reserva el número de factura.
func (e *Engine) Advance(ctx context.Context) error {
	e.mu.Lock()
	if err := e.guardLocked(); err != nil {
		e.mu.Unlock()
		return err
	}
	state := e.state
	party, period := e.header.PartyName, e.header.Period
	e.mu.Unlock()

	switch state {
	case StatePartySelection:
		_, err := e.LoadRemediableItems(ctx, party, period)
		return err
	case StateItemSelection:
		e.mu.Lock()
		if e.totals.TotalItems == 0 {
			e.mu.Unlock()
			return domain.Validation(domain.ErrNoSelection, "")
		}
		e.mu.Unlock()
		if err := e.ensureInvoiceNumber(ctx); err != nil {
			return err
		}
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.state != StateItemSelection {
			return domain.Validation(domain.ErrInvalidTransition, "el flujo cambió durante la reserva del número")
		}
		e.state = StateConfirmation
		return nil
	default:
		return domain.Validation(domain.ErrInvalidTransition, "use enviar para confirmar la factura")
	}
}

// Back retrocede un paso sin descartar la lista.
func (e *Engine) Back() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guardLocked(); err != nil {
		return err
	}
	switch e.state {
	case StateConfirmation:
		e.state = StateItemSelection
	case StateItemSelection:
		e.state = StatePartySelection
	default:
		return domain.Validation(domain.ErrInvalidTransition, "ya está en el primer paso")
	}
	return nil
}

// Cancel descarta lista y cabecera (salvo el email de la sesión). No requiere
// compensación en el servidor: nada se persistió.
func (e *Engine) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guardLocked(); err != nil {
		return err
	}
	e.search.Cancel()
	e.resetLocked()
	return nil
}

// ensureInvoiceNumber pide el número de factura una sola vez para los tipos que lo preasignan.
func (e *Engine) ensureInvoiceNumber(ctx context.Context) error {
	if !e.kind.PreassignNumber() {
		return nil
	}
	e.mu.Lock()
	if e.header.InvoiceNumber != "" {
		e.mu.Unlock()
		return nil
	}
	sess := e.session
	e.mu.Unlock()

	number, err := e.api.FetchNextInvoiceNumber(ctx, sess, e.kind)
	if err != nil {
		return asWorkflowError(err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.header.InvoiceNumber == "" {
		e.header.InvoiceNumber = number
	}
	return nil
}

// ── Envío ─────────────────────────────────────────────────────────────────────

// Submit revalida, crea la factura en el servidor y genera el recibo.
// En éxito limpia el flujo y vuelve a la selección de parte; en fallo conserva la
// lista y permanece en confirmación. Solo se admite un envío en curso.
func (e *Engine) Submit(ctx context.Context) (*SubmitResult, error) {
	e.mu.Lock()
	if e.submitting {
		e.mu.Unlock()
		return nil, domain.Validation(domain.ErrSubmissionInFlight, "")
	}
	lines, err := e.validateForSubmitLocked()
	if err != nil {
		e.mu.Unlock()
		return nil, err
	}
	e.search.Cancel()
	e.submitting = true
	e.touched = e.now()
	sess := e.session
	e.mu.Unlock()

	bill, err := e.createBill(ctx, sess, lines)

	if err != nil {
		e.mu.Lock()
		e.submitting = false
		e.lastErr = asWorkflowError(err)
		we := e.lastErr
		e.mu.Unlock()
		e.log.Warn().Err(err).Str("kind_error", string(we.Kind)).Msg("envío de factura fallido")
		return nil, we
	}

	res := &SubmitResult{Bill: bill}
	e.finishSubmission(ctx, sess, bill, res)

	e.mu.Lock()
	e.search.Cancel()
	e.resetLocked()
	e.lastSubmitted = bill.Number
	e.notice = fmt.Sprintf("factura %s creada", bill.Number)
	e.submitting = false
	e.mu.Unlock()

	e.log.Info().Str("number", bill.Number).Str("party", bill.Header.PartyName).
		Str("net", bill.Totals.NetAmount.StringFixed(2)).Msg("factura creada")
	return res, nil
}

func (e *Engine) validateForSubmitLocked() ([]entity.StagedLineItem, error) {
	selected := make([]entity.StagedLineItem, 0, len(e.staging))
	for _, it := range e.staging {
		if it.Selected {
			selected = append(selected, it)
		}
	}
	if len(selected) == 0 {
		return nil, domain.Validation(domain.ErrNoSelection, "")
	}
	if strings.TrimSpace(e.header.PartyName) == "" {
		return nil, domain.Validation(domain.ErrMissingParty, "")
	}
	if strings.TrimSpace(e.header.Email) == "" {
		return nil, domain.Validation(domain.ErrMissingEmail, "")
	}
	for _, it := range selected {
		ref, ok := e.catalogItemLocked(it.Key())
		if !ok {
			return nil, domain.Validation(domain.ErrUnknownBatch, fmt.Sprintf("%s (lote %s)", it.ItemName, it.Batch))
		}
		if it.ReturnQuantity < 1 || it.ReturnQuantity > ref.ReturnableQuantity {
			return nil, domain.Validation(domain.ErrQuantityOutOfRange,
				fmt.Sprintf("%s (lote %s): %d de %d", it.ItemName, it.Batch, it.ReturnQuantity, ref.ReturnableQuantity))
		}
	}
	if e.kind.RequiresReference && e.header.ReferenceNumber == "" {
		return nil, domain.Validation(domain.ErrMissingReference, "")
	}
	if e.kind.RequiresGSTNumber && e.header.GSTNumber == "" {
		return nil, domain.Validation(domain.ErrMissingGSTNumber, "")
	}
	if e.state != StateConfirmation {
		return nil, domain.Validation(domain.ErrInvalidTransition, "confirme la factura antes de enviarla")
	}
	return selected, nil
}

func (e *Engine) createBill(ctx context.Context, sess entity.Session, lines []entity.StagedLineItem) (*entity.FinalizedBill, error) {
	if err := e.ensureInvoiceNumber(ctx); err != nil {
		return nil, err
	}
	e.mu.Lock()
	header := e.header
	totals := billing.ComputeTotals(lines, e.kind.Valuation)
	e.mu.Unlock()

	bill, err := e.api.CreateBill(ctx, sess, e.kind, CreateBillRequest{Header: header, Lines: lines, Totals: totals})
	if err != nil {
		return nil, err
	}
	e.completeBill(bill, header, lines, totals)
	return bill, nil
}

// completeBill rellena lo que el servidor no devolvió con los datos locales.
func (e *Engine) completeBill(bill *entity.FinalizedBill, header entity.BillHeader, lines []entity.StagedLineItem, totals entity.BillTotals) {
	bill.Kind = e.kind.Code
	if bill.Number == "" {
		bill.Number = header.InvoiceNumber
	}
	if bill.Header.PartyName == "" {
		bill.Header = header
	}
	bill.Header.InvoiceNumber = bill.Number
	if len(bill.Lines) == 0 {
		bill.Lines = FinalizeLines(lines, e.kind.Valuation)
	}
	if bill.Totals.TotalItems == 0 && bill.Totals.NetAmount.IsZero() {
		bill.Totals = totals
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = e.now()
	}
}

// finishSubmission inventario, recibo, archivo y eventos. Ningún fallo aquí deshace la factura.
func (e *Engine) finishSubmission(ctx context.Context, sess entity.Session, bill *entity.FinalizedBill, res *SubmitResult) {
	stockUpdated := false
	if e.kind.UpdatesStock() {
		if err := e.api.UpdateBatchQuantities(ctx, sess, e.kind, bill.Lines); err != nil {
			res.Warnings = append(res.Warnings, domain.StockUpdate(err))
			e.log.Warn().Err(err).Str("number", bill.Number).Msg("factura creada, falló la actualización del inventario")
		} else {
			stockUpdated = true
		}
	}
	if e.renderer != nil {
		receipt, err := e.renderer.Render(ctx, e.kind, bill)
		if err != nil {
			res.Warnings = append(res.Warnings, domain.Rendering(err))
			e.log.Warn().Err(err).Str("number", bill.Number).Msg("factura creada, falló el recibo")
		} else {
			res.Receipt = receipt
			e.archiveReceipt(ctx, bill, receipt)
		}
	}
	if e.events != nil {
		ev := entity.BillEvent{
			Type:      e.kind.Event,
			Kind:      e.kind.Code,
			Email:     bill.Header.Email,
			Number:    bill.Number,
			PartyName: bill.Header.PartyName,
			NetAmount: bill.Totals.NetAmount,
			At:        e.now(),
		}
		e.publish(ctx, ev)
		if stockUpdated {
			ev.Type = entity.EventInventoryUpdate
			e.publish(ctx, ev)
		}
	}
}

func (e *Engine) publish(ctx context.Context, ev entity.BillEvent) {
	if err := e.events.Publish(ctx, ev); err != nil {
		e.log.Warn().Err(err).Str("event", ev.Type).Msg("publicar evento")
	}
}

func (e *Engine) archiveReceipt(ctx context.Context, bill *entity.FinalizedBill, receipt *entity.Receipt) {
	if e.archive == nil {
		return
	}
	err := e.archive.Save(ctx, &entity.ArchivedReceipt{
		Email:     bill.Header.Email,
		Kind:      bill.Kind,
		Number:    bill.Number,
		PartyName: bill.Header.PartyName,
		NetAmount: bill.Totals.NetAmount,
		Filename:  receipt.Filename,
		Content:   receipt.Content,
		CreatedAt: bill.CreatedAt,
	})
	if err != nil {
		e.log.Warn().Err(err).Str("number", bill.Number).Msg("archivar recibo")
	}
}

// FinalizeLines proyecta las líneas seleccionadas a su forma final.
func FinalizeLines(lines []entity.StagedLineItem, v entity.Valuation) []entity.FinalizedLine {
	out := make([]entity.FinalizedLine, 0, len(lines))
	for _, it := range lines {
		if !it.Selected {
			continue
		}
		unit := it.UnitValue(v)
		out = append(out, entity.FinalizedLine{
			ItemName:              it.ItemName,
			Batch:                 it.Batch,
			ExpiryDate:            it.ExpiryDate,
			OriginalInvoiceNumber: it.OriginalInvoiceNumber,
			Quantity:              it.ReturnQuantity,
			UnitValue:             unit,
			DiscountPercent:       it.DiscountPercent,
			GSTPercentage:         it.GSTPercentage,
			LineValue:             billing.ComputeLine(it.ReturnQuantity, unit, it.DiscountPercent, it.GSTPercentage).Gross,
		})
	}
	return out
}

// ── Vista ─────────────────────────────────────────────────────────────────────

// Snapshot copia inmutable del estado visible del flujo.
type Snapshot struct {
	Kind          entity.BillKindCode
	State         State
	Header        entity.BillHeader
	Catalog       []entity.RemediableItem
	Staging       []entity.StagedLineItem
	Totals        entity.BillTotals
	Submitting    bool
	Notice        string
	LastError     *domain.WorkflowError
	LastSubmitted string
}

// Snapshot devuelve el estado actual; las listas son copias.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Kind:          e.kind.Code,
		State:         e.state,
		Header:        e.header,
		Catalog:       append([]entity.RemediableItem(nil), e.catalog...),
		Staging:       append([]entity.StagedLineItem(nil), e.staging...),
		Totals:        e.totals,
		Submitting:    e.submitting,
		Notice:        e.notice,
		LastError:     e.lastErr,
		LastSubmitted: e.lastSubmitted,
	}
}

// IdleSince momento de la última interacción.
func (e *Engine) IdleSince() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.touched
}

// Close descarta cargas pendientes.
func (e *Engine) Close() { e.search.Cancel() }

// ── Helpers internos ──────────────────────────────────────────────────────────

func (e *Engine) guardLocked() error {
	e.touched = e.now()
	if e.submitting {
		return domain.Validation(domain.ErrSubmissionInFlight, "")
	}
	return nil
}

func (e *Engine) guardEditLocked() error {
	if err := e.guardLocked(); err != nil {
		return err
	}
	if e.state != StateItemSelection {
		return domain.Validation(domain.ErrInvalidTransition, "la lista solo se edita en la selección de ítems")
	}
	return nil
}

func (e *Engine) normalizePeriod(p entity.Period) entity.Period {
	if e.kind.DateShape == entity.SingleDate {
		if p.Start.IsZero() {
			p.Start = p.End
		}
		return entity.SingleDay(p.Start)
	}
	return p
}

func (e *Engine) validateQuery(party string, p entity.Period) error {
	if strings.TrimSpace(party) == "" {
		return domain.Validation(domain.ErrMissingParty, "")
	}
	if p.Start.IsZero() || p.End.IsZero() {
		return domain.Validation(domain.ErrInvalidPeriod, "indique las fechas")
	}
	if p.End.Before(p.Start) {
		return domain.Validation(domain.ErrInvalidPeriod, "")
	}
	return nil
}

func (e *Engine) stagedIndexLocked(key entity.BatchKey) int {
	for i, it := range e.staging {
		if it.Key() == key {
			return i
		}
	}
	return -1
}

func (e *Engine) catalogItemLocked(key entity.BatchKey) (entity.RemediableItem, bool) {
	for _, it := range e.catalog {
		if it.Key() == key {
			return it, true
		}
	}
	return entity.RemediableItem{}, false
}

func (e *Engine) recomputeLocked() {
	e.totals = billing.ComputeTotals(e.staging, e.kind.Valuation)
}

func (e *Engine) discardStagingLocked() {
	e.catalog = nil
	e.staging = nil
	e.recomputeLocked()
}

func (e *Engine) resetLocked() {
	e.discardStagingLocked()
	e.header = entity.BillHeader{Email: e.session.Email}
	e.state = StatePartySelection
	e.notice = ""
	e.lastErr = nil
}

// asWorkflowError garantiza un error estructurado; lo desconocido se trata como transitorio.
func asWorkflowError(err error) *domain.WorkflowError {
	var we *domain.WorkflowError
	if errors.As(err, &we) {
		return we
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.Transient("la petición fue cancelada o excedió el tiempo de espera", err)
	}
	return domain.Transient("no se pudo contactar la API de facturación", err)
}
