package returns_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pharmabill/internal/application/returns"
	"github.com/jhoicas/pharmabill/internal/domain"
	"github.com/jhoicas/pharmabill/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

type fakeAPI struct {
	mu          sync.Mutex
	fetch       func(ctx context.Context, party string) ([]entity.RemediableItem, error)
	create      func(ctx context.Context, req returns.CreateBillRequest) (*entity.FinalizedBill, error)
	stock       func(lines []entity.FinalizedLine) error
	nextNumber  string
	fetchCalls  int32
	createCalls int32
	stockCalls  int32
	parties     []string
	lastCreate  returns.CreateBillRequest
}

func (f *fakeAPI) FetchRemediableItems(ctx context.Context, _ entity.Session, _ entity.BillKind, party string, _ entity.Period) ([]entity.RemediableItem, error) {
	atomic.AddInt32(&f.fetchCalls, 1)
	f.mu.Lock()
	f.parties = append(f.parties, party)
	fn := f.fetch
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx, party)
}

func (f *fakeAPI) CreateBill(ctx context.Context, _ entity.Session, _ entity.BillKind, req returns.CreateBillRequest) (*entity.FinalizedBill, error) {
	atomic.AddInt32(&f.createCalls, 1)
	f.mu.Lock()
	f.lastCreate = req
	fn := f.create
	f.mu.Unlock()
	if fn == nil {
		return &entity.FinalizedBill{Number: "RB-1"}, nil
	}
	return fn(ctx, req)
}

func (f *fakeAPI) FetchNextInvoiceNumber(context.Context, entity.Session, entity.BillKind) (string, error) {
	return f.nextNumber, nil
}

func (f *fakeAPI) UpdateBatchQuantities(_ context.Context, _ entity.Session, _ entity.BillKind, lines []entity.FinalizedLine) error {
	atomic.AddInt32(&f.stockCalls, 1)
	f.mu.Lock()
	fn := f.stock
	f.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(lines)
}

type fakeRenderer struct {
	err error
}

func (r fakeRenderer) Render(_ context.Context, kind entity.BillKind, bill *entity.FinalizedBill) (*entity.Receipt, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &entity.Receipt{Filename: kind.ReceiptFilename(bill.Number), ContentType: "application/pdf", Content: []byte("%PDF-1.3")}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.BillEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev entity.BillEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

var (
	testSession = entity.Session{UserID: "u-1", Email: "pharmacy@example.com", Token: "tok"}
	day         = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	period      = entity.Period{Start: day, End: day.AddDate(0, 1, 0)}
)

func paracetamolItem() entity.RemediableItem {
	return entity.RemediableItem{
		ItemName:           "Paracetamol",
		Batch:              "B1",
		ExpiryDate:         day.AddDate(1, 0, 0),
		MRP:                decimal.NewFromInt(10),
		PurchaseRate:       decimal.NewFromInt(8),
		GSTPercentage:      decimal.NewFromInt(12),
		ReturnableQuantity: 50,
	}
}

func newEngine(t *testing.T, code entity.BillKindCode, api *fakeAPI, r returns.ReceiptRenderer) *returns.Engine {
	t.Helper()
	kind, ok := entity.LookupBillKind(code)
	require.True(t, ok)
	return returns.NewEngine(kind, testSession, returns.Deps{API: api, Renderer: r}, returns.Options{
		Debounce:      20 * time.Millisecond,
		MinPartyChars: 3,
		Clock:         func() time.Time { return day },
	})
}

// loadedEngine devuelve un flujo de devolución de cliente con Paracetamol/B1 en la lista.
func loadedEngine(t *testing.T, api *fakeAPI, r returns.ReceiptRenderer) *returns.Engine {
	t.Helper()
	api.fetch = func(context.Context, string) ([]entity.RemediableItem, error) {
		return []entity.RemediableItem{paracetamolItem()}, nil
	}
	e := newEngine(t, entity.KindClientExpiry, api, r)
	res, err := e.LoadRemediableItems(context.Background(), "Acme Clinic", period)
	require.NoError(t, err)
	require.Equal(t, 1, res.Items)
	require.NoError(t, e.AddLineItem("Paracetamol", "B1"))
	return e
}

var paracetamolKey = entity.NewBatchKey("Paracetamol", "B1")

// ──────────────────────────────────────────────────────────────────────────────
// Carga del catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_FiltraNoDevolviblesYPasaASeleccion(t *testing.T) {
	api := &fakeAPI{fetch: func(context.Context, string) ([]entity.RemediableItem, error) {
		agotado := paracetamolItem()
		agotado.Batch = "B0"
		agotado.ReturnableQuantity = 0
		return []entity.RemediableItem{agotado, paracetamolItem()}, nil
	}}
	e := newEngine(t, entity.KindClientExpiry, api, nil)

	res, err := e.LoadRemediableItems(context.Background(), "Acme Clinic", period)
	require.NoError(t, err)

	snap := e.Snapshot()
	assert.Equal(t, 1, res.Items)
	assert.Len(t, snap.Catalog, 1)
	assert.Empty(t, snap.Staging, "la devolución de cliente no agrega ítems automáticamente")
	assert.Equal(t, returns.StateItemSelection, snap.State)
}

func TestLoad_ResultadoVacioNoEsError(t *testing.T) {
	e := newEngine(t, entity.KindClientExpiry, &fakeAPI{}, nil)

	res, err := e.LoadRemediableItems(context.Background(), "Acme Clinic", period)
	require.NoError(t, err)

	assert.True(t, res.Empty)
	snap := e.Snapshot()
	assert.Equal(t, returns.StatePartySelection, snap.State)
	assert.NotEmpty(t, snap.Notice)
}

func TestLoad_ProveedorAgregaTodoAutomaticamente(t *testing.T) {
	api := &fakeAPI{fetch: func(context.Context, string) ([]entity.RemediableItem, error) {
		b := paracetamolItem()
		b.Batch = "B2"
		return []entity.RemediableItem{paracetamolItem(), b}, nil
	}}
	e := newEngine(t, entity.KindSupplierExpiry, api, nil)

	_, err := e.LoadRemediableItems(context.Background(), "Pharma Dist", period)
	require.NoError(t, err)

	snap := e.Snapshot()
	require.Len(t, snap.Staging, 2)
	assert.True(t, snap.Staging[0].Selected)
	assert.Equal(t, 100, snap.Totals.TotalQuantity)
}

func TestLoad_ValidaParteYPeriodo(t *testing.T) {
	e := newEngine(t, entity.KindClientExpiry, &fakeAPI{}, nil)

	_, err := e.LoadRemediableItems(context.Background(), "  ", period)
	assert.ErrorIs(t, err, domain.ErrMissingParty)

	_, err = e.LoadRemediableItems(context.Background(), "Acme", entity.Period{Start: day, End: day.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestLoad_FalloDeRedEsTransitorio(t *testing.T) {
	api := &fakeAPI{fetch: func(context.Context, string) ([]entity.RemediableItem, error) {
		return nil, errors.New("connection refused")
	}}
	e := newEngine(t, entity.KindClientExpiry, api, nil)

	_, err := e.LoadRemediableItems(context.Background(), "Acme Clinic", period)
	require.Error(t, err)
	assert.Equal(t, domain.KindTransient, domain.KindOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Debounce y "la última petición gana"
// ──────────────────────────────────────────────────────────────────────────────

func TestEditQuery_DebounceSoloCargaLaUltimaEdicion(t *testing.T) {
	api := &fakeAPI{fetch: func(context.Context, string) ([]entity.RemediableItem, error) {
		return []entity.RemediableItem{paracetamolItem()}, nil
	}}
	e := newEngine(t, entity.KindClientExpiry, api, nil)

	for _, p := range []string{"Ac", "Acm", "Acme", "Acme C"} {
		require.NoError(t, e.EditQuery(p, period))
	}

	require.Eventually(t, func() bool {
		return e.Snapshot().State == returns.StateItemSelection
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, int32(1), atomic.LoadInt32(&api.fetchCalls), "solo debe dispararse una carga")
	api.mu.Lock()
	assert.Equal(t, []string{"Acme C"}, api.parties)
	api.mu.Unlock()
}

func TestEditQuery_ParteCortaNoCarga(t *testing.T) {
	api := &fakeAPI{}
	e := newEngine(t, entity.KindClientExpiry, api, nil)

	require.NoError(t, e.EditQuery("Ac", period))
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, int32(0), atomic.LoadInt32(&api.fetchCalls))
}

func TestLoad_RespuestaTardiaSeDescarta(t *testing.T) {
	release := make(chan struct{})
	api := &fakeAPI{fetch: func(ctx context.Context, party string) ([]entity.RemediableItem, error) {
		if party == "Lenta" {
			<-release
			item := paracetamolItem()
			item.ItemName = "Obsoleto"
			return []entity.RemediableItem{item}, nil
		}
		return []entity.RemediableItem{paracetamolItem()}, nil
	}}
	e := newEngine(t, entity.KindClientExpiry, api, nil)

	slow := make(chan returns.LoadResult, 1)
	go func() {
		res, _ := e.LoadRemediableItems(context.Background(), "Lenta", period)
		slow <- res
	}()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&api.fetchCalls) == 1 }, time.Second, time.Millisecond)

	_, err := e.LoadRemediableItems(context.Background(), "Rapida", period)
	require.NoError(t, err)
	close(release)

	res := <-slow
	assert.True(t, res.Superseded)
	snap := e.Snapshot()
	require.Len(t, snap.Catalog, 1)
	assert.Equal(t, "Paracetamol", snap.Catalog[0].ItemName)
	assert.Equal(t, "Rapida", snap.Header.PartyName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición de la lista
// ──────────────────────────────────────────────────────────────────────────────

func TestSetReturnQuantity_AcotaAlDevolvible(t *testing.T) {
	e := loadedEngine(t, &fakeAPI{}, nil)

	applied, err := e.SetReturnQuantity(paracetamolKey, 60)
	require.NoError(t, err)
	assert.Equal(t, 50, applied)

	applied, err = e.SetReturnQuantity(paracetamolKey, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	applied, err = e.SetReturnQuantity(paracetamolKey, 20)
	require.NoError(t, err)
	assert.Equal(t, 20, applied)

	totals := e.Snapshot().Totals
	assert.True(t, decimal.NewFromInt(224).Equal(totals.NetAmount), "neto esperado 224, obtenido %s", totals.NetAmount)
}

func TestAddLineItem_DuplicadoEsValidacion(t *testing.T) {
	e := loadedEngine(t, &fakeAPI{}, nil)

	err := e.AddLineItem("paracetamol", "b1")
	require.ErrorIs(t, err, domain.ErrDuplicateLineItem)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Contains(t, err.Error(), "lote b1")
	assert.Len(t, e.Snapshot().Staging, 1)
}

func TestAddLineItem_LoteDesconocido(t *testing.T) {
	e := loadedEngine(t, &fakeAPI{}, nil)

	assert.ErrorIs(t, e.AddLineItem("Ibuprofeno", "X9"), domain.ErrUnknownBatch)
}

func TestAddLineItem_DevolucionDeCompraRechazaVencidos(t *testing.T) {
	vencido := paracetamolItem()
	vencido.ExpiryDate = day.AddDate(0, 0, -1)
	api := &fakeAPI{fetch: func(context.Context, string) ([]entity.RemediableItem, error) {
		return []entity.RemediableItem{vencido}, nil
	}}
	e := newEngine(t, entity.KindPurchaseReturn, api, nil)
	_, err := e.LoadRemediableItems(context.Background(), "Pharma Dist", entity.SingleDay(day))
	require.NoError(t, err)

	assert.ErrorIs(t, e.AddLineItem("Paracetamol", "B1"), domain.ErrExpiredBatch)
}

func TestToggleYRemove_RecalculanTotales(t *testing.T) {
	e := loadedEngine(t, &fakeAPI{}, nil)

	require.NoError(t, e.ToggleSelection(paracetamolKey))
	assert.Equal(t, 0, e.Snapshot().Totals.TotalItems)

	require.NoError(t, e.ToggleSelection(paracetamolKey))
	assert.Equal(t, 1, e.Snapshot().Totals.TotalItems)

	require.NoError(t, e.RemoveLineItem(0))
	assert.Empty(t, e.Snapshot().Staging)
	assert.Error(t, e.RemoveLineItem(0))
}

func TestSetDiscount_AcotaPorcentaje(t *testing.T) {
	e := loadedEngine(t, &fakeAPI{}, nil)

	require.NoError(t, e.SetDiscount(paracetamolKey, decimal.NewFromInt(150)))
	snap := e.Snapshot()
	assert.True(t, decimal.NewFromInt(100).Equal(snap.Staging[0].DiscountPercent))
	assert.True(t, snap.Totals.NetAmount.IsZero())
}

func TestEditQuery_CambioDeParteDescartaLista(t *testing.T) {
	e := loadedEngine(t, &fakeAPI{}, nil)

	require.NoError(t, e.EditQuery("Otra Clinica", period))

	snap := e.Snapshot()
	assert.Empty(t, snap.Staging)
	assert.Empty(t, snap.Catalog)
	assert.Equal(t, returns.StatePartySelection, snap.State)
}

func TestEditQuery_MismaConsultaConservaLaLista(t *testing.T) {
	api := &fakeAPI{}
	e := loadedEngine(t, api, nil)
	_, err := e.SetReturnQuantity(paracetamolKey, 20)
	require.NoError(t, err)
	require.NoError(t, e.Advance(context.Background()))

	require.NoError(t, e.EditQuery("Acme Clinic", period))
	time.Sleep(100 * time.Millisecond)

	snap := e.Snapshot()
	assert.Equal(t, returns.StateConfirmation, snap.State)
	require.Len(t, snap.Staging, 1)
	assert.Equal(t, 20, snap.Staging[0].ReturnQuantity)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.fetchCalls), "no debe recargarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Envío
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_SinSeleccionNoLlamaALaAPI(t *testing.T) {
	api := &fakeAPI{}
	e := loadedEngine(t, api, fakeRenderer{})
	require.NoError(t, e.ToggleSelection(paracetamolKey))

	_, err := e.Submit(context.Background())

	require.ErrorIs(t, err, domain.ErrNoSelection)
	assert.Equal(t, int32(0), atomic.LoadInt32(&api.createCalls))
}

func TestSubmit_ExigeConfirmacion(t *testing.T) {
	api := &fakeAPI{}
	e := loadedEngine(t, api, fakeRenderer{})

	_, err := e.Submit(context.Background())

	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, int32(0), atomic.LoadInt32(&api.createCalls))
}

func TestSubmit_ExitoLimpiaElFlujo(t *testing.T) {
	api := &fakeAPI{}
	pub := &recordingPublisher{}
	kind, _ := entity.LookupBillKind(entity.KindClientExpiry)
	api.fetch = func(context.Context, string) ([]entity.RemediableItem, error) {
		return []entity.RemediableItem{paracetamolItem()}, nil
	}
	e := returns.NewEngine(kind, testSession, returns.Deps{API: api, Renderer: fakeRenderer{}, Events: pub}, returns.Options{Clock: func() time.Time { return day }})
	_, err := e.LoadRemediableItems(context.Background(), "Acme Clinic", period)
	require.NoError(t, err)
	require.NoError(t, e.AddLineItem("Paracetamol", "B1"))
	_, err = e.SetReturnQuantity(paracetamolKey, 20)
	require.NoError(t, err)
	require.NoError(t, e.Advance(context.Background()))

	res, err := e.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "RB-1", res.Bill.Number)
	assert.Empty(t, res.Warnings)
	require.NotNil(t, res.Receipt)
	assert.Equal(t, "ClientExpiryReturn_RB-1.pdf", res.Receipt.Filename)
	assert.True(t, decimal.NewFromInt(224).Equal(res.Bill.Totals.NetAmount))
	assert.Len(t, res.Bill.Lines, 1)

	assert.Equal(t, 20, api.lastCreate.Lines[0].ReturnQuantity)

	snap := e.Snapshot()
	assert.Equal(t, returns.StatePartySelection, snap.State)
	assert.Empty(t, snap.Staging)
	assert.Empty(t, snap.Header.PartyName)
	assert.Equal(t, testSession.Email, snap.Header.Email)
	assert.Equal(t, "RB-1", snap.LastSubmitted)

	require.Len(t, pub.events, 1)
	assert.Equal(t, entity.EventReturnBillCreated, pub.events[0].Type)
}

func TestSubmit_RechazoDelServidorConservaLaLista(t *testing.T) {
	api := &fakeAPI{create: func(context.Context, returns.CreateBillRequest) (*entity.FinalizedBill, error) {
		return nil, domain.ServerRejection("Batch already fully returned")
	}}
	e := loadedEngine(t, api, fakeRenderer{})
	require.NoError(t, e.Advance(context.Background()))

	_, err := e.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, domain.KindServerRejection, domain.KindOf(err))
	assert.Equal(t, "Batch already fully returned", err.Error())

	snap := e.Snapshot()
	assert.Equal(t, returns.StateConfirmation, snap.State)
	assert.Len(t, snap.Staging, 1)
	assert.False(t, snap.Submitting)
}

func TestSubmit_FalloDelReciboEsAviso(t *testing.T) {
	e := loadedEngine(t, &fakeAPI{}, fakeRenderer{err: errors.New("fuente no disponible")})
	require.NoError(t, e.Advance(context.Background()))

	res, err := e.Submit(context.Background())

	require.NoError(t, err, "la factura ya existe en el servidor")
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, domain.KindRendering, res.Warnings[0].Kind)
	assert.Nil(t, res.Receipt)
	assert.Equal(t, returns.StatePartySelection, e.Snapshot().State)
}

func TestSubmit_UnSoloEnvioEnCurso(t *testing.T) {
	release := make(chan struct{})
	api := &fakeAPI{create: func(context.Context, returns.CreateBillRequest) (*entity.FinalizedBill, error) {
		<-release
		return &entity.FinalizedBill{Number: "RB-9"}, nil
	}}
	e := loadedEngine(t, api, fakeRenderer{})
	require.NoError(t, e.Advance(context.Background()))

	done := make(chan error, 1)
	go func() {
		_, err := e.Submit(context.Background())
		done <- err
	}()
	require.Eventually(t, func() bool { return e.Snapshot().Submitting }, time.Second, time.Millisecond)

	_, err := e.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)
	assert.ErrorIs(t, e.AddLineItem("Paracetamol", "B1"), domain.ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.createCalls))
}

func TestSubmit_DevolucionDeCompraExigeReferencia(t *testing.T) {
	api := &fakeAPI{fetch: func(context.Context, string) ([]entity.RemediableItem, error) {
		return []entity.RemediableItem{paracetamolItem()}, nil
	}}
	e := newEngine(t, entity.KindPurchaseReturn, api, fakeRenderer{})
	_, err := e.LoadRemediableItems(context.Background(), "Pharma Dist", entity.SingleDay(day))
	require.NoError(t, err)
	require.NoError(t, e.AddLineItem("Paracetamol", "B1"))
	require.NoError(t, e.Advance(context.Background()))

	_, err = e.Submit(context.Background())
	require.ErrorIs(t, err, domain.ErrMissingReference)

	ref := "SUP-778"
	require.NoError(t, e.EditHeader(returns.HeaderEdit{ReferenceNumber: &ref}))
	_, err = e.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SUP-778", api.lastCreate.Header.ReferenceNumber)
}

func TestAdvance_VentaReservaNumero(t *testing.T) {
	api := &fakeAPI{nextNumber: "INV-0042", fetch: func(context.Context, string) ([]entity.RemediableItem, error) {
		return []entity.RemediableItem{paracetamolItem()}, nil
	}}
	e := newEngine(t, entity.KindSale, api, fakeRenderer{})
	_, err := e.LoadRemediableItems(context.Background(), "Walk-in", entity.SingleDay(day))
	require.NoError(t, err)
	require.NoError(t, e.AddLineItem("Paracetamol", "B1"))

	require.NoError(t, e.Advance(context.Background()))

	snap := e.Snapshot()
	assert.Equal(t, returns.StateConfirmation, snap.State)
	assert.Equal(t, "INV-0042", snap.Header.InvoiceNumber)
}

func TestBack_NoDescartaLaLista(t *testing.T) {
	e := loadedEngine(t, &fakeAPI{}, nil)
	require.NoError(t, e.Advance(context.Background()))

	require.NoError(t, e.Back())
	snap := e.Snapshot()
	assert.Equal(t, returns.StateItemSelection, snap.State)
	assert.Len(t, snap.Staging, 1)
}

func TestCancel_LimpiaCabecera(t *testing.T) {
	e := loadedEngine(t, &fakeAPI{}, nil)

	require.NoError(t, e.Cancel())

	snap := e.Snapshot()
	assert.Empty(t, snap.Staging)
	assert.Empty(t, snap.Header.PartyName)
	assert.Equal(t, testSession.Email, snap.Header.Email)
}

// Una recarga con debounce pendiente no puede tocar la lista mientras el envío está en curso.
func TestSubmit_RecargaPendienteNoVaciaLaLista(t *testing.T) {
	release := make(chan struct{})
	api := &fakeAPI{create: func(context.Context, returns.CreateBillRequest) (*entity.FinalizedBill, error) {
		<-release
		return nil, domain.ServerRejection("Invalid client")
	}}
	e := loadedEngine(t, api, fakeRenderer{})
	_, err := e.SetReturnQuantity(paracetamolKey, 20)
	require.NoError(t, err)
	require.NoError(t, e.Advance(context.Background()))
	require.NoError(t, e.EditQuery("Acme Clinic", period))

	done := make(chan error, 1)
	go func() {
		_, err := e.Submit(context.Background())
		done <- err
	}()
	require.Eventually(t, func() bool { return e.Snapshot().Submitting }, time.Second, time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	during := e.Snapshot()
	assert.Equal(t, returns.StateConfirmation, during.State)
	assert.Len(t, during.Staging, 1)
	assert.ErrorIs(t, e.EditQuery("Otra Clinica", period), domain.ErrSubmissionInFlight)

	close(release)
	require.Error(t, <-done)
	time.Sleep(60 * time.Millisecond)

	after := e.Snapshot()
	assert.Equal(t, returns.StateConfirmation, after.State)
	require.Len(t, after.Staging, 1)
	assert.Equal(t, 20, after.Staging[0].ReturnQuantity)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.fetchCalls))
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta: descuento de inventario
// ──────────────────────────────────────────────────────────────────────────────

func confirmedSale(t *testing.T, api *fakeAPI, pub *recordingPublisher) *returns.Engine {
	t.Helper()
	api.nextNumber = "INV-0042"
	api.fetch = func(context.Context, string) ([]entity.RemediableItem, error) {
		return []entity.RemediableItem{paracetamolItem()}, nil
	}
	kind, _ := entity.LookupBillKind(entity.KindSale)
	e := returns.NewEngine(kind, testSession, returns.Deps{API: api, Renderer: fakeRenderer{}, Events: pub},
		returns.Options{Clock: func() time.Time { return day }})
	_, err := e.LoadRemediableItems(context.Background(), "Walk-in", entity.SingleDay(day))
	require.NoError(t, err)
	require.NoError(t, e.AddLineItem("Paracetamol", "B1"))
	_, err = e.SetReturnQuantity(paracetamolKey, 5)
	require.NoError(t, err)
	require.NoError(t, e.Advance(context.Background()))
	require.NoError(t, e.SetGSTNumber("29ABCDE1234F1Z5"))
	return e
}

func TestSubmit_VentaDescuentaInventario(t *testing.T) {
	var got []entity.FinalizedLine
	api := &fakeAPI{stock: func(lines []entity.FinalizedLine) error {
		got = lines
		return nil
	}}
	pub := &recordingPublisher{}
	e := confirmedSale(t, api, pub)

	res, err := e.Submit(context.Background())
	require.NoError(t, err)

	assert.Empty(t, res.Warnings)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.stockCalls))
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].Quantity)

	require.Len(t, pub.events, 2)
	assert.Equal(t, entity.EventSellBillCreated, pub.events[0].Type)
	assert.Equal(t, entity.EventInventoryUpdate, pub.events[1].Type)
	assert.Equal(t, res.Bill.Number, pub.events[1].Number)
}

func TestSubmit_FalloDeInventarioEsAviso(t *testing.T) {
	api := &fakeAPI{stock: func([]entity.FinalizedLine) error {
		return domain.ServerRejection("Batch not found")
	}}
	pub := &recordingPublisher{}
	e := confirmedSale(t, api, pub)

	res, err := e.Submit(context.Background())

	require.NoError(t, err, "la venta ya existe en el servidor")
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, domain.KindStockUpdate, res.Warnings[0].Kind)
	assert.NotNil(t, res.Receipt)
	require.Len(t, pub.events, 1)
	assert.Equal(t, entity.EventSellBillCreated, pub.events[0].Type)
	assert.Equal(t, returns.StatePartySelection, e.Snapshot().State)
}

func TestSubmit_DevolucionNoTocaInventario(t *testing.T) {
	api := &fakeAPI{}
	e := loadedEngine(t, api, fakeRenderer{})
	require.NoError(t, e.Advance(context.Background()))

	_, err := e.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&api.stockCalls))
}
