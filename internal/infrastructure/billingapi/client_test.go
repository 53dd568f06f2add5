package billingapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pharmabill/internal/application/returns"
	"github.com/jhoicas/pharmabill/internal/domain"
	"github.com/jhoicas/pharmabill/internal/domain/entity"
	"github.com/jhoicas/pharmabill/internal/infrastructure/billingapi"
)

var (
	sess = entity.Session{Email: "pharmacy@example.com", Token: "tok-123"}
	d0   = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
)

func kind(t *testing.T, code entity.BillKindCode) entity.BillKind {
	t.Helper()
	k, ok := entity.LookupBillKind(code)
	require.True(t, ok)
	return k
}

func newServer(t *testing.T, h http.HandlerFunc) *billingapi.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return billingapi.New(srv.URL+"/", 2*time.Second, nil)
}

func TestFetch_SobreConDataYAliasDeCantidad(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/expiry-bills/client-purchase-history", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "Acme Clinic", r.URL.Query().Get("partyName"))
		assert.Equal(t, "pharmacy@example.com", r.URL.Query().Get("email"))
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2024-04-01", r.URL.Query().Get("endDate"))
		_, _ = io.WriteString(w, `{"success":true,"data":[
			{"itemName":"Paracetamol","batch":"B1","expiryDate":"2025-01-31T00:00:00.000Z","mrp":10,"purchaseRate":"8","gstPercentage":12,"availableQuantity":50,"originalSaleInvoiceNumber":"INV-7"}
		]}`)
	})

	items, err := c.FetchRemediableItems(context.Background(), sess, kind(t, entity.KindClientExpiry), "Acme Clinic",
		entity.Period{Start: d0, End: d0.AddDate(0, 1, 0)})
	require.NoError(t, err)
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, 50, it.ReturnableQuantity)
	assert.True(t, decimal.NewFromInt(10).Equal(it.MRP))
	assert.True(t, decimal.NewFromInt(8).Equal(it.PurchaseRate))
	assert.Equal(t, "INV-7", it.OriginalInvoiceNumber)
	assert.Equal(t, 2025, it.ExpiryDate.Year())
}

func TestFetch_ArregloSinSobreYParametroDeProveedor(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Pharma Dist", r.URL.Query().Get("supplierName"))
		_, _ = io.WriteString(w, `[{"itemName":"Amoxicilina","batch":"A1","returnableQuantity":5,"quantity":99}]`)
	})

	items, err := c.FetchRemediableItems(context.Background(), sess, kind(t, entity.KindPurchaseReturn), "Pharma Dist", entity.SingleDay(d0))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].ReturnableQuantity, "returnableQuantity tiene prioridad sobre quantity")
}

func TestFetch_VentaUsaEmailEnLaRuta(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/inventory/pharmacy@example.com", r.URL.Path)
		_, _ = io.WriteString(w, `[]`)
	})

	items, err := c.FetchRemediableItems(context.Background(), sess, kind(t, entity.KindSale), "Walk-in", entity.SingleDay(d0))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFetch_404EsListaVacia(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"No purchase history"}`)
	})

	items, err := c.FetchRemediableItems(context.Background(), sess, kind(t, entity.KindPurchaseReturn), "X", entity.SingleDay(d0))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestErrores_Clasificacion(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		want    domain.ErrorKind
		message string
	}{
		{"rechazo 400 con mensaje literal", http.StatusBadRequest, `{"success":false,"message":"Batch already fully returned"}`, domain.KindServerRejection, "Batch already fully returned"},
		{"success false con 200", http.StatusOK, `{"success":false,"message":"Invalid supplier"}`, domain.KindServerRejection, "Invalid supplier"},
		{"500 es transitorio", http.StatusInternalServerError, `{"message":"boom"}`, domain.KindTransient, ""},
		{"401 es transitorio", http.StatusUnauthorized, `{"message":"jwt expired"}`, domain.KindTransient, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})

			_, err := c.CreateBill(context.Background(), sess, kind(t, entity.KindClientExpiry), returns.CreateBillRequest{})
			require.Error(t, err)
			assert.Equal(t, tc.want, domain.KindOf(err))
			if tc.message != "" {
				assert.Equal(t, tc.message, err.Error())
			}
		})
	}
}

func TestTransporte_TimeoutEsTransitorio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()
	c := billingapi.New(srv.URL, 20*time.Millisecond, nil)

	_, err := c.FetchRemediableItems(context.Background(), sess, kind(t, entity.KindSale), "X", entity.SingleDay(d0))
	require.Error(t, err)
	assert.Equal(t, domain.KindTransient, domain.KindOf(err))
}

func TestCreateBill_CuerpoYTotalesDelServidor(t *testing.T) {
	var got map[string]interface{}
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/purchase-returns/create", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"success":true,"data":{"returnBillNumber":"PR-0005","totalAmount":160,"discountAmount":0,"totalGstAmount":19.2,"netAmount":179.2,"createdAt":"2024-03-01T10:00:00Z"}}`)
	})
	line := entity.NewStagedLineItem(entity.RemediableItem{
		ItemName: "Paracetamol", Batch: "B1", ReturnableQuantity: 50,
		MRP: decimal.NewFromInt(10), PurchaseRate: decimal.NewFromInt(8), GSTPercentage: decimal.NewFromInt(12),
	})
	line.ReturnQuantity = 20
	req := returns.CreateBillRequest{
		Header: entity.BillHeader{PartyName: "Pharma Dist", Email: sess.Email, Period: entity.SingleDay(d0), ReferenceNumber: "SUP-1"},
		Lines:  []entity.StagedLineItem{line},
	}

	bill, err := c.CreateBill(context.Background(), sess, kind(t, entity.KindPurchaseReturn), req)
	require.NoError(t, err)

	assert.Equal(t, "PR-0005", bill.Number)
	assert.True(t, decimal.RequireFromString("179.2").Equal(bill.Totals.NetAmount))
	assert.True(t, decimal.RequireFromString("9.6").Equal(bill.Totals.SGST))
	require.Len(t, bill.Lines, 1)
	assert.Equal(t, 20, bill.Lines[0].Quantity)

	assert.Equal(t, "Pharma Dist", got["supplierName"])
	assert.Equal(t, "SUP-1", got["receiptNumber"])
	assert.Equal(t, "2024-03-01", got["date"])
	items := got["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.EqualValues(t, 20, item["returnQuantity"])

	// Los importes salen como números JSON.
	assert.IsType(t, float64(0), got["netAmount"])
	assert.InDelta(t, 179.2, item["amount"], 1e-9)
	assert.InDelta(t, 19.2, item["gstAmount"], 1e-9)
}

func TestUpdateBatchQuantities_DescuentaLoVendido(t *testing.T) {
	var got map[string][]map[string]interface{}
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/inventory/update-batch-quantities", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"success":true}`)
	})
	lines := []entity.FinalizedLine{{ItemName: "Paracetamol", Batch: "B1", Quantity: 5}}

	require.NoError(t, c.UpdateBatchQuantities(context.Background(), sess, kind(t, entity.KindSale), lines))

	require.Len(t, got["updates"], 1)
	u := got["updates"][0]
	assert.Equal(t, sess.Email, u["email"])
	assert.Equal(t, "B1", u["batch"])
	assert.EqualValues(t, -5, u["quantity"])
}

func TestUpdateBatchQuantities_YaActualizadoNoEsError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"success":false,"message":"Inventory already updated"}`)
	})
	lines := []entity.FinalizedLine{{ItemName: "Paracetamol", Batch: "B1", Quantity: 5}}

	assert.NoError(t, c.UpdateBatchQuantities(context.Background(), sess, kind(t, entity.KindSale), lines))
}

func TestUpdateBatchQuantities_RechazoSePropaga(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"success":false,"message":"Batch not found"}`)
	})
	lines := []entity.FinalizedLine{{ItemName: "Paracetamol", Batch: "B1", Quantity: 5}}

	err := c.UpdateBatchQuantities(context.Background(), sess, kind(t, entity.KindSale), lines)
	require.Error(t, err)
	assert.Equal(t, domain.KindServerRejection, domain.KindOf(err))
	assert.Equal(t, "Batch not found", err.Error())
}

func TestUpdateBatchQuantities_DevolucionNoLlamaALaAPI(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("petición inesperada a %s", r.URL.Path)
	})
	lines := []entity.FinalizedLine{{ItemName: "Paracetamol", Batch: "B1", Quantity: 5}}

	assert.NoError(t, c.UpdateBatchQuantities(context.Background(), sess, kind(t, entity.KindClientExpiry), lines))
}

func TestFetchNextInvoiceNumber(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bills/next-invoice-number", r.URL.Path)
		_, _ = io.WriteString(w, `{"invoiceNumber":"INV0042"}`)
	})

	n, err := c.FetchNextInvoiceNumber(context.Background(), sess, kind(t, entity.KindSale))
	require.NoError(t, err)
	assert.Equal(t, "INV0042", n)
}
