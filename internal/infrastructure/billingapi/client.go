// Package billingapi implementa returns.BillingAPIClient sobre la API REST remota de facturación.
package billingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/pharmabill/internal/application/returns"
	"github.com/jhoicas/pharmabill/internal/domain"
	"github.com/jhoicas/pharmabill/internal/domain/entity"
	"github.com/jhoicas/pharmabill/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa BillingAPIClient.
var _ returns.BillingAPIClient = (*Client)(nil)

const maxBodyBytes = 4 << 20

// Client adaptador HTTP de un solo intento: sin reintentos ni caché.
// Usa net/http de la librería estándar; el token Bearer llega con cada sesión.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// New construye el cliente. timeout se aplica a cada petición.
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Named("billingapi"),
	}
}

// FetchRemediableItems consulta lo devolvible (o vendible) para la parte y el periodo.
// Un 404 significa que no hay nada devolvible.
func (c *Client) FetchRemediableItems(ctx context.Context, sess entity.Session, kind entity.BillKind, party string, period entity.Period) ([]entity.RemediableItem, error) {
	q := url.Values{}
	q.Set("email", sess.Email)
	if kind.PartyParam != "" {
		q.Set(kind.PartyParam, party)
	}
	if kind.DateShape == entity.DateRange {
		q.Set("startDate", formatDate(period.Start))
		q.Set("endDate", formatDate(period.End))
	} else if !period.Start.IsZero() {
		q.Set("date", formatDate(period.Start))
	}
	path := strings.ReplaceAll(kind.RemediablePath, "{email}", url.PathEscape(sess.Email))

	status, raw, err := c.do(ctx, sess, http.MethodGet, path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err := checkStatus(status, raw); err != nil {
		return nil, err
	}

	data, err := unwrap(raw)
	if err != nil {
		return nil, err
	}
	var wires []remediableWire
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &wires); err != nil {
			return nil, domain.Transient("respuesta inesperada de la API de facturación", fmt.Errorf("billingapi: decodificar ítems: %w", err))
		}
	}
	items := make([]entity.RemediableItem, 0, len(wires))
	for _, w := range wires {
		items = append(items, w.toEntity())
	}
	c.log.Debug().Str("bill_kind", string(kind.Code)).Str("party", party).Int("items", len(items)).Msg("ítems devolvibles")
	return items, nil
}

// CreateBill envía la factura. Los totales del servidor, si vienen, prevalecen sobre los locales.
func (c *Client) CreateBill(ctx context.Context, sess entity.Session, kind entity.BillKind, req returns.CreateBillRequest) (*entity.FinalizedBill, error) {
	body, err := json.Marshal(newCreateWire(kind, req))
	if err != nil {
		return nil, fmt.Errorf("billingapi: serializar factura: %w", err)
	}
	status, raw, err := c.do(ctx, sess, http.MethodPost, kind.CreatePath, body)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, raw); err != nil {
		return nil, err
	}
	data, err := unwrap(raw)
	if err != nil {
		return nil, err
	}

	var created createdWire
	if len(data) > 0 && data[0] == '{' {
		if err := json.Unmarshal(data, &created); err != nil {
			return nil, domain.Transient("respuesta inesperada de la API de facturación", fmt.Errorf("billingapi: decodificar factura: %w", err))
		}
	}
	// Algunos endpoints devuelven el número fuera de data.
	if created.number() == "" {
		var top createdWire
		if json.Unmarshal(raw, &top) == nil {
			created.ReturnBillNumber = top.number()
		}
	}

	number := created.number()
	if number == "" {
		number = req.Header.InvoiceNumber
	}
	bill := &entity.FinalizedBill{
		Kind:      kind.Code,
		Number:    number,
		Header:    req.Header,
		Lines:     returns.FinalizeLines(req.Lines, kind.Valuation),
		Totals:    created.applyTotals(req.Totals),
		CreatedAt: parseDate(created.CreatedAt),
	}
	bill.Header.InvoiceNumber = number
	return bill, nil
}

// FetchNextInvoiceNumber reserva el siguiente número de factura de venta.
func (c *Client) FetchNextInvoiceNumber(ctx context.Context, sess entity.Session, kind entity.BillKind) (string, error) {
	if kind.NextNumberPath == "" {
		return "", nil
	}
	body, _ := json.Marshal(map[string]string{"email": sess.Email})
	status, raw, err := c.do(ctx, sess, http.MethodPost, kind.NextNumberPath, body)
	if err != nil {
		return "", err
	}
	if err := checkStatus(status, raw); err != nil {
		return "", err
	}
	var out struct {
		InvoiceNumber string `json:"invoiceNumber"`
		Data          struct {
			InvoiceNumber string `json:"invoiceNumber"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", domain.Transient("respuesta inesperada de la API de facturación", fmt.Errorf("billingapi: decodificar número: %w", err))
	}
	n := strings.TrimSpace(out.InvoiceNumber)
	if n == "" {
		n = strings.TrimSpace(out.Data.InvoiceNumber)
	}
	if n == "" {
		return "", domain.ServerRejection("la API no devolvió el número de factura")
	}
	return n, nil
}

// UpdateBatchQuantities descuenta del inventario las cantidades vendidas.
// Si el servidor responde que el inventario ya estaba actualizado, no es un error.
func (c *Client) UpdateBatchQuantities(ctx context.Context, sess entity.Session, kind entity.BillKind, lines []entity.FinalizedLine) error {
	if kind.StockUpdatePath == "" || len(lines) == 0 {
		return nil
	}
	body, err := json.Marshal(newStockUpdateWire(sess.Email, lines))
	if err != nil {
		return fmt.Errorf("billingapi: serializar inventario: %w", err)
	}
	status, raw, err := c.do(ctx, sess, http.MethodPost, kind.StockUpdatePath, body)
	if err != nil {
		return err
	}
	if err := checkStatus(status, raw); err != nil {
		if domain.KindOf(err) == domain.KindServerRejection && strings.Contains(strings.ToLower(err.Error()), "already updated") {
			c.log.Info().Str("bill_kind", string(kind.Code)).Msg("inventario ya actualizado")
			return nil
		}
		return err
	}
	c.log.Debug().Str("bill_kind", string(kind.Code)).Int("lines", len(lines)).Msg("inventario actualizado")
	return nil
}

// ── Transporte ────────────────────────────────────────────────────────────────

func (c *Client) do(ctx context.Context, sess entity.Session, method, path string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("billingapi: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, domain.Transient("la petición fue cancelada o excedió el tiempo de espera", ctx.Err())
		}
		var ne interface{ Timeout() bool }
		if errors.As(err, &ne) && ne.Timeout() {
			return 0, nil, domain.Transient("la API de facturación no respondió a tiempo", err)
		}
		return 0, nil, domain.Transient("no se pudo contactar la API de facturación", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, domain.Transient("respuesta incompleta de la API de facturación", err)
	}
	c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).Msg("billing api")
	return resp.StatusCode, raw, nil
}

// checkStatus traduce el código HTTP y el campo success a la taxonomía del flujo.
// 401/403 y 5xx son transitorios; el resto de 4xx y success:false son rechazos con el mensaje literal.
func checkStatus(status int, raw []byte) error {
	var env envelope
	_ = json.Unmarshal(raw, &env)
	msg := strings.TrimSpace(env.Message)
	if msg == "" {
		msg = strings.TrimSpace(env.Error)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.Transient("sesión no autorizada en la API de facturación", fmt.Errorf("billingapi: HTTP %d: %s", status, msg))
	case status >= 500:
		return domain.Transient("la API de facturación no está disponible", fmt.Errorf("billingapi: HTTP %d: %s", status, msg))
	case status >= 400:
		if msg == "" {
			msg = fmt.Sprintf("la API rechazó la petición (HTTP %d)", status)
		}
		return domain.ServerRejection(msg)
	}
	if env.Success != nil && !*env.Success {
		if msg == "" {
			msg = "la API rechazó la petición"
		}
		return domain.ServerRejection(msg)
	}
	return nil
}

// unwrap devuelve data si la respuesta viene envuelta, o el cuerpo completo si no.
func unwrap(raw []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] != '{' {
		return trimmed, nil
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, domain.Transient("respuesta inesperada de la API de facturación", fmt.Errorf("billingapi: decodificar sobre: %w", err))
	}
	if env.Success != nil || env.Data != nil {
		return env.Data, nil
	}
	return trimmed, nil
}
