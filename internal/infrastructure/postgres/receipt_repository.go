package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pharmabill/internal/application/returns"
	"github.com/jhoicas/pharmabill/internal/domain"
	"github.com/jhoicas/pharmabill/internal/domain/entity"
)

var _ returns.ReceiptArchive = (*ReceiptRepo)(nil)

// ReceiptsSchema crea la tabla del archivo si no existe.
const ReceiptsSchema = `
CREATE TABLE IF NOT EXISTS receipts (
	id          UUID PRIMARY KEY,
	email       TEXT        NOT NULL,
	kind        TEXT        NOT NULL,
	number      TEXT        NOT NULL,
	party_name  TEXT        NOT NULL DEFAULT '',
	net_amount  NUMERIC(14,2) NOT NULL DEFAULT 0,
	filename    TEXT        NOT NULL,
	content     BYTEA       NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (email, kind, number)
);
CREATE INDEX IF NOT EXISTS receipts_email_created_idx ON receipts (email, created_at DESC);`

// ReceiptRepo archivo de recibos en PostgreSQL (usable con pool o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// EnsureSchema aplica ReceiptsSchema.
func (r *ReceiptRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, ReceiptsSchema); err != nil {
		return fmt.Errorf("ensure receipts schema: %w", err)
	}
	return nil
}

// Save persiste el recibo. Un mismo (email, tipo, número) se sobrescribe.
func (r *ReceiptRepo) Save(ctx context.Context, rc *entity.ArchivedReceipt) error {
	if rc.ID == "" {
		rc.ID = uuid.New().String()
	}
	if rc.CreatedAt.IsZero() {
		rc.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO receipts (id, email, kind, number, party_name, net_amount, filename, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (email, kind, number) DO UPDATE
		SET party_name = EXCLUDED.party_name, net_amount = EXCLUDED.net_amount,
		    filename = EXCLUDED.filename, content = EXCLUDED.content, created_at = EXCLUDED.created_at`
	_, err := r.q.Exec(ctx, query,
		rc.ID, rc.Email, string(rc.Kind), rc.Number, rc.PartyName, rc.NetAmount.Round(2),
		rc.Filename, rc.Content, rc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// Get obtiene un recibo con su contenido. domain.ErrNotFound si no existe.
func (r *ReceiptRepo) Get(ctx context.Context, email string, kind entity.BillKindCode, number string) (*entity.ArchivedReceipt, error) {
	query := `
		SELECT id, email, kind, number, party_name, net_amount, filename, content, created_at
		FROM receipts WHERE email = $1 AND kind = $2 AND number = $3`
	var rc entity.ArchivedReceipt
	var k string
	err := r.q.QueryRow(ctx, query, email, string(kind), number).Scan(
		&rc.ID, &rc.Email, &k, &rc.Number, &rc.PartyName, &rc.NetAmount, &rc.Filename, &rc.Content, &rc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	rc.Kind = entity.BillKindCode(k)
	return &rc, nil
}

// List lista los recibos de la cuenta, más recientes primero, sin el contenido.
func (r *ReceiptRepo) List(ctx context.Context, email string, limit, offset int) ([]*entity.ArchivedReceipt, error) {
	query := `
		SELECT id, email, kind, number, party_name, net_amount, filename, created_at
		FROM receipts WHERE email = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, email, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.ArchivedReceipt
	for rows.Next() {
		var rc entity.ArchivedReceipt
		var k string
		if err := rows.Scan(&rc.ID, &rc.Email, &k, &rc.Number, &rc.PartyName, &rc.NetAmount, &rc.Filename, &rc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		rc.Kind = entity.BillKindCode(k)
		list = append(list, &rc)
	}
	return list, rows.Err()
}
