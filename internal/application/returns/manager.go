package returns

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pharmabill/internal/domain"
	"github.com/jhoicas/pharmabill/internal/domain/entity"
	"github.com/jhoicas/pharmabill/pkg/logger"
)

// Manager registro en memoria de los flujos abiertos, uno por id.
// Cada flujo pertenece a la cuenta que lo creó.
type Manager struct {
	mu      sync.RWMutex
	engines map[string]*Engine
	deps    Deps
	opts    Options
	log     *logger.Logger
}

// NewManager construye el registro; deps y opts se pasan a cada flujo nuevo.
func NewManager(deps Deps, opts Options) *Manager {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		engines: make(map[string]*Engine),
		deps:    deps,
		opts:    opts,
		log:     log.Named("workflows"),
	}
}

// Create abre un flujo nuevo del tipo indicado.
func (m *Manager) Create(code entity.BillKindCode, sess entity.Session) (string, *Engine, error) {
	kind, ok := entity.LookupBillKind(code)
	if !ok {
		return "", nil, domain.Validation(domain.ErrUnknownBillKind, string(code))
	}
	if sess.Email == "" {
		return "", nil, domain.Validation(domain.ErrMissingEmail, "")
	}
	id := uuid.New().String()
	e := NewEngine(kind, sess, m.deps, m.opts)

	m.mu.Lock()
	m.engines[id] = e
	m.mu.Unlock()

	m.log.Debug().Str("workflow_id", id).Str("bill_kind", string(code)).Str("email", sess.Email).Msg("flujo creado")
	return id, e, nil
}

// Get devuelve el flujo si pertenece a la sesión y refresca su token.
// Un flujo ajeno se reporta como inexistente.
func (m *Manager) Get(id string, sess entity.Session) (*Engine, error) {
	m.mu.RLock()
	e, ok := m.engines[id]
	m.mu.RUnlock()
	if !ok || !ownedBy(e, sess) {
		return nil, domain.ErrNotFound
	}
	e.UpdateSession(sess)
	return e, nil
}

// Discard cierra y elimina el flujo.
func (m *Manager) Discard(id string, sess entity.Session) error {
	m.mu.Lock()
	e, ok := m.engines[id]
	if !ok || !ownedBy(e, sess) {
		m.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(m.engines, id)
	m.mu.Unlock()
	e.Close()
	return nil
}

// Sweep elimina los flujos inactivos desde hace más de maxIdle que no estén enviando.
// Devuelve cuántos eliminó.
func (m *Manager) Sweep(now time.Time, maxIdle time.Duration) int {
	m.mu.Lock()
	var stale []*Engine
	for id, e := range m.engines {
		if now.Sub(e.IdleSince()) <= maxIdle || e.Snapshot().Submitting {
			continue
		}
		delete(m.engines, id)
		stale = append(stale, e)
	}
	m.mu.Unlock()
	for _, e := range stale {
		e.Close()
	}
	if len(stale) > 0 {
		m.log.Info().Int("count", len(stale)).Msg("flujos inactivos eliminados")
	}
	return len(stale)
}

// Len número de flujos abiertos.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.engines)
}

func ownedBy(e *Engine, sess entity.Session) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Email == sess.Email
}
