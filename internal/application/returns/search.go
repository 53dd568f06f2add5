package returns

import (
	"context"
	"sync"
	"time"
)

// Search coordina las cargas del catálogo con semántica "la última petición gana":
// cada edición invalida la carga pendiente o en curso y solo se aplica el resultado
// cuyo token sigue vigente.
type Search struct {
	mu     sync.Mutex
	quiet  time.Duration
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

// NewSearch construye el coordinador con el periodo de silencio del debounce.
func NewSearch(quiet time.Duration) *Search {
	return &Search{quiet: quiet}
}

// invalidateLocked sube la generación, detiene el temporizador y cancela la carga en curso.
func (s *Search) invalidateLocked() uint64 {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return s.gen
}

// Begin inicia una carga inmediata. El llamador debe invocar cancel al terminar.
func (s *Search) Begin(parent context.Context) (token uint64, ctx context.Context, cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token = s.invalidateLocked()
	ctx, cancel = context.WithCancel(parent)
	s.cancel = cancel
	return token, ctx, cancel
}

// Schedule programa fn tras el periodo de silencio. Una llamada posterior a Schedule,
// Begin o Cancel la descarta (si aún no empezó) o cancela su contexto (si ya empezó).
func (s *Search) Schedule(fn func(ctx context.Context, token uint64)) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := s.invalidateLocked()
	s.timer = time.AfterFunc(s.quiet, func() {
		s.mu.Lock()
		if s.gen != token {
			s.mu.Unlock()
			return
		}
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		s.timer = nil
		s.mu.Unlock()

		defer cancel()
		fn(ctx, token)
	})
	return token
}

// Current indica si token corresponde a la última petición.
func (s *Search) Current(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == token
}

// Cancel descarta cualquier carga pendiente o en curso.
func (s *Search) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidateLocked()
}
