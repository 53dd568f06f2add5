// Package notify implementa el canal en tiempo real de facturas creadas.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/pharmabill/internal/application/dashboard"
	"github.com/jhoicas/pharmabill/internal/application/returns"
	"github.com/jhoicas/pharmabill/internal/domain/entity"
	"github.com/jhoicas/pharmabill/pkg/config"
	"github.com/jhoicas/pharmabill/pkg/logger"
)

var (
	_ returns.EventPublisher = (*RedisBus)(nil)
	_ dashboard.Subscriber   = (*RedisBus)(nil)
)

// DefaultChannel canal Pub/Sub de eventos de facturación.
const DefaultChannel = "pharmabill:bill-events"

// RedisBus publica y recibe BillEvent por Redis Pub/Sub.
type RedisBus struct {
	client  *redis.Client
	channel string
	log     *logger.Logger
}

// NewRedisBus conecta con Redis y verifica la conexión.
func NewRedisBus(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*RedisBus, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("notify: conectar Redis: %w", err)
	}
	return NewRedisBusWithClient(client, DefaultChannel, log), nil
}

// NewRedisBusWithClient usa un cliente existente; el llamador conserva su propiedad.
func NewRedisBusWithClient(client *redis.Client, channel string, log *logger.Logger) *RedisBus {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisBus{client: client, channel: channel, log: log.Named("notify")}
}

// Publish serializa el evento y lo publica en el canal.
func (b *RedisBus) Publish(ctx context.Context, ev entity.BillEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("notify: serializar evento: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		return fmt.Errorf("notify: publicar evento: %w", err)
	}
	b.log.Debug().Str("event", ev.Type).Str("number", ev.Number).Msg("evento publicado")
	return nil
}

// Subscribe se suscribe al canal y entrega los eventos decodificados hasta que ctx termine.
func (b *RedisBus) Subscribe(ctx context.Context) (<-chan entity.BillEvent, error) {
	pubsub := b.client.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("notify: suscribir canal: %w", err)
	}
	b.log.Info().Str("channel", b.channel).Msg("suscrito a eventos de facturación")

	out := make(chan entity.BillEvent, 64)
	go func() {
		defer pubsub.Close()
		b.forward(ctx, pubsub.Channel(), out)
	}()
	return out, nil
}

// forward decodifica los mensajes hacia out hasta que ctx termine o msgs se cierre.
// Cierra out al salir; un mensaje ilegible se descarta.
func (b *RedisBus) forward(ctx context.Context, msgs <-chan *redis.Message, out chan<- entity.BillEvent) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				b.log.Warn().Msg("canal de eventos cerrado")
				return
			}
			var ev entity.BillEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.log.Error().Err(err).Str("payload", msg.Payload).Msg("evento ilegible")
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Close cierra el cliente.
func (b *RedisBus) Close() error { return b.client.Close() }
