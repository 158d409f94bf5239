package feed

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Canal do pg_notify alimentado pelo trigger da tabela usuarios.
const canalUsuarios = "usuarios_eventos"

// Listener faz a ponte entre o NOTIFY do Postgres e o hub em memória,
// para que instâncias distintas da API enxerguem as mesmas mudanças.
type Listener struct {
	pool *pgxpool.Pool
	hub  *Hub
	log  zerolog.Logger
}

// NewListener cria o listener sobre o pool e o hub.
func NewListener(pool *pgxpool.Pool, hub *Hub, log zerolog.Logger) *Listener {
	return &Listener{pool: pool, hub: hub, log: log}
}

// Run mantém uma conexão dedicada em LISTEN até o contexto encerrar.
// Em caso de queda, reconecta com espera curta.
func (l *Listener) Run(ctx context.Context) {
	for {
		if err := l.escutar(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			l.log.Warn().Err(err).Msg("feed: conexão de escuta perdida, reconectando")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

func (l *Listener) escutar(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+canalUsuarios); err != nil {
		return err
	}

	l.log.Info().Str("canal", canalUsuarios).Msg("feed: escutando mudanças da tabela usuarios")

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		l.hub.Broadcast([]byte(notification.Payload))
	}
}
