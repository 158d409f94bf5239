package feed

import (
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
)

// SSEAssinante transmite eventos como Server-Sent Events.
type SSEAssinante struct {
	mu      sync.Mutex
	writer  io.Writer
	flusher http.Flusher
	log     zerolog.Logger
	fechado bool
}

// NewSSEAssinante cria o assinante sobre o ResponseWriter da conexão.
func NewSSEAssinante(writer io.Writer, flusher http.Flusher, log zerolog.Logger) *SSEAssinante {
	return &SSEAssinante{writer: writer, flusher: flusher, log: log}
}

// Send emite um frame de dados no stream.
func (s *SSEAssinante) Send(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fechado {
		return io.EOF
	}
	if _, err := fmt.Fprintf(s.writer, "data: %s\n\n", payload); err != nil {
		s.fechado = true
		s.log.Warn().Err(err).Msg("sse: falha ao enviar evento")
		return err
	}
	s.flusher.Flush()
	return nil
}

// Heartbeat emite um comentário para manter a conexão viva.
func (s *SSEAssinante) Heartbeat() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fechado {
		return io.EOF
	}
	if _, err := fmt.Fprint(s.writer, ": ping\n\n"); err != nil {
		s.fechado = true
		return err
	}
	s.flusher.Flush()
	return nil
}

// Close marca o stream como encerrado.
func (s *SSEAssinante) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fechado = true
}
