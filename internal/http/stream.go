package http

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/temmaissaude/cotador/internal/feed"
)

const heartbeatIntervalo = 30 * time.Second

// FeedSSE assina o feed de mudanças da tabela usuarios via Server-Sent
// Events. A assinatura dura a vida da conexão e é liberada no teardown.
func (h *Handler) FeedSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "streaming não suportado", nil)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	assinante := feed.NewSSEAssinante(w, flusher, log.With().Str("component", "feed_sse").Logger())
	h.hub.Register(assinante)
	h.metricas.AssinantesFeed.Inc()
	defer func() {
		h.hub.Unregister(assinante)
		h.metricas.AssinantesFeed.Dec()
		assinante.Close()
	}()

	ticker := time.NewTicker(heartbeatIntervalo)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := assinante.Heartbeat(); err != nil {
				return
			}
		}
	}
}

// FeedWS assina o feed de mudanças via WebSocket.
func (h *Handler) FeedWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("feed: upgrade websocket falhou")
		return
	}

	assinante := feed.NewWSAssinante(conn, log.With().Str("component", "feed_ws").Logger())
	h.hub.Register(assinante)
	h.metricas.AssinantesFeed.Inc()
	defer func() {
		h.hub.Unregister(assinante)
		h.metricas.AssinantesFeed.Dec()
		assinante.Close()
	}()

	// o painel só consome eventos; o loop de leitura detecta o encerramento
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
