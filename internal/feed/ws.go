package feed

import (
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// WSAssinante transmite eventos por uma conexão WebSocket.
type WSAssinante struct {
	conn *websocket.Conn
	log  zerolog.Logger
}

// NewWSAssinante cria o assinante sobre a conexão aceita.
func NewWSAssinante(conn *websocket.Conn, log zerolog.Logger) *WSAssinante {
	return &WSAssinante{conn: conn, log: log}
}

// Send escreve uma mensagem de texto na conexão.
func (w *WSAssinante) Send(payload []byte) error {
	if err := w.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		w.log.Warn().Err(err).Msg("ws: falha ao enviar evento")
		_ = w.conn.Close()
		return err
	}
	return nil
}

// Close encerra a conexão.
func (w *WSAssinante) Close() {
	_ = w.conn.Close()
}
