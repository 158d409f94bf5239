// Package feed publica eventos de mudança da tabela usuarios para painéis
// administrativos conectados. Cada evento carrega a linha alterada completa,
// para que o cliente aplique o delta na coleção local sem refazer a listagem.
package feed

import (
	"encoding/json"
	"sync"

	"github.com/temmaissaude/cotador/internal/repo"
)

// Op identifica a operação que originou o evento.
type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// Evento é uma mudança na tabela usuarios, chaveada pelo id da linha.
type Evento struct {
	Op      Op           `json:"op"`
	Usuario repo.Usuario `json:"usuario"`
}

// Assinante abstrai um cliente de streaming (SSE ou WebSocket).
type Assinante interface {
	Send([]byte) error
	Close()
}

// Hub mantém o conjunto de assinantes do feed de usuários.
type Hub struct {
	mu         sync.RWMutex
	assinantes map[Assinante]struct{}
}

// NewHub cria um hub vazio.
func NewHub() *Hub {
	return &Hub{assinantes: make(map[Assinante]struct{})}
}

// Register adiciona um assinante ao feed.
func (h *Hub) Register(a Assinante) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.assinantes[a] = struct{}{}
}

// Unregister remove o assinante. Liberação determinística: o chamador deve
// invocar no teardown da conexão.
func (h *Hub) Unregister(a Assinante) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.assinantes, a)
}

// Broadcast entrega o payload a todos os assinantes; quem falhar é removido.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for a := range h.assinantes {
		if err := a.Send(payload); err != nil {
			a.Close()
			delete(h.assinantes, a)
		}
	}
}

// Publish serializa o evento e o difunde.
func (h *Hub) Publish(ev Evento) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	h.Broadcast(payload)
}

// Len devolve o número de assinantes conectados.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.assinantes)
}
