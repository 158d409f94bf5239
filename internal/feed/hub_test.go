package feed

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temmaissaude/cotador/internal/repo"
)

type assinanteFake struct {
	recebidos [][]byte
	falhar    bool
	fechado   bool
}

func (a *assinanteFake) Send(payload []byte) error {
	if a.falhar {
		return errors.New("conexão perdida")
	}
	a.recebidos = append(a.recebidos, payload)
	return nil
}

func (a *assinanteFake) Close() { a.fechado = true }

func TestHubEntregaEventosParaAssinantes(t *testing.T) {
	hub := NewHub()
	a := &assinanteFake{}
	b := &assinanteFake{}
	hub.Register(a)
	hub.Register(b)

	ev := Evento{Op: OpUpdate, Usuario: repo.Usuario{ID: uuid.New(), Status: repo.StatusAprovado}}
	hub.Publish(ev)

	require.Len(t, a.recebidos, 1)
	require.Len(t, b.recebidos, 1)

	var decodificado Evento
	require.NoError(t, json.Unmarshal(a.recebidos[0], &decodificado))
	assert.Equal(t, OpUpdate, decodificado.Op)
	assert.Equal(t, ev.Usuario.ID, decodificado.Usuario.ID)
	assert.Equal(t, repo.StatusAprovado, decodificado.Usuario.Status)
}

func TestHubRemoveAssinanteAposUnregister(t *testing.T) {
	hub := NewHub()
	a := &assinanteFake{}
	hub.Register(a)
	hub.Unregister(a)

	hub.Broadcast([]byte("x"))
	assert.Empty(t, a.recebidos)
	assert.Zero(t, hub.Len())
}

func TestHubDescartaAssinanteComFalha(t *testing.T) {
	hub := NewHub()
	quebrado := &assinanteFake{falhar: true}
	saudavel := &assinanteFake{}
	hub.Register(quebrado)
	hub.Register(saudavel)

	hub.Broadcast([]byte("x"))

	assert.True(t, quebrado.fechado)
	assert.Equal(t, 1, hub.Len())
	assert.Len(t, saudavel.recebidos, 1)
}
