package repo

import (
	"time"

	"github.com/google/uuid"
)

// StatusUsuario é o estado do cadastro no ciclo de aprovação.
// Os valores persistidos seguem o contrato da tabela usuarios.
type StatusUsuario string

const (
	StatusPendente StatusUsuario = "pending"
	StatusAprovado StatusUsuario = "approved"
	StatusRecusado StatusUsuario = "rejected"
)

// Valido informa se o valor pertence ao vocabulário do ciclo de vida.
func (s StatusUsuario) Valido() bool {
	switch s {
	case StatusPendente, StatusAprovado, StatusRecusado:
		return true
	}
	return false
}

// PodeTransicionar aplica a tabela de legalidade do painel administrativo:
// pendente aceita aprovação ou recusa; aprovado só pode ser revogado;
// recusado só pode ser reativado. Nenhum estado volta a pendente.
func (s StatusUsuario) PodeTransicionar(para StatusUsuario) bool {
	switch s {
	case StatusPendente:
		return para == StatusAprovado || para == StatusRecusado
	case StatusAprovado:
		return para == StatusRecusado
	case StatusRecusado:
		return para == StatusAprovado
	}
	return false
}

// Usuario representa um corretor cadastrado no cotador.
// EmailLogin é o e-mail sintético derivado do CPF, usado só na autenticação.
type Usuario struct {
	ID         uuid.UUID     `json:"id"`
	CPF        string        `json:"cpf"`
	Nome       string        `json:"name"`
	Email      string        `json:"email"`
	Telefone   string        `json:"phone"`
	EmailLogin string        `json:"-"`
	SenhaHash  string        `json:"-"`
	IsAdmin    bool          `json:"isAdmin"`
	Status     StatusUsuario `json:"status"`
	CriadoEm   time.Time     `json:"createdAt"`
}
