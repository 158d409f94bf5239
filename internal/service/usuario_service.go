package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/temmaissaude/cotador/internal/metrics"
	"github.com/temmaissaude/cotador/internal/repo"
)

// Filtros aceitos na listagem do painel administrativo.
const (
	FiltroPendentes = "pendentes"
	FiltroTodos     = "todos"
)

var (
	// ErrFiltroInvalido indica filtro de listagem desconhecido.
	ErrFiltroInvalido = errors.New("filtro inválido")
	// ErrStatusInvalido indica status fora do vocabulário de transição.
	ErrStatusInvalido = errors.New("status inválido")
	// ErrTransicaoInvalida indica transição não permitida pela tabela de
	// legalidade: ações ilegais falham, nunca viram no-op silencioso.
	ErrTransicaoInvalida = errors.New("transição de status não permitida")
)

type usuarioRepository interface {
	GetUsuarioByID(ctx context.Context, id uuid.UUID) (repo.Usuario, error)
	ListUsuariosPendentes(ctx context.Context) ([]repo.Usuario, error)
	ListUsuariosNaoAdmin(ctx context.Context) ([]repo.Usuario, error)
	UpdateStatusUsuario(ctx context.Context, id uuid.UUID, status repo.StatusUsuario) (repo.Usuario, error)
}

// UsuarioService aplica a máquina de aprovação do painel administrativo.
type UsuarioService struct {
	repo     usuarioRepository
	metricas *metrics.Metrics
}

// NewUsuarioService cria novo serviço.
func NewUsuarioService(r usuarioRepository, metricas *metrics.Metrics) *UsuarioService {
	return &UsuarioService{repo: r, metricas: metricas}
}

// Listar devolve os cadastros conforme o filtro do painel: "pendentes"
// (default) traz só quem aguarda aprovação; "todos" traz todos os
// não-administradores.
func (s *UsuarioService) Listar(ctx context.Context, filtro string) ([]repo.Usuario, error) {
	switch filtro {
	case "", FiltroPendentes:
		return s.repo.ListUsuariosPendentes(ctx)
	case FiltroTodos:
		return s.repo.ListUsuariosNaoAdmin(ctx)
	}
	return nil, ErrFiltroInvalido
}

// AtualizarStatus aplica uma transição de aprovação ao cadastro identificado
// pelo id da própria linha. Entre administradores concorrentes vale a última
// escrita; o feed reflete o estado final para todos.
func (s *UsuarioService) AtualizarStatus(ctx context.Context, id uuid.UUID, novo repo.StatusUsuario) (repo.Usuario, error) {
	if !novo.Valido() || novo == repo.StatusPendente {
		return repo.Usuario{}, ErrStatusInvalido
	}

	atual, err := s.repo.GetUsuarioByID(ctx, id)
	if err != nil {
		return repo.Usuario{}, err
	}

	if !atual.Status.PodeTransicionar(novo) {
		return repo.Usuario{}, ErrTransicaoInvalida
	}

	atualizado, err := s.repo.UpdateStatusUsuario(ctx, id, novo)
	if err != nil {
		return repo.Usuario{}, err
	}

	s.metricas.TransicoesStatus.WithLabelValues(string(atual.Status), string(novo)).Inc()
	log.Info().
		Str("usuario_id", id.String()).
		Str("de", string(atual.Status)).
		Str("para", string(novo)).
		Msg("status do cadastro atualizado")

	return atualizado, nil
}
