package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temmaissaude/cotador/internal/metrics"
	"github.com/temmaissaude/cotador/internal/repo"
)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]repo.Usuario
}

func newStubUsuarioRepo(usuarios ...repo.Usuario) *stubUsuarioRepo {
	s := &stubUsuarioRepo{usuarios: make(map[uuid.UUID]repo.Usuario)}
	for _, u := range usuarios {
		s.usuarios[u.ID] = u
	}
	return s
}

func (s *stubUsuarioRepo) GetUsuarioByID(ctx context.Context, id uuid.UUID) (repo.Usuario, error) {
	u, ok := s.usuarios[id]
	if !ok {
		return repo.Usuario{}, repo.ErrNotFound
	}
	return u, nil
}

func (s *stubUsuarioRepo) ListUsuariosPendentes(ctx context.Context) ([]repo.Usuario, error) {
	var lista []repo.Usuario
	for _, u := range s.usuarios {
		if u.Status == repo.StatusPendente {
			lista = append(lista, u)
		}
	}
	return lista, nil
}

func (s *stubUsuarioRepo) ListUsuariosNaoAdmin(ctx context.Context) ([]repo.Usuario, error) {
	var lista []repo.Usuario
	for _, u := range s.usuarios {
		if !u.IsAdmin {
			lista = append(lista, u)
		}
	}
	return lista, nil
}

func (s *stubUsuarioRepo) UpdateStatusUsuario(ctx context.Context, id uuid.UUID, status repo.StatusUsuario) (repo.Usuario, error) {
	u, ok := s.usuarios[id]
	if !ok {
		return repo.Usuario{}, repo.ErrNotFound
	}
	u.Status = status
	s.usuarios[id] = u
	return u, nil
}

func usuarioComStatus(status repo.StatusUsuario) repo.Usuario {
	return repo.Usuario{
		ID:       uuid.New(),
		CPF:      "11122233344",
		Nome:     "Corretor Teste",
		Status:   status,
		CriadoEm: time.Now().UTC(),
	}
}

func newUsuarioService(r usuarioRepository) *UsuarioService {
	return NewUsuarioService(r, metrics.New(prometheus.NewRegistry()))
}

func TestTabelaDeTransicoes(t *testing.T) {
	casos := []struct {
		de      repo.StatusUsuario
		para    repo.StatusUsuario
		permite bool
	}{
		{repo.StatusPendente, repo.StatusAprovado, true},
		{repo.StatusPendente, repo.StatusRecusado, true},
		{repo.StatusPendente, repo.StatusPendente, false},
		{repo.StatusAprovado, repo.StatusRecusado, true},
		{repo.StatusAprovado, repo.StatusAprovado, false},
		{repo.StatusAprovado, repo.StatusPendente, false},
		{repo.StatusRecusado, repo.StatusAprovado, true},
		{repo.StatusRecusado, repo.StatusRecusado, false},
		{repo.StatusRecusado, repo.StatusPendente, false},
	}

	for _, tc := range casos {
		t.Run(string(tc.de)+"->"+string(tc.para), func(t *testing.T) {
			usuario := usuarioComStatus(tc.de)
			svc := newUsuarioService(newStubUsuarioRepo(usuario))

			atualizado, err := svc.AtualizarStatus(context.Background(), usuario.ID, tc.para)
			if tc.permite {
				require.NoError(t, err)
				assert.Equal(t, tc.para, atualizado.Status)
				return
			}

			require.Error(t, err)
			if tc.para == repo.StatusPendente {
				assert.ErrorIs(t, err, ErrStatusInvalido)
			} else {
				assert.ErrorIs(t, err, ErrTransicaoInvalida)
			}
		})
	}
}

func TestAtualizarStatusRejeitaVocabularioDesconhecido(t *testing.T) {
	usuario := usuarioComStatus(repo.StatusPendente)
	svc := newUsuarioService(newStubUsuarioRepo(usuario))

	_, err := svc.AtualizarStatus(context.Background(), usuario.ID, repo.StatusUsuario("banned"))
	assert.ErrorIs(t, err, ErrStatusInvalido)
}

func TestAtualizarStatusUsuarioInexistente(t *testing.T) {
	svc := newUsuarioService(newStubUsuarioRepo())

	_, err := svc.AtualizarStatus(context.Background(), uuid.New(), repo.StatusAprovado)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestListarFiltros(t *testing.T) {
	pendente := usuarioComStatus(repo.StatusPendente)
	aprovado := usuarioComStatus(repo.StatusAprovado)
	admin := usuarioComStatus(repo.StatusAprovado)
	admin.IsAdmin = true

	svc := newUsuarioService(newStubUsuarioRepo(pendente, aprovado, admin))
	ctx := context.Background()

	pendentes, err := svc.Listar(ctx, FiltroPendentes)
	require.NoError(t, err)
	require.Len(t, pendentes, 1)
	assert.Equal(t, pendente.ID, pendentes[0].ID)

	// filtro vazio assume pendentes
	porDefault, err := svc.Listar(ctx, "")
	require.NoError(t, err)
	assert.Len(t, porDefault, 1)

	// "todos" exclui administradores
	todos, err := svc.Listar(ctx, FiltroTodos)
	require.NoError(t, err)
	assert.Len(t, todos, 2)

	_, err = svc.Listar(ctx, "aprovados")
	assert.ErrorIs(t, err, ErrFiltroInvalido)
}

func TestAprovacaoRemoveDoFiltroPendentes(t *testing.T) {
	usuario := usuarioComStatus(repo.StatusPendente)
	repoStub := newStubUsuarioRepo(usuario)
	svc := newUsuarioService(repoStub)
	ctx := context.Background()

	_, err := svc.AtualizarStatus(ctx, usuario.ID, repo.StatusAprovado)
	require.NoError(t, err)

	pendentes, err := svc.Listar(ctx, FiltroPendentes)
	require.NoError(t, err)
	assert.Empty(t, pendentes)
}
