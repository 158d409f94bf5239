package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const usuarioColunas = `id, cpf, name, email, phone, email_login, senha_hash, is_admin, status, created_at`

// Queries concentra o acesso à tabela usuarios.
type Queries struct {
	pool *pgxpool.Pool
}

// New cria o repositório sobre o pool.
func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

// InsertUsuarioParams agrupa os campos de criação de cadastro.
type InsertUsuarioParams struct {
	CPF        string
	Nome       string
	Email      string
	Telefone   string
	EmailLogin string
	SenhaHash  string
	IsAdmin    bool
	Status     StatusUsuario
}

// InsertUsuario cria o cadastro e devolve a linha persistida.
// id e created_at são atribuídos pelo servidor e imutáveis.
func (q *Queries) InsertUsuario(ctx context.Context, arg InsertUsuarioParams) (Usuario, error) {
	const query = `
        INSERT INTO usuarios (cpf, name, email, phone, email_login, senha_hash, is_admin, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + usuarioColunas

	row := q.pool.QueryRow(ctx, query,
		arg.CPF, arg.Nome, arg.Email, arg.Telefone,
		arg.EmailLogin, arg.SenhaHash, arg.IsAdmin, arg.Status,
	)

	u, err := scanUsuario(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Usuario{}, ErrDuplicado
		}
		return Usuario{}, err
	}
	return u, nil
}

// GetUsuarioByEmailLogin busca pelo e-mail sintético de autenticação.
func (q *Queries) GetUsuarioByEmailLogin(ctx context.Context, emailLogin string) (Usuario, error) {
	const query = `SELECT ` + usuarioColunas + ` FROM usuarios WHERE email_login = $1`
	return q.getUsuario(ctx, query, emailLogin)
}

// GetUsuarioByID busca pelo identificador atribuído pelo servidor.
func (q *Queries) GetUsuarioByID(ctx context.Context, id uuid.UUID) (Usuario, error) {
	const query = `SELECT ` + usuarioColunas + ` FROM usuarios WHERE id = $1`
	return q.getUsuario(ctx, query, id)
}

// ListUsuariosPendentes devolve apenas cadastros aguardando aprovação.
func (q *Queries) ListUsuariosPendentes(ctx context.Context) ([]Usuario, error) {
	const query = `SELECT ` + usuarioColunas + ` FROM usuarios WHERE status = 'pending' ORDER BY created_at DESC`
	return q.listUsuarios(ctx, query)
}

// ListUsuariosNaoAdmin devolve todos os cadastros sem a flag de administrador.
func (q *Queries) ListUsuariosNaoAdmin(ctx context.Context) ([]Usuario, error) {
	const query = `SELECT ` + usuarioColunas + ` FROM usuarios WHERE NOT is_admin ORDER BY created_at DESC`
	return q.listUsuarios(ctx, query)
}

// UpdateStatusUsuario grava o novo status e devolve a linha atualizada.
// A legalidade da transição é responsabilidade do serviço chamador.
func (q *Queries) UpdateStatusUsuario(ctx context.Context, id uuid.UUID, status StatusUsuario) (Usuario, error) {
	const query = `
        UPDATE usuarios SET status = $2
        WHERE id = $1
        RETURNING ` + usuarioColunas

	row := q.pool.QueryRow(ctx, query, id, status)
	u, err := scanUsuario(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Usuario{}, ErrNotFound
		}
		return Usuario{}, err
	}
	return u, nil
}

func (q *Queries) getUsuario(ctx context.Context, query string, arg any) (Usuario, error) {
	row := q.pool.QueryRow(ctx, query, arg)
	u, err := scanUsuario(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Usuario{}, ErrNotFound
		}
		return Usuario{}, err
	}
	return u, nil
}

func (q *Queries) listUsuarios(ctx context.Context, query string) ([]Usuario, error) {
	rows, err := q.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usuarios []Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return usuarios, nil
}

func scanUsuario(row pgx.Row) (Usuario, error) {
	var u Usuario
	err := row.Scan(
		&u.ID, &u.CPF, &u.Nome, &u.Email, &u.Telefone,
		&u.EmailLogin, &u.SenhaHash, &u.IsAdmin, &u.Status, &u.CriadoEm,
	)
	return u, err
}
