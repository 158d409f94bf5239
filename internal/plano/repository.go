package plano

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const planoColunas = `id, name, operator, accommodation, coparticipation, logo_color,
        prices, hospitals, description, categories, coverage, grace_periods, copay_fees`

// Repository fornece acesso somente leitura ao catálogo de planos.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository cria o repositório sobre o pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List devolve o catálogo completo ordenado por operadora e nome.
func (r *Repository) List(ctx context.Context) ([]Plano, error) {
	const query = `SELECT ` + planoColunas + ` FROM planos ORDER BY operator, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var planos []Plano
	for rows.Next() {
		p, err := scanPlano(rows)
		if err != nil {
			return nil, err
		}
		planos = append(planos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return planos, nil
}

func scanPlano(row pgx.Row) (Plano, error) {
	var (
		p          Plano
		precos     map[string]float64
		categorias []string
	)
	err := row.Scan(
		&p.ID, &p.Nome, &p.Operadora, &p.Acomodacao, &p.Coparticipacao, &p.LogoColor,
		&precos, &p.Hospitais, &p.Descricao, &categorias, &p.Cobertura, &p.Carencias, &p.TaxasCopay,
	)
	if err != nil {
		return Plano{}, err
	}

	p.Precos = make(map[FaixaEtaria]float64, len(precos))
	for faixa, preco := range precos {
		p.Precos[FaixaEtaria(faixa)] = preco
	}
	p.Categorias = make([]CategoriaCotacao, 0, len(categorias))
	for _, c := range categorias {
		p.Categorias = append(p.Categorias, CategoriaCotacao(c))
	}
	return p, nil
}
