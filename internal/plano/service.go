package plano

import (
	"context"
	"errors"
)

var (
	// ErrCategoriaInvalida indica categoria fora do vocabulário de cotação.
	ErrCategoriaInvalida = errors.New("categoria de cotação inválida")
	// ErrFaixaInvalida indica faixa etária desconhecida na seleção.
	ErrFaixaInvalida = errors.New("faixa etária inválida")
	// ErrSelecaoVazia indica cotação sem nenhuma vida informada.
	ErrSelecaoVazia = errors.New("selecione ao menos uma vida")
	// ErrQuantidadeInvalida indica quantidade negativa em alguma faixa.
	ErrQuantidadeInvalida = errors.New("quantidade inválida")
)

type catalogoRepository interface {
	List(ctx context.Context) ([]Plano, error)
}

// Service calcula cotações sobre o catálogo imutável de planos.
type Service struct {
	repo catalogoRepository
}

// NewService cria o serviço de cotação.
func NewService(repo catalogoRepository) *Service {
	return &Service{repo: repo}
}

// ListarPorCategoria devolve as entradas do catálogo elegíveis à categoria.
func (s *Service) ListarPorCategoria(ctx context.Context, categoria CategoriaCotacao) ([]Plano, error) {
	if !categoria.Valida() {
		return nil, ErrCategoriaInvalida
	}

	todos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	planos := make([]Plano, 0, len(todos))
	for _, p := range todos {
		if p.AtendeCategoria(categoria) {
			planos = append(planos, p)
		}
	}
	return planos, nil
}

// Cotar calcula o preço de cada plano elegível para a seleção de vidas.
// O resultado é efêmero: calculado a cada chamada, nunca persistido.
func (s *Service) Cotar(ctx context.Context, categoria CategoriaCotacao, selecao map[FaixaEtaria]int) ([]PlanoCalculado, error) {
	total := 0
	for faixa, quantidade := range selecao {
		if !faixa.Valida() {
			return nil, ErrFaixaInvalida
		}
		if quantidade < 0 {
			return nil, ErrQuantidadeInvalida
		}
		total += quantidade
	}
	if total == 0 {
		return nil, ErrSelecaoVazia
	}

	planos, err := s.ListarPorCategoria(ctx, categoria)
	if err != nil {
		return nil, err
	}

	calculados := make([]PlanoCalculado, 0, len(planos))
	for _, p := range planos {
		calculados = append(calculados, calcular(p, selecao))
	}
	return calculados, nil
}

func calcular(p Plano, selecao map[FaixaEtaria]int) PlanoCalculado {
	resultado := PlanoCalculado{Plano: p}

	// Percorre na ordem canônica das faixas para detalhamento estável.
	for _, faixa := range Faixas {
		quantidade := selecao[faixa]
		if quantidade == 0 {
			continue
		}
		unitario := p.Precos[faixa]
		subtotal := unitario * float64(quantidade)
		resultado.Detalhes = append(resultado.Detalhes, ItemCotacao{
			Faixa:         faixa,
			Quantidade:    quantidade,
			PrecoUnitario: unitario,
			Subtotal:      subtotal,
		})
		resultado.Total += subtotal
	}
	return resultado
}
