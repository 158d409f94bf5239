package plano

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalogo struct {
	planos []Plano
}

func (s *stubCatalogo) List(ctx context.Context) ([]Plano, error) {
	return s.planos, nil
}

func planoTeste() Plano {
	return Plano{
		ID:             "unimed-essencial",
		Nome:           "Essencial",
		Operadora:      "Unimed",
		Acomodacao:     "Enfermaria",
		Coparticipacao: CoparticipacaoParcial,
		Precos: map[FaixaEtaria]float64{
			Faixa0a18:   150.00,
			Faixa19a23:  180.50,
			Faixa59Mais: 612.30,
		},
		Categorias: []CategoriaCotacao{CategoriaPF, CategoriaPME1},
	}
}

func TestCotarCalculaSubtotaisETotal(t *testing.T) {
	svc := NewService(&stubCatalogo{planos: []Plano{planoTeste()}})

	selecao := map[FaixaEtaria]int{
		Faixa0a18:   2,
		Faixa19a23:  1,
		Faixa59Mais: 1,
	}

	resultado, err := svc.Cotar(context.Background(), CategoriaPF, selecao)
	require.NoError(t, err)
	require.Len(t, resultado, 1)

	calculado := resultado[0]
	require.Len(t, calculado.Detalhes, 3)

	// ordem canônica das faixas
	assert.Equal(t, Faixa0a18, calculado.Detalhes[0].Faixa)
	assert.Equal(t, 2, calculado.Detalhes[0].Quantidade)
	assert.InDelta(t, 300.00, calculado.Detalhes[0].Subtotal, 0.001)
	assert.Equal(t, Faixa59Mais, calculado.Detalhes[2].Faixa)
	assert.InDelta(t, 150.00+150.00+180.50+612.30, calculado.Total, 0.001)
}

func TestCotarFiltraPorCategoria(t *testing.T) {
	svc := NewService(&stubCatalogo{planos: []Plano{planoTeste()}})

	resultado, err := svc.Cotar(context.Background(), CategoriaPME30, map[FaixaEtaria]int{Faixa0a18: 1})
	require.NoError(t, err)
	assert.Empty(t, resultado)
}

func TestCotarRejeitaEntradasInvalidas(t *testing.T) {
	svc := NewService(&stubCatalogo{planos: []Plano{planoTeste()}})
	ctx := context.Background()

	_, err := svc.Cotar(ctx, CategoriaCotacao("EMPRESARIAL"), map[FaixaEtaria]int{Faixa0a18: 1})
	assert.ErrorIs(t, err, ErrCategoriaInvalida)

	_, err = svc.Cotar(ctx, CategoriaPF, map[FaixaEtaria]int{FaixaEtaria("90+"): 1})
	assert.ErrorIs(t, err, ErrFaixaInvalida)

	_, err = svc.Cotar(ctx, CategoriaPF, map[FaixaEtaria]int{Faixa0a18: -1})
	assert.ErrorIs(t, err, ErrQuantidadeInvalida)

	_, err = svc.Cotar(ctx, CategoriaPF, map[FaixaEtaria]int{})
	assert.ErrorIs(t, err, ErrSelecaoVazia)
}

func TestListarPorCategoria(t *testing.T) {
	svc := NewService(&stubCatalogo{planos: []Plano{planoTeste()}})

	planos, err := svc.ListarPorCategoria(context.Background(), CategoriaPME1)
	require.NoError(t, err)
	require.Len(t, planos, 1)
	assert.Equal(t, "unimed-essencial", planos[0].ID)
}
