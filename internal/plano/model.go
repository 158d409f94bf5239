package plano

// FaixaEtaria identifica uma faixa de preço da tabela por idade.
type FaixaEtaria string

const (
	Faixa0a18   FaixaEtaria = "0-18"
	Faixa19a23  FaixaEtaria = "19-23"
	Faixa24a28  FaixaEtaria = "24-28"
	Faixa29a33  FaixaEtaria = "29-33"
	Faixa34a38  FaixaEtaria = "34-38"
	Faixa39a43  FaixaEtaria = "39-43"
	Faixa44a48  FaixaEtaria = "44-48"
	Faixa49a53  FaixaEtaria = "49-53"
	Faixa54a58  FaixaEtaria = "54-58"
	Faixa59Mais FaixaEtaria = "59+"
)

// Faixas lista as faixas na ordem de exibição.
var Faixas = []FaixaEtaria{
	Faixa0a18, Faixa19a23, Faixa24a28, Faixa29a33, Faixa34a38,
	Faixa39a43, Faixa44a48, Faixa49a53, Faixa54a58, Faixa59Mais,
}

// Valida informa se a faixa pertence à tabela.
func (f FaixaEtaria) Valida() bool {
	for _, faixa := range Faixas {
		if f == faixa {
			return true
		}
	}
	return false
}

// CategoriaCotacao segmenta os planos por porte do contratante.
type CategoriaCotacao string

const (
	CategoriaPF    CategoriaCotacao = "PF"
	CategoriaPME1  CategoriaCotacao = "PME_1"
	CategoriaPME2  CategoriaCotacao = "PME_2"
	CategoriaPME30 CategoriaCotacao = "PME_30"
)

// Valida informa se a categoria é conhecida.
func (c CategoriaCotacao) Valida() bool {
	switch c {
	case CategoriaPF, CategoriaPME1, CategoriaPME2, CategoriaPME30:
		return true
	}
	return false
}

// TipoCoparticipacao descreve o modelo de coparticipação do plano.
type TipoCoparticipacao string

const (
	CoparticipacaoIntegral TipoCoparticipacao = "full"
	CoparticipacaoParcial  TipoCoparticipacao = "partial"
	CoparticipacaoSem      TipoCoparticipacao = "none"
)

// TaxaCopay é uma taxa de coparticipação por serviço.
type TaxaCopay struct {
	Servico string `json:"service"`
	Valor   string `json:"value"`
}

// Plano é uma entrada imutável do catálogo de preços.
type Plano struct {
	ID             string                  `json:"id"`
	Nome           string                  `json:"name"`
	Operadora      string                  `json:"operator"`
	Acomodacao     string                  `json:"type"`
	Coparticipacao TipoCoparticipacao      `json:"coparticipationType"`
	LogoColor      string                  `json:"logoColor"`
	Precos         map[FaixaEtaria]float64 `json:"prices"`
	Hospitais      []string                `json:"hospitals"`
	Descricao      string                  `json:"description"`
	Categorias     []CategoriaCotacao      `json:"categories"`
	Cobertura      string                  `json:"coverage"`
	Carencias      []string                `json:"gracePeriods"`
	TaxasCopay     []TaxaCopay             `json:"copayFees"`
}

// AtendeCategoria informa se o plano pode ser cotado na categoria.
func (p Plano) AtendeCategoria(c CategoriaCotacao) bool {
	for _, categoria := range p.Categorias {
		if categoria == c {
			return true
		}
	}
	return false
}

// ItemCotacao é o detalhamento de uma faixa dentro de uma cotação.
type ItemCotacao struct {
	Faixa         FaixaEtaria `json:"ageRange"`
	Quantidade    int         `json:"count"`
	PrecoUnitario float64     `json:"unitPrice"`
	Subtotal      float64     `json:"subtotal"`
}

// PlanoCalculado é o resultado efêmero de uma cotação: nunca é persistido.
type PlanoCalculado struct {
	Plano    Plano         `json:"plan"`
	Total    float64       `json:"totalPrice"`
	Detalhes []ItemCotacao `json:"details"`
}
