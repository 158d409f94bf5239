// Package metrics agrega os contadores Prometheus da API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics reúne os instrumentos expostos em /metrics.
type Metrics struct {
	CadastrosCriados prometheus.Counter
	TransicoesStatus *prometheus.CounterVec
	AssinantesFeed   prometheus.Gauge
}

// New cria e registra os instrumentos no registrador informado.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CadastrosCriados: factory.NewCounter(prometheus.CounterOpts{
			Name: "cotador_cadastros_criados_total",
			Help: "Total de cadastros de corretores criados.",
		}),
		TransicoesStatus: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cotador_transicoes_status_total",
			Help: "Total de transições de status aplicadas pelo painel.",
		}, []string{"de", "para"}),
		AssinantesFeed: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cotador_feed_assinantes",
			Help: "Assinantes conectados ao feed de mudanças.",
		}),
	}
}
