package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/temmaissaude/cotador/internal/chat"
	"github.com/temmaissaude/cotador/internal/plano"
)

// ListPlanos devolve o catálogo elegível à categoria informada.
func (h *Handler) ListPlanos(w http.ResponseWriter, r *http.Request) {
	categoria := plano.CategoriaCotacao(r.URL.Query().Get("categoria"))
	if categoria == "" {
		categoria = plano.CategoriaPF
	}

	planos, err := h.planos.ListarPorCategoria(r.Context(), categoria)
	if err != nil {
		if errors.Is(err, plano.ErrCategoriaInvalida) {
			WriteError(w, http.StatusBadRequest, "VALIDATION", "categoria de cotação inválida", nil)
			return
		}
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível carregar o catálogo", nil)
		return
	}

	if planos == nil {
		planos = []plano.Plano{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"planos": planos})
}

// Cotar calcula o preço de cada plano elegível para a seleção de vidas.
func (h *Handler) Cotar(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Categoria plano.CategoriaCotacao    `json:"categoria"`
		Selecao   map[plano.FaixaEtaria]int `json:"selecao"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	resultado, err := h.planos.Cotar(r.Context(), payload.Categoria, payload.Selecao)
	if err != nil {
		switch {
		case errors.Is(err, plano.ErrCategoriaInvalida),
			errors.Is(err, plano.ErrFaixaInvalida),
			errors.Is(err, plano.ErrQuantidadeInvalida),
			errors.Is(err, plano.ErrSelecaoVazia):
			WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		default:
			WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível calcular a cotação", nil)
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"cotacao": resultado})
}

// AnexarConversa acrescenta um turno à transcrição efêmera da conversa.
func (h *Handler) AnexarConversa(w http.ResponseWriter, r *http.Request) {
	conversaID := chi.URLParam(r, "id")

	var msg chat.Mensagem
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	if err := h.conversas.Anexar(r.Context(), conversaID, msg); err != nil {
		if errors.Is(err, chat.ErrMensagemInvalida) {
			WriteError(w, http.StatusBadRequest, "VALIDATION", "mensagem inválida", nil)
			return
		}
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível gravar a mensagem", nil)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// ListarConversa devolve a transcrição completa da conversa.
func (h *Handler) ListarConversa(w http.ResponseWriter, r *http.Request) {
	conversaID := chi.URLParam(r, "id")

	mensagens, err := h.conversas.Listar(r.Context(), conversaID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível carregar a conversa", nil)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"mensagens": mensagens})
}
