package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/temmaissaude/cotador/internal/repo"
	"github.com/temmaissaude/cotador/internal/service"
)

// ListUsuarios devolve os cadastros para o painel administrativo.
// Sem filtro, lista apenas pendentes; ?filtro=todos lista não-administradores.
func (h *Handler) ListUsuarios(w http.ResponseWriter, r *http.Request) {
	filtro := r.URL.Query().Get("filtro")

	usuarios, err := h.usuarios.Listar(r.Context(), filtro)
	if err != nil {
		if errors.Is(err, service.ErrFiltroInvalido) {
			WriteError(w, http.StatusBadRequest, "VALIDATION", "filtro deve ser pendentes ou todos", nil)
			return
		}
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível listar cadastros", nil)
		return
	}

	if usuarios == nil {
		usuarios = []repo.Usuario{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"usuarios": usuarios})
}

// AtualizarStatus aplica uma transição de aprovação ao cadastro. O alvo é o
// id da linha em que a ação foi disparada, nunca uma busca por CPF.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var payload struct {
		Status repo.StatusUsuario `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	usuario, err := h.usuarios.AtualizarStatus(r.Context(), id, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStatusInvalido):
			WriteError(w, http.StatusBadRequest, "VALIDATION", "status deve ser approved ou rejected", nil)
		case errors.Is(err, service.ErrTransicaoInvalida):
			WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", "transição de status não permitida", nil)
		case errors.Is(err, repo.ErrNotFound):
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "cadastro não encontrado", nil)
		default:
			WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível atualizar o status", nil)
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"usuario": usuario})
}
