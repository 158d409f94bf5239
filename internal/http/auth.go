package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	httpmiddleware "github.com/temmaissaude/cotador/internal/http/middleware"
	"github.com/temmaissaude/cotador/internal/repo"
	"github.com/temmaissaude/cotador/internal/service"
)

// Cadastro registra um novo corretor. Validações acontecem antes de qualquer
// escrita; o CPF reservado entra aprovado e como administrador.
func (h *Handler) Cadastro(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Nome     string `json:"name"`
		Email    string `json:"email"`
		Telefone string `json:"phone"`
		CPF      string `json:"cpf"`
		Senha    string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	usuario, err := h.authService.Cadastrar(r.Context(), service.CadastroInput{
		Nome:     payload.Nome,
		Email:    payload.Email,
		Telefone: payload.Telefone,
		CPF:      payload.CPF,
		Senha:    payload.Senha,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCamposObrigatorios):
			WriteError(w, http.StatusBadRequest, "VALIDATION", "Por favor, preencha todos os campos.", nil)
		case errors.Is(err, service.ErrSenhaInvalida):
			WriteError(w, http.StatusBadRequest, "VALIDATION", "A senha deve conter exatamente 6 dígitos numéricos.", nil)
		case errors.Is(err, service.ErrCPFDuplicado):
			WriteError(w, http.StatusConflict, "CONFLICT", "Este CPF já possui cadastro. Tente fazer login.", nil)
		default:
			WriteError(w, http.StatusInternalServerError, "INTERNAL", "Erro: "+err.Error(), nil)
		}
		return
	}

	mensagem := "Cadastro realizado com sucesso! Aguarde a aprovação do administrador. Você será notificado pelo WhatsApp."
	if usuario.IsAdmin {
		mensagem = "Conta de Administrador criada com sucesso! Acessando..."
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"usuario":  usuario,
		"mensagem": mensagem,
	})
}

// Login autentica por CPF e senha. O status do cadastro não bloqueia a
// autenticação; o perfil devolvido carrega o status para o cliente decidir.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CPF   string `json:"cpf"`
		Senha string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), payload.CPF, payload.Senha)
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	h.writeLoginSuccess(w, result)
}

// Refresh rotaciona o refresh token e emite novo token de acesso.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	token, err := refreshFromRequest(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "refresh ausente", nil)
		return
	}

	result, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrRefreshInvalid) {
			WriteError(w, http.StatusUnauthorized, "AUTH", "refresh inválido", nil)
			return
		}
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível renovar a sessão", nil)
		return
	}

	h.writeLoginSuccess(w, result)
}

// Logout revoga o refresh token apresentado.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := refreshFromRequest(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "refresh ausente", nil)
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível encerrar a sessão", nil)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Me devolve o perfil do usuário autenticado.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, err := h.subjectUUID(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "identificação inválida", nil)
		return
	}

	usuario, err := h.authService.GetUsuarioByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "cadastro não encontrado", nil)
			return
		}
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "não foi possível carregar o perfil", nil)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"usuario": usuario})
}

func (h *Handler) handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCamposObrigatorios):
		WriteError(w, http.StatusBadRequest, "VALIDATION", "cpf e senha são obrigatórios", nil)
	case errors.Is(err, service.ErrCredenciaisInvalidas):
		WriteError(w, http.StatusUnauthorized, "AUTH", "CPF ou senha inválidos (Se é seu primeiro acesso, faça o cadastro).", nil)
	default:
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "Erro: "+err.Error(), nil)
	}
}

func (h *Handler) writeLoginSuccess(w http.ResponseWriter, result *service.LoginResult) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"expira_em":     result.RefreshExpiry,
		"roles":         result.Roles,
		"usuario":       result.Usuario,
	})
}

func refreshFromRequest(r *http.Request) (string, error) {
	var payload struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.RefreshToken == "" {
		return "", errors.New("refresh ausente")
	}
	return payload.RefreshToken, nil
}

func (h *Handler) subjectUUID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(httpmiddleware.GetSubject(r.Context()))
}
