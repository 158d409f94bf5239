package http

import (
	"encoding/json"
	"net/http"
)

// Toda resposta da API usa o mesmo envelope: exatamente um entre data e
// error vem preenchido, nunca os dois.

// SuccessEnvelope embala o corpo de respostas bem-sucedidas.
type SuccessEnvelope struct {
	Data  any `json:"data"`
	Error any `json:"error"`
}

// ErrorEnvelope embala falhas normalizadas.
type ErrorEnvelope struct {
	Data  any        `json:"data"`
	Error *ErrorBody `json:"error"`
}

// ErrorBody carrega o código estável da falha, a mensagem exibível e
// detalhes opcionais de validação.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// WriteJSON responde sucesso no envelope padrão.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(SuccessEnvelope{Data: data})
}

// WriteError responde falha com código e mensagem normalizados.
func WriteError(w http.ResponseWriter, status int, code, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorEnvelope{
		Error: &ErrorBody{Code: code, Message: message, Details: details},
	})
}
