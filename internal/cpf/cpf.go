// Package cpf concentra máscaras e derivações usadas nos formulários do
// cotador: CPF, telefone, senha numérica e o e-mail sintético de login.
package cpf

import (
	"strings"
)

// Digits devolve apenas os dígitos da entrada.
func Digits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCPF aplica a máscara ddd.ddd.ddd-dd de forma incremental.
// Entrada parcial produz máscara parcial; dígitos além do 11º são descartados.
func FormatCPF(raw string) string {
	digits := Digits(raw)
	if len(digits) > 11 {
		digits = digits[:11]
	}

	var b strings.Builder
	for i, r := range digits {
		switch i {
		case 3, 6:
			b.WriteByte('.')
		case 9:
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatTelefone aplica a máscara (dd) ddddd-dddd, truncando em 11 dígitos.
// Com um ou dois dígitos a entrada fica sem máscara; o grupo do DDD só é
// fechado quando o terceiro dígito chega.
func FormatTelefone(raw string) string {
	digits := Digits(raw)
	if len(digits) > 11 {
		digits = digits[:11]
	}
	if len(digits) <= 2 {
		return digits
	}

	var b strings.Builder
	for i, r := range digits {
		switch i {
		case 0:
			b.WriteByte('(')
		case 2:
			b.WriteString(") ")
		case 7:
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SenhaNumericaValida aceita apenas candidatos totalmente numéricos com até
// max caracteres. O chamador mantém o valor anterior quando recusado.
func SenhaNumericaValida(raw string, max int) bool {
	if len(raw) > max {
		return false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// EmailSintetico deriva o e-mail de login a partir dos dígitos do CPF.
// É a ponte entre o modelo mental baseado em CPF e a autenticação por e-mail.
func EmailSintetico(rawCPF, dominio string) string {
	return Digits(rawCPF) + "@" + dominio
}
