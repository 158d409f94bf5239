package cpf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCPF(t *testing.T) {
	cases := []struct {
		nome    string
		entrada string
		saida   string
	}{
		{"vazio", "", ""},
		{"parcial", "123", "123"},
		{"primeiro separador", "1234", "123.4"},
		{"completo", "11122233344", "111.222.333-44"},
		{"ja mascarado", "111.222.333-44", "111.222.333-44"},
		{"excedente truncado", "111222333449999", "111.222.333-44"},
		{"lixo misturado", "a1b1c1222333-44xyz", "111.222.333-44"},
	}

	for _, tc := range cases {
		t.Run(tc.nome, func(t *testing.T) {
			assert.Equal(t, tc.saida, FormatCPF(tc.entrada))
		})
	}
}

func TestFormatCPFIdempotente(t *testing.T) {
	mascarado := FormatCPF("98765432100")
	assert.Equal(t, mascarado, FormatCPF(mascarado))
}

func TestFormatTelefone(t *testing.T) {
	cases := []struct {
		nome    string
		entrada string
		saida   string
	}{
		{"vazio", "", ""},
		{"um digito fica sem mascara", "8", "8"},
		{"ddd sozinho fica sem mascara", "83", "83"},
		{"terceiro digito fecha o ddd", "839", "(83) 9"},
		{"meio", "83991", "(83) 991"},
		{"completo", "83991234567", "(83) 99123-4567"},
		{"excedente truncado", "8399123456789", "(83) 99123-4567"},
		{"ja mascarado", "(83) 99123-4567", "(83) 99123-4567"},
	}

	for _, tc := range cases {
		t.Run(tc.nome, func(t *testing.T) {
			assert.Equal(t, tc.saida, FormatTelefone(tc.entrada))
		})
	}
}

func TestSenhaNumericaValida(t *testing.T) {
	assert.True(t, SenhaNumericaValida("", 6))
	assert.True(t, SenhaNumericaValida("123", 6))
	assert.True(t, SenhaNumericaValida("123456", 6))
	assert.False(t, SenhaNumericaValida("1234567", 6))
	assert.False(t, SenhaNumericaValida("12345a", 6))
	assert.False(t, SenhaNumericaValida("12 456", 6))
}

func TestEmailSintetico(t *testing.T) {
	assert.Equal(t, "11122233344@temmaissaude.com", EmailSintetico("111.222.333-44", "temmaissaude.com"))
	assert.Equal(t, "236616@temmaissaude.com", EmailSintetico("236616", "temmaissaude.com"))
}
