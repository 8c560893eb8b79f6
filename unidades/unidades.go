package unidades

import "strings"

// Aliases de unidade de medida observados nos extratos (SAP abrevia, o
// cadastro de SKU escreve por extenso).
var internalMap = map[string]string{
	"CX":     "Caixa",
	"CAIXA":  "Caixa",
	"CAIXAS": "Caixa",
	"FD":     "Fardo",
	"FARDO":  "Fardo",
	"UN":     "Unidade",
	"UND":    "Unidade",
	"PC":     "Peça",
	"PAL":    "Palete",
	"PALETE": "Palete",
	"KG":     "Quilograma",
}

// Normalizar resolve um código ou nome de unidade para o nome canônico.
// Valores desconhecidos voltam como vieram.
func Normalizar(unidade string) string {
	key := strings.ToUpper(strings.TrimSpace(unidade))
	if nome, ok := internalMap[key]; ok {
		return nome
	}
	return strings.TrimSpace(unidade)
}

// EhCaixa informa se a unidade de medida equivale a caixa. O cálculo de peso
// só se aplica a entradas de catálogo por caixa.
func EhCaixa(unidade string) bool {
	return Normalizar(unidade) == "Caixa"
}
