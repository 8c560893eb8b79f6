package parsers

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SkipBOM pula o BOM UTF-8 quando o extrato vem do Excel.
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	bom := []byte{0xEF, 0xBB, 0xBF}
	peeked, err := br.Peek(3)
	if err != nil {
		return br
	}
	isBOM := true
	for i, b := range bom {
		if peeked[i] != b {
			isBOM = false
			break
		}
	}
	if isBOM {
		br.Read(make([]byte, 3))
	}
	return br
}

// getColIndex mapeia os nomes do cabeçalho para índices de coluna e valida os
// obrigatórios.
func getColIndex(header []string, required []string) (map[string]int, error) {
	colIndex := make(map[string]int)
	for i, colName := range header {
		colIndex[strings.TrimSpace(colName)] = i
	}
	for _, req := range required {
		if _, ok := colIndex[req]; !ok {
			return nil, fmt.Errorf("cabeçalho obrigatório não encontrado: %s", req)
		}
	}
	return colIndex, nil
}

// ParseDecimal aceita decimais com vírgula ou ponto ("216", "216,5", "216.5").
// Valor ilegível vira zero, planilha suja não derruba a carga inteira.
func ParseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// NormalizarRemessa remove o sufixo ".0" que o Excel cola em números tratados
// como float ("71234.0" → "71234").
func NormalizarRemessa(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimSuffix(s, ".0")
}

// DetectarSeparador olha a primeira linha e decide entre ';', tab e ','.
// O extrato de rastreabilidade muda de dialeto conforme quem exporta.
func DetectarSeparador(primeiraLinha string) rune {
	type cand struct {
		sep rune
		n   int
	}
	candidatos := []cand{
		{';', strings.Count(primeiraLinha, ";")},
		{'\t', strings.Count(primeiraLinha, "\t")},
		{',', strings.Count(primeiraLinha, ",")},
	}
	melhor := cand{',', -1}
	for _, c := range candidatos {
		if c.n > melhor.n {
			melhor = c
		}
	}
	return melhor.sep
}
