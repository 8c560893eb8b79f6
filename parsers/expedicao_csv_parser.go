package parsers

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"strings"

	"simulador/model"
)

// Apelidos conhecidos da coluna de quantidade no extrato de rastreabilidade.
// O primeiro é o nome que o SQL da auditoria gera quando ninguém renomeia o
// CASE de exclusão lógica.
var colunasQuantidade = []string{
	"CASEWHENA.EXCLUIDO_POR_LOGINISNULLTHENA.VOLUMEELSE-1*A.VOLUMEEND",
	"VOLUME",
	"QTD",
	"QUANTIDADE",
}

// ParseExpedicaoCSV lê o rastreabilidade.csv (linhas de remessa). O dialeto
// varia entre exportações: o separador é detectado pela primeira linha e a
// coluna de quantidade é procurada entre os apelidos conhecidos. Linhas sem
// remessa, item ou chave são descartadas, e duplicatas exatas também (o
// upstream reextrai remessas inteiras).
func ParseExpedicaoCSV(r io.Reader) ([]model.ExpedicaoLine, error) {
	br := bufio.NewReader(SkipBOM(r))
	primeira, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("falha ao inspecionar o CSV: %w", err)
	}
	linha1, _, _ := strings.Cut(string(primeira), "\n")

	reader := csv.NewReader(br)
	reader.Comma = DetectarSeparador(linha1)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV de expedição vazio")
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao ler o cabeçalho do CSV de expedição: %w", err)
	}

	colIndex, err := getColIndex(header, []string{"COD_ITEM", "COD_RASTREABILIDADE", "REMESSA"})
	if err != nil {
		return nil, err
	}

	idxQtd := -1
	for _, nome := range colunasQuantidade {
		if idx, ok := colIndex[nome]; ok {
			idxQtd = idx
			break
		}
	}
	if idxQtd < 0 {
		return nil, fmt.Errorf("coluna de quantidade/volume não encontrada no CSV")
	}
	idxTipo, temTipo := colIndex["TIPO_RASTREABILIDADE"]

	type chaveDedup struct {
		remessa, item, pallet string
		qtd                   float64
	}
	vistos := make(map[chaveDedup]int)

	var records []model.ExpedicaoLine
	linha := 1
	for {
		linha++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: CSV de expedição, linha %d ilegível (pulada): %v", linha, err)
			continue
		}

		get := func(idx int) string {
			if idx >= 0 && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		// só linhas rastreadas por chave de pallet interessam
		if temTipo && !strings.Contains(strings.ToUpper(get(idxTipo)), "CHAVE") {
			continue
		}

		parsed := model.ExpedicaoLine{
			Remessa:     NormalizarRemessa(get(colIndex["REMESSA"])),
			Item:        get(colIndex["COD_ITEM"]),
			Quantidade:  math.Abs(ParseDecimal(get(idxQtd))),
			ChavePallet: get(colIndex["COD_RASTREABILIDADE"]),
		}
		if parsed.Remessa == "" || parsed.Item == "" || parsed.ChavePallet == "" {
			continue
		}

		k := chaveDedup{parsed.Remessa, parsed.Item, parsed.ChavePallet, parsed.Quantidade}
		if idx, ok := vistos[k]; ok {
			records[idx] = parsed // mantém a última ocorrência
			continue
		}
		vistos[k] = len(records)
		records = append(records, parsed)
	}
	return records, nil
}
