package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"simulador/model"
)

var formatosDataHora = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
}

// ParseTelemetriaCSV lê a série de sobrepeso medido por linha de produção.
// Formato longo: uma amostra por linha do arquivo (Linha;DataHora;Sobrepeso),
// percentual cru (6 = 6%).
func ParseTelemetriaCSV(r io.Reader) ([]model.AmostraSobrepeso, error) {
	reader := csv.NewReader(SkipBOM(r))
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV de telemetria vazio")
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao ler o cabeçalho da telemetria: %w", err)
	}

	colIndex, err := getColIndex(header, []string{"Linha", "DataHora", "Sobrepeso"})
	if err != nil {
		return nil, err
	}

	var records []model.AmostraSobrepeso
	linha := 1
	for {
		linha++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: telemetria, linha %d ilegível (pulada): %v", linha, err)
			continue
		}

		get := func(nome string) string {
			idx := colIndex[nome]
			if idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		dataHora, ok := parseDataHora(get("DataHora"))
		if !ok {
			log.Printf("WARN: telemetria, linha %d com DataHora ilegível %q (pulada)", linha, get("DataHora"))
			continue
		}

		records = append(records, model.AmostraSobrepeso{
			Linha:      get("Linha"),
			DataHora:   dataHora,
			Percentual: ParseDecimal(get("Sobrepeso")),
		})
	}
	return records, nil
}

func parseDataHora(s string) (time.Time, bool) {
	for _, formato := range formatosDataHora {
		if v, err := time.Parse(formato, s); err == nil {
			return v, true
		}
	}
	return time.Time{}, false
}

// ParseSobrepesoFixoCSV lê a BASE FISICA: percentual fixo de sobrepeso por
// SKU. Aceita os cabeçalhos da planilha original e os do extrato novo.
func ParseSobrepesoFixoCSV(r io.Reader) ([]model.SobrepesoFixo, error) {
	reader := csv.NewReader(SkipBOM(r))
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV de sobrepeso fixo vazio")
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao ler o cabeçalho do sobrepeso fixo: %w", err)
	}

	colIndex, _ := getColIndex(header, nil)
	idxSku := procurarColuna(colIndex, "CÓDIGO PRODUTO", "CODIGO PRODUTO", "COD_PRODUTO")
	idxSp := procurarColuna(colIndex, "SOBRE PESO", "SOBREPESO")
	if idxSku < 0 || idxSp < 0 {
		return nil, fmt.Errorf("cabeçalhos de SKU/sobrepeso não encontrados no CSV de sobrepeso fixo")
	}

	var records []model.SobrepesoFixo
	linha := 1
	for {
		linha++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: sobrepeso fixo, linha %d ilegível (pulada): %v", linha, err)
			continue
		}

		get := func(idx int) string {
			if idx >= 0 && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		sku := get(idxSku)
		if sku == "" {
			continue
		}
		records = append(records, model.SobrepesoFixo{
			CodProduto: sku,
			Percentual: ParseDecimal(get(idxSp)),
		})
	}
	return records, nil
}

func procurarColuna(colIndex map[string]int, nomes ...string) int {
	for _, nome := range nomes {
		if idx, ok := colIndex[nome]; ok {
			return idx
		}
	}
	return -1
}
