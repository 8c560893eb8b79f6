package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"simulador/model"
)

// ParseBaseSAPCSV lê o extrato da base SAP (registros de produção por
// pallet). O extrato sai do GUI em Windows-1252, com datas brasileiras;
// tudo é normalizado aqui para o formato que o cálculo espera.
func ParseBaseSAPCSV(r io.Reader) ([]model.RegistroSAP, error) {
	decoder := charmap.Windows1252.NewDecoder()
	reader := csv.NewReader(SkipBOM(transform.NewReader(r, decoder)))
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV da base SAP vazio")
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao ler o cabeçalho da base SAP: %w", err)
	}

	required := []string{"Chave Pallet", "Lote", "Data de produção", "Hora de criação", "Hora de modificação"}
	colIndex, err := getColIndex(header, required)
	if err != nil {
		return nil, err
	}

	var records []model.RegistroSAP
	linha := 1
	for {
		linha++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: base SAP, linha %d ilegível (pulada): %v", linha, err)
			continue
		}

		get := func(nome string) string {
			idx := colIndex[nome]
			if idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		parsed := model.RegistroSAP{
			ChavePallet:     get("Chave Pallet"),
			Lote:            get("Lote"),
			DataProducao:    NormalizarData(get("Data de produção")),
			HoraCriacao:     NormalizarHora(get("Hora de criação")),
			HoraModificacao: NormalizarHora(get("Hora de modificação")),
		}
		if parsed.ChavePallet == "" || parsed.Lote == "" {
			continue
		}
		records = append(records, parsed)
	}
	return records, nil
}

var formatosData = []string{"2006-01-02", "02/01/2006", "02.01.2006"}

// NormalizarData converte datas do extrato (ISO, 02/01/2006 ou 02.01.2006,
// formato do GUI do SAP) para 2006-01-02. Ilegível volta vazio.
func NormalizarData(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if idx := strings.IndexByte(s, ' '); idx > 0 {
		s = s[:idx]
	}
	for _, formato := range formatosData {
		if v, err := time.Parse(formato, s); err == nil {
			return v.Format("2006-01-02")
		}
	}
	return ""
}

// NormalizarHora completa horas sem segundos ("08:15" → "08:15:00").
func NormalizarHora(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if v, err := time.Parse("15:04:05", s); err == nil {
		return v.Format("15:04:05")
	}
	if v, err := time.Parse("15:04", s); err == nil {
		return v.Format("15:04:05")
	}
	return ""
}
