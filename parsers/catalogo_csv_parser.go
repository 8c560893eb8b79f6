package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"simulador/model"
)

// ParseCatalogoCSV lê o cadastro de pesos por SKU (extrato dados_sku).
func ParseCatalogoCSV(r io.Reader) ([]model.CatalogoSKU, error) {
	reader := csv.NewReader(SkipBOM(r))
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV de catálogo vazio")
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao ler o cabeçalho do catálogo: %w", err)
	}

	required := []string{"COD_PRODUTO", "DESC_UNID_MEDID", "QTDE_PESO_BRU", "QTDE_PESO_LIQ"}
	colIndex, err := getColIndex(header, required)
	if err != nil {
		return nil, err
	}

	var records []model.CatalogoSKU
	linha := 1
	for {
		linha++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: catálogo, linha %d ilegível (pulada): %v", linha, err)
			continue
		}

		get := func(nome string) string {
			idx := colIndex[nome]
			if idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		sku := get("COD_PRODUTO")
		if sku == "" {
			continue
		}
		records = append(records, model.CatalogoSKU{
			CodProduto:    sku,
			UnidadeMedida: get("DESC_UNID_MEDID"),
			PesoBrutoKg:   ParseDecimal(get("QTDE_PESO_BRU")),
			PesoLiquidoKg: ParseDecimal(get("QTDE_PESO_LIQ")),
		})
	}
	return records, nil
}

// ParseFamiliaCSV lê a BASE_FAMILIA: família de produto por SKU.
func ParseFamiliaCSV(r io.Reader) ([]model.FamiliaSKU, error) {
	reader := csv.NewReader(SkipBOM(r))
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV de famílias vazio")
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao ler o cabeçalho de famílias: %w", err)
	}

	colIndex, _ := getColIndex(header, nil)
	idxSku := procurarColuna(colIndex, "CÓD", "COD", "COD_PRODUTO")
	idxFamilia := procurarColuna(colIndex, "FAMILIA 2", "FAMILIA")
	if idxSku < 0 || idxFamilia < 0 {
		return nil, fmt.Errorf("cabeçalhos de SKU/família não encontrados no CSV de famílias")
	}

	var records []model.FamiliaSKU
	linha := 1
	for {
		linha++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: famílias, linha %d ilegível (pulada): %v", linha, err)
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
		records = append(records, model.FamiliaSKU{
			CodProduto: sku,
			Familia:    get(idxFamilia),
		})
	}
	return records, nil
}

// ParseRecebimentoCSV lê a base de pesos reais dos pallets recebidos de fora
// (chave_pallete;peso;quantidade;SKU, nomes do app de portaria).
func ParseRecebimentoCSV(r io.Reader) ([]model.RecebimentoExterno, error) {
	reader := csv.NewReader(SkipBOM(r))
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV de recebimentos vazio")
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao ler o cabeçalho de recebimentos: %w", err)
	}

	colIndex, err := getColIndex(header, []string{"chave_pallete", "peso", "quantidade"})
	if err != nil {
		return nil, err
	}
	idxSku := procurarColuna(colIndex, "SKU", "sku")

	var records []model.RecebimentoExterno
	linha := 1
	for {
		linha++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: recebimentos, linha %d ilegível (pulada): %v", linha, err)
			continue
		}

		get := func(idx int) string {
			if idx >= 0 && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		chave := get(colIndex["chave_pallete"])
		if chave == "" {
			continue
		}
		records = append(records, model.RecebimentoExterno{
			ChavePallet:          chave,
			PesoRealKg:           ParseDecimal(get(colIndex["peso"])),
			QuantidadeRegistrada: ParseDecimal(get(colIndex["quantidade"])),
			CodProduto:           get(idxSku),
		})
	}
	return records, nil
}

// ParseFaixasCSV lê a tabela de tolerância por família (FAMILIA;(+);(-)).
func ParseFaixasCSV(r io.Reader) ([]model.FaixaTolerancia, error) {
	reader := csv.NewReader(SkipBOM(r))
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV de faixas de tolerância vazio")
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao ler o cabeçalho das faixas: %w", err)
	}

	colIndex, err := getColIndex(header, []string{"FAMILIA", "(+)", "(-)"})
	if err != nil {
		return nil, err
	}

	var records []model.FaixaTolerancia
	linha := 1
	for {
		linha++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: faixas, linha %d ilegível (pulada): %v", linha, err)
			continue
		}

		get := func(nome string) string {
			idx := colIndex[nome]
			if idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		familia := get("FAMILIA")
		if familia == "" {
			continue
		}
		records = append(records, model.FaixaTolerancia{
			Familia:  familia,
			Positiva: ParseDecimal(get("(+)")),
			Negativa: ParseDecimal(get("(-)")),
		})
	}
	return records, nil
}
