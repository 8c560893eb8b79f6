package database

import (
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"simulador/model"
	"simulador/sobrepeso"
)

// amostraRow é a forma persistida de model.AmostraSobrepeso; o SQLite guarda
// o timestamp como texto.
type amostraRow struct {
	Linha      string  `db:"linha"`
	DataHora   string  `db:"data_hora"`
	Percentual float64 `db:"percentual"`
}

// LoadBases materializa em memória todas as tabelas que o cálculo de
// sobrepeso consome. As bases são pequenas (milhares de linhas) e o cálculo
// varre várias delas por item, então ler tudo de uma vez sai mais barato que
// consultar por pallet.
func LoadBases(db *sqlx.DB) (*sobrepeso.Bases, error) {
	bases := &sobrepeso.Bases{}

	if err := db.Select(&bases.Catalogo, `
		SELECT cod_produto, unidade_medida, peso_bruto_kg, peso_liquido_kg
		FROM catalogo_sku`); err != nil {
		return nil, fmt.Errorf("failed to load catalogo_sku: %w", err)
	}

	if err := db.Select(&bases.SAP, `
		SELECT chave_pallet, lote, data_producao, hora_criacao, hora_modificacao
		FROM base_sap`); err != nil {
		return nil, fmt.Errorf("failed to load base_sap: %w", err)
	}

	var amostras []amostraRow
	if err := db.Select(&amostras, `
		SELECT linha, data_hora, percentual
		FROM sobrepeso_real`); err != nil {
		return nil, fmt.Errorf("failed to load sobrepeso_real: %w", err)
	}
	for _, row := range amostras {
		dataHora, err := time.Parse("2006-01-02 15:04:05", row.DataHora)
		if err != nil {
			log.Printf("WARN: sobrepeso_real com data_hora ilegível %q (ignorada)", row.DataHora)
			continue
		}
		bases.Telemetria = append(bases.Telemetria, model.AmostraSobrepeso{
			Linha:      row.Linha,
			DataHora:   dataHora,
			Percentual: row.Percentual,
		})
	}

	if err := db.Select(&bases.Fixo, `
		SELECT cod_produto, percentual FROM sobrepeso_fixo`); err != nil {
		return nil, fmt.Errorf("failed to load sobrepeso_fixo: %w", err)
	}

	if err := db.Select(&bases.Recebimentos, `
		SELECT chave_pallet, peso_real_kg, quantidade_registrada, cod_produto
		FROM recebimento_externo`); err != nil {
		return nil, fmt.Errorf("failed to load recebimento_externo: %w", err)
	}

	if err := db.Select(&bases.Familias, `
		SELECT cod_produto, familia FROM familia_sku`); err != nil {
		return nil, fmt.Errorf("failed to load familia_sku: %w", err)
	}

	if err := db.Select(&bases.Faixas, `
		SELECT familia, positiva, negativa FROM faixa_tolerancia`); err != nil {
		return nil, fmt.Errorf("failed to load faixa_tolerancia: %w", err)
	}

	return bases, nil
}

// ReplaceCatalogo recarrega o cadastro de pesos por SKU.
func ReplaceCatalogo(db *sqlx.DB, records []model.CatalogoSKU) error {
	return replaceTable(db, "catalogo_sku",
		`INSERT INTO catalogo_sku (cod_produto, unidade_medida, peso_bruto_kg, peso_liquido_kg)
		 VALUES (?, ?, ?, ?)`,
		len(records), func(stmt *sqlx.Stmt, i int) error {
			r := records[i]
			_, err := stmt.Exec(r.CodProduto, r.UnidadeMedida, r.PesoBrutoKg, r.PesoLiquidoKg)
			return err
		})
}

// ReplaceBaseSAP recarrega os registros de produção por pallet.
func ReplaceBaseSAP(db *sqlx.DB, records []model.RegistroSAP) error {
	return replaceTable(db, "base_sap",
		`INSERT INTO base_sap (chave_pallet, lote, data_producao, hora_criacao, hora_modificacao)
		 VALUES (?, ?, ?, ?, ?)`,
		len(records), func(stmt *sqlx.Stmt, i int) error {
			r := records[i]
			_, err := stmt.Exec(r.ChavePallet, r.Lote, r.DataProducao, r.HoraCriacao, r.HoraModificacao)
			return err
		})
}

// ReplaceTelemetria recarrega a série de sobrepeso medido.
func ReplaceTelemetria(db *sqlx.DB, records []model.AmostraSobrepeso) error {
	return replaceTable(db, "sobrepeso_real",
		`INSERT INTO sobrepeso_real (linha, data_hora, percentual) VALUES (?, ?, ?)`,
		len(records), func(stmt *sqlx.Stmt, i int) error {
			r := records[i]
			_, err := stmt.Exec(r.Linha, r.DataHora.Format("2006-01-02 15:04:05"), r.Percentual)
			return err
		})
}

// ReplaceSobrepesoFixo recarrega o sobrepeso de referência por SKU.
func ReplaceSobrepesoFixo(db *sqlx.DB, records []model.SobrepesoFixo) error {
	return replaceTable(db, "sobrepeso_fixo",
		`INSERT INTO sobrepeso_fixo (cod_produto, percentual) VALUES (?, ?)`,
		len(records), func(stmt *sqlx.Stmt, i int) error {
			r := records[i]
			_, err := stmt.Exec(r.CodProduto, r.Percentual)
			return err
		})
}

// ReplaceRecebimentos recarrega os pesos reais da portaria.
func ReplaceRecebimentos(db *sqlx.DB, records []model.RecebimentoExterno) error {
	return replaceTable(db, "recebimento_externo",
		`INSERT INTO recebimento_externo (chave_pallet, peso_real_kg, quantidade_registrada, cod_produto)
		 VALUES (?, ?, ?, ?)`,
		len(records), func(stmt *sqlx.Stmt, i int) error {
			r := records[i]
			_, err := stmt.Exec(r.ChavePallet, r.PesoRealKg, r.QuantidadeRegistrada, r.CodProduto)
			return err
		})
}

// ReplaceFamilias recarrega a família de produto por SKU.
func ReplaceFamilias(db *sqlx.DB, records []model.FamiliaSKU) error {
	return replaceTable(db, "familia_sku",
		`INSERT INTO familia_sku (cod_produto, familia) VALUES (?, ?)`,
		len(records), func(stmt *sqlx.Stmt, i int) error {
			r := records[i]
			_, err := stmt.Exec(r.CodProduto, r.Familia)
			return err
		})
}

// ReplaceFaixas recarrega as faixas de tolerância por família.
func ReplaceFaixas(db *sqlx.DB, records []model.FaixaTolerancia) error {
	return replaceTable(db, "faixa_tolerancia",
		`INSERT INTO faixa_tolerancia (familia, positiva, negativa) VALUES (?, ?, ?)`,
		len(records), func(stmt *sqlx.Stmt, i int) error {
			r := records[i]
			_, err := stmt.Exec(r.Familia, r.Positiva, r.Negativa)
			return err
		})
}

// replaceTable troca o conteúdo inteiro de uma tabela numa transação só.
func replaceTable(db *sqlx.DB, table, insertSQL string, n int, exec func(stmt *sqlx.Stmt, i int) error) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", table, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	stmt, err := tx.Preparex(insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert for %s: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			return fmt.Errorf("failed to insert into %s (row %d): %w", table, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}
	return nil
}
