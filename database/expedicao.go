package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"simulador/model"
)

// GetRemessaLines devolve as linhas de uma remessa. Correções manuais em
// expedicao_edicao têm precedência sobre o extrato importado.
func GetRemessaLines(db *sqlx.DB, remessa string) ([]model.ExpedicaoLine, error) {
	var lines []model.ExpedicaoLine
	err := db.Select(&lines, `
		SELECT remessa, item, quantidade, chave_pallet
		FROM expedicao_edicao
		WHERE remessa = ?
		ORDER BY rowid`, remessa)
	if err != nil {
		return nil, fmt.Errorf("failed to query expedicao_edicao for %s: %w", remessa, err)
	}
	if len(lines) > 0 {
		return lines, nil
	}

	err = db.Select(&lines, `
		SELECT remessa, item, quantidade, chave_pallet
		FROM expedicao
		WHERE remessa = ?
		ORDER BY rowid`, remessa)
	if err != nil {
		return nil, fmt.Errorf("failed to query expedicao for %s: %w", remessa, err)
	}
	return lines, nil
}

// ReplaceExpedicao substitui as linhas das remessas presentes no lote
// recebido. Remessas que não aparecem no lote ficam como estão.
func ReplaceExpedicao(db *sqlx.DB, lines []model.ExpedicaoLine) (int, error) {
	if len(lines) == 0 {
		return 0, nil
	}

	remessas := make(map[string]struct{})
	for _, line := range lines {
		remessas[line.Remessa] = struct{}{}
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction for expedicao: %w", err)
	}
	defer tx.Rollback()

	for remessa := range remessas {
		if _, err := tx.Exec(`DELETE FROM expedicao WHERE remessa = ?`, remessa); err != nil {
			return 0, fmt.Errorf("failed to clear expedicao for %s: %w", remessa, err)
		}
	}

	stmt, err := tx.Preparex(`
		INSERT INTO expedicao (remessa, item, quantidade, chave_pallet)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare expedicao insert: %w", err)
	}
	defer stmt.Close()

	for _, line := range lines {
		if _, err := stmt.Exec(line.Remessa, line.Item, line.Quantidade, line.ChavePallet); err != nil {
			return 0, fmt.Errorf("failed to insert expedicao line (remessa %s): %w", line.Remessa, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit expedicao: %w", err)
	}
	return len(lines), nil
}

// SaveRemessaEdicao grava o conjunto corrigido de linhas de uma remessa,
// descartando a correção anterior se houver.
func SaveRemessaEdicao(db *sqlx.DB, remessa string, lines []model.ExpedicaoLine) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for expedicao_edicao: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM expedicao_edicao WHERE remessa = ?`, remessa); err != nil {
		return fmt.Errorf("failed to clear expedicao_edicao for %s: %w", remessa, err)
	}

	stmt, err := tx.Preparex(`
		INSERT INTO expedicao_edicao (remessa, item, quantidade, chave_pallet)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare expedicao_edicao insert: %w", err)
	}
	defer stmt.Close()

	for _, line := range lines {
		if _, err := stmt.Exec(remessa, line.Item, line.Quantidade, line.ChavePallet); err != nil {
			return fmt.Errorf("failed to insert expedicao_edicao line (remessa %s): %w", remessa, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expedicao_edicao: %w", err)
	}
	return nil
}

// DeleteRemessaEdicao remove a correção manual de uma remessa, voltando a
// valer o extrato importado.
func DeleteRemessaEdicao(db *sqlx.DB, remessa string) error {
	if _, err := db.Exec(`DELETE FROM expedicao_edicao WHERE remessa = ?`, remessa); err != nil {
		return fmt.Errorf("failed to delete expedicao_edicao for %s: %w", remessa, err)
	}
	return nil
}

// ListRemessas devolve as remessas conhecidas, mais recentes primeiro.
func ListRemessas(db *sqlx.DB) ([]string, error) {
	var remessas []string
	err := db.Select(&remessas, `
		SELECT DISTINCT remessa FROM (
			SELECT remessa FROM expedicao
			UNION
			SELECT remessa FROM expedicao_edicao
		)
		ORDER BY CAST(remessa AS INTEGER) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list remessas: %w", err)
	}
	return remessas, nil
}
