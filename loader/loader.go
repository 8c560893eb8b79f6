package loader

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	"simulador/config"
	"simulador/database"
	"simulador/parsers"
)

// InitDatabase aplica o schema e importa as bases de referência da pasta
// configurada. Base ausente vira WARN, não erro: o simulador funciona com o
// que tiver (sem telemetria cai tudo no sobrepeso fixo).
func InitDatabase(db *sqlx.DB) error {
	log.Println("Applying database schema...")
	if err := applySchema(db); err != nil {
		return fmt.Errorf("failed to apply schema.sql: %w", err)
	}
	log.Println("Schema applied successfully.")

	return LoadBasesCSV(db)
}

// LoadBasesCSV reimporta todas as bases de referência a partir da pasta
// configurada em BasesFolderPath.
func LoadBasesCSV(db *sqlx.DB) error {
	cfg := config.GetConfig()
	pasta := cfg.BasesFolderPath

	carregar(pasta, "dados_sku.csv", func(r io.Reader) error {
		records, err := parsers.ParseCatalogoCSV(r)
		if err != nil {
			return err
		}
		return loadAndCount(len(records), func() error { return database.ReplaceCatalogo(db, records) })
	})

	carregar(pasta, "base_sap.csv", func(r io.Reader) error {
		records, err := parsers.ParseBaseSAPCSV(r)
		if err != nil {
			return err
		}
		return loadAndCount(len(records), func() error { return database.ReplaceBaseSAP(db, records) })
	})

	carregar(pasta, "sobrepeso_real.csv", func(r io.Reader) error {
		records, err := parsers.ParseTelemetriaCSV(r)
		if err != nil {
			return err
		}
		return loadAndCount(len(records), func() error { return database.ReplaceTelemetria(db, records) })
	})

	carregar(pasta, "base_fisica.csv", func(r io.Reader) error {
		records, err := parsers.ParseSobrepesoFixoCSV(r)
		if err != nil {
			return err
		}
		return loadAndCount(len(records), func() error { return database.ReplaceSobrepesoFixo(db, records) })
	})

	carregar(pasta, "recebimentos.csv", func(r io.Reader) error {
		records, err := parsers.ParseRecebimentoCSV(r)
		if err != nil {
			return err
		}
		return loadAndCount(len(records), func() error { return database.ReplaceRecebimentos(db, records) })
	})

	carregar(pasta, "base_familia.csv", func(r io.Reader) error {
		records, err := parsers.ParseFamiliaCSV(r)
		if err != nil {
			return err
		}
		return loadAndCount(len(records), func() error { return database.ReplaceFamilias(db, records) })
	})

	carregar(pasta, "faixas_tolerancia.csv", func(r io.Reader) error {
		records, err := parsers.ParseFaixasCSV(r)
		if err != nil {
			return err
		}
		return loadAndCount(len(records), func() error { return database.ReplaceFaixas(db, records) })
	})

	carregar(pasta, "rastreabilidade.csv", func(r io.Reader) error {
		lines, err := parsers.ParseExpedicaoCSV(r)
		if err != nil {
			return err
		}
		n, err := database.ReplaceExpedicao(db, lines)
		if err != nil {
			return err
		}
		log.Printf("Loaded %d expedition lines.", n)
		return nil
	})

	return nil
}

// carregar abre um CSV da pasta de bases e entrega ao importador. Arquivo
// ausente só gera WARN.
func carregar(pasta, nome string, importar func(io.Reader) error) {
	caminho := filepath.Join(pasta, nome)
	f, err := os.Open(caminho)
	if os.IsNotExist(err) {
		log.Printf("WARN: %s not found, skipping.", caminho)
		return
	}
	if err != nil {
		log.Printf("WARN: failed to open %s: %v. Skipping.", caminho, err)
		return
	}
	defer f.Close()

	log.Printf("Loading %s...", caminho)
	if err := importar(f); err != nil {
		log.Printf("WARN: failed to load %s: %v. Skipping.", caminho, err)
		return
	}
	log.Printf("Loaded %s successfully.", caminho)
}

func loadAndCount(n int, replace func() error) error {
	if err := replace(); err != nil {
		return err
	}
	log.Printf("Imported %d records.", n)
	return nil
}

// applySchema lê e executa o schema.sql do diretório de trabalho.
func applySchema(db *sqlx.DB) error {
	schemaBytes, err := os.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("could not read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaBytes)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}
