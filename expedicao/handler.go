package expedicao

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"simulador/database"
	"simulador/model"
	"simulador/parsers"
)

// ReceberPayload é o lote de linhas de remessa enviado pelo frontend (ou
// por outro sistema) em JSON.
type ReceberPayload struct {
	Linhas []model.ExpedicaoLine `json:"linhas"`
}

// ReceberExpedicaoHandler recebe linhas de remessa em JSON e substitui as
// remessas presentes no lote.
func ReceberExpedicaoHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload ReceberPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		linhas := normalizar(payload.Linhas)
		if len(linhas) == 0 {
			http.Error(w, "Nenhuma linha válida no lote", http.StatusBadRequest)
			return
		}

		n, err := database.ReplaceExpedicao(db, linhas)
		if err != nil {
			log.Printf("Failed to store expedition lines: %v", err)
			http.Error(w, "Failed to store expedition lines", http.StatusInternalServerError)
			return
		}
		log.Printf("Stored %d expedition lines via JSON ingest.", n)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"status": "ok", "linhas": n})
	}
}

// UploadExpedicaoHandler recebe o rastreabilidade.csv por upload multipart.
func UploadExpedicaoHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Println("Received expedition CSV upload request...")

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "File upload error: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		var allResults []map[string]any
		totalInserted := 0

		for _, fileHeader := range r.MultipartForm.File["file"] {
			log.Printf("Processing file: %s", fileHeader.Filename)
			fileResult := map[string]any{"filename": fileHeader.Filename}

			file, openErr := fileHeader.Open()
			if openErr != nil {
				log.Printf("Failed to open uploaded file %s: %v", fileHeader.Filename, openErr)
				fileResult["error"] = fmt.Sprintf("Failed to open file: %v", openErr)
				allResults = append(allResults, fileResult)
				continue
			}

			linhas, parseErr := parsers.ParseExpedicaoCSV(file)
			file.Close()
			if parseErr != nil {
				log.Printf("Failed to parse %s: %v", fileHeader.Filename, parseErr)
				fileResult["error"] = fmt.Sprintf("Failed to parse: %v", parseErr)
				allResults = append(allResults, fileResult)
				continue
			}

			n, err := database.ReplaceExpedicao(db, linhas)
			if err != nil {
				log.Printf("Failed to store lines from %s: %v", fileHeader.Filename, err)
				fileResult["error"] = fmt.Sprintf("Failed to store: %v", err)
				allResults = append(allResults, fileResult)
				continue
			}

			log.Printf("Successfully inserted %d lines from %s", n, fileHeader.Filename)
			fileResult["success"] = true
			fileResult["records_inserted"] = n
			totalInserted += n
			allResults = append(allResults, fileResult)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"total_inserted": totalInserted,
			"results":        allResults,
		})
	}
}

// GetRemessaHandler devolve as linhas de uma remessa (correções manuais têm
// precedência). Rota: /api/remessa/{numero}.
func GetRemessaHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remessa := parsers.NormalizarRemessa(strings.TrimPrefix(r.URL.Path, "/api/remessa/"))
		if remessa == "" {
			http.Error(w, "Remessa is required", http.StatusBadRequest)
			return
		}

		linhas, err := database.GetRemessaLines(db, remessa)
		if err != nil {
			log.Printf("Error querying remessa %s: %v", remessa, err)
			http.Error(w, "Failed to retrieve remessa", http.StatusInternalServerError)
			return
		}
		if len(linhas) == 0 {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(linhas)
	}
}

// EdicaoPayload é o conjunto corrigido de linhas de uma remessa.
type EdicaoPayload struct {
	Remessa string                `json:"remessa"`
	Linhas  []model.ExpedicaoLine `json:"linhas"`
}

// SalvarEdicaoHandler grava uma correção manual de remessa.
func SalvarEdicaoHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload EdicaoPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		remessa := parsers.NormalizarRemessa(payload.Remessa)
		if remessa == "" {
			http.Error(w, "Remessa is required", http.StatusBadRequest)
			return
		}
		for i := range payload.Linhas {
			payload.Linhas[i].Remessa = remessa
		}
		linhas := normalizar(payload.Linhas)

		if err := database.SaveRemessaEdicao(db, remessa, linhas); err != nil {
			log.Printf("Failed to save edit for remessa %s: %v", remessa, err)
			http.Error(w, "Failed to save remessa edit", http.StatusInternalServerError)
			return
		}
		log.Printf("Saved manual edit for remessa %s (%d lines).", remessa, len(linhas))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"status": "ok", "linhas": len(linhas)})
	}
}

// ExcluirEdicaoHandler descarta a correção manual de uma remessa.
// Rota: /api/remessa/excluir/{numero}.
func ExcluirEdicaoHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remessa := parsers.NormalizarRemessa(strings.TrimPrefix(r.URL.Path, "/api/remessa/excluir/"))
		if remessa == "" {
			http.Error(w, "Remessa is required", http.StatusBadRequest)
			return
		}

		if err := database.DeleteRemessaEdicao(db, remessa); err != nil {
			log.Printf("Failed to delete edit for remessa %s: %v", remessa, err)
			http.Error(w, "Failed to delete remessa edit", http.StatusInternalServerError)
			return
		}
		log.Printf("Deleted manual edit for remessa %s.", remessa)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

// ListRemessasHandler devolve as remessas conhecidas.
func ListRemessasHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remessas, err := database.ListRemessas(db)
		if err != nil {
			log.Printf("Failed to list remessas: %v", err)
			http.Error(w, "Failed to list remessas", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(remessas)
	}
}

// normalizar descarta linhas incompletas e normaliza o número da remessa.
func normalizar(linhas []model.ExpedicaoLine) []model.ExpedicaoLine {
	out := make([]model.ExpedicaoLine, 0, len(linhas))
	for _, linha := range linhas {
		linha.Remessa = parsers.NormalizarRemessa(linha.Remessa)
		linha.Item = strings.TrimSpace(linha.Item)
		linha.ChavePallet = strings.TrimSpace(linha.ChavePallet)
		if linha.Remessa == "" || linha.Item == "" || linha.ChavePallet == "" {
			continue
		}
		out = append(out, linha)
	}
	return out
}
