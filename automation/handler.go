package automation

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"

	"simulador/config"
	"simulador/database"
	"simulador/parsers"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// DownloadRastreabilidadeHandler baixa o extrato do portal e importa as
// linhas de remessa direto no banco.
func DownloadRastreabilidadeHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		cfg := config.GetConfig()
		if cfg.PortalURL == "" || cfg.PortalUsuario == "" || cfg.PortalSenha == "" {
			writeJSONError(w, "Portal de rastreabilidade não configurado. Informe URL, usuário e senha na configuração.", http.StatusBadRequest)
			return
		}

		saveDir := cfg.DownloadFolder
		if saveDir == "" {
			saveDir = os.TempDir()
			log.Printf("Pasta de download não configurada, usando temporária: %s", saveDir)
		}

		log.Println("Starting portal automation...")
		filePath, err := DownloadRastreabilidade(cfg.PortalURL, cfg.PortalUsuario, cfg.PortalSenha, saveDir)
		if err != nil {
			log.Printf("Automation Error: %v", err)
			writeJSONError(w, "Erro no download automático: "+err.Error(), http.StatusInternalServerError)
			return
		}

		if filePath == "NO_DATA" {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"status":  "no_data",
				"message": "O portal não tem extrato de rastreabilidade para hoje.",
			})
			return
		}

		file, err := os.Open(filePath)
		if err != nil {
			writeJSONError(w, "Falha ao abrir o extrato baixado: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer file.Close()

		linhas, err := parsers.ParseExpedicaoCSV(file)
		if err != nil {
			writeJSONError(w, "Falha ao interpretar o extrato baixado: "+err.Error(), http.StatusInternalServerError)
			return
		}

		n, err := database.ReplaceExpedicao(db, linhas)
		if err != nil {
			writeJSONError(w, "Falha ao gravar as linhas importadas: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":   "success",
			"message":  fmt.Sprintf("Download e importação concluídos: %d linhas.", n),
			"filePath": filePath,
		})
	}
}
