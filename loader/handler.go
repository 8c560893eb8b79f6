package loader

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
)

// ReloadBasesHandler reimporta as bases de referência da pasta configurada
// sem reiniciar o servidor.
func ReloadBasesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Println("HTTP request received: Reloading reference bases...")

		if err := LoadBasesCSV(db); err != nil {
			log.Printf("Base reload failed: %v", err)
			http.Error(w, "failed to reload bases: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"message": "Bases de referência recarregadas.",
		})
	}
}
