package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"simulador/config"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// GetConfigHandler devolve a configuração atual.
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cfg)
	}
}

// SaveConfigHandler grava uma nova configuração.
func SaveConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			writeJSONError(w, "Requisição inválida.", http.StatusBadRequest)
			return
		}

		if err := validateFolderPath(newCfg.BasesFolderPath); err != nil {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		if newCfg.PalletTareKg < 0 {
			writeJSONError(w, "Tara de palete não pode ser negativa.", http.StatusBadRequest)
			return
		}

		if err := config.SaveConfig(newCfg); err != nil {
			log.Printf("Error saving config: %v", err)
			writeJSONError(w, "Falha ao salvar a configuração.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Configuração salva."})
	}
}

// validateFolderPath aceita caminho vazio (usa o padrão) ou uma pasta
// existente.
func validateFolderPath(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New("a pasta informada não existe: " + path)
		}
		return errors.New("falha ao verificar a pasta: " + err.Error())
	}
	if !info.IsDir() {
		return errors.New("o caminho informado não é uma pasta: " + path)
	}
	return nil
}
