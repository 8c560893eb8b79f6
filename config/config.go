package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	// Pasta com os CSVs de referência (catálogo, base SAP, telemetria...).
	BasesFolderPath string `json:"basesFolderPath"`
	// Tara de um palete vazio em kg. Histórico: 26 → 25 → 23 → 22.
	PalletTareKg float64 `json:"palletTareKg"`
	// Sufixo de chave de pallet de recebimento externo.
	SufixoRecebExterno string `json:"sufixoRecebExterno"`
	// Faixas de tolerância usadas quando nada mais resolve.
	FaixaPositivaPadrao float64 `json:"faixaPositivaPadrao"`
	FaixaNegativaPadrao float64 `json:"faixaNegativaPadrao"`
	// Credenciais do portal de rastreabilidade (download automático).
	PortalURL      string `json:"portalURL"`
	PortalUsuario  string `json:"portalUsuario"`
	PortalSenha    string `json:"portalSenha"`
	DownloadFolder string `json:"downloadFolder"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./simulador_config.json"

func aplicarPadroes(c *Config) {
	if c.BasesFolderPath == "" {
		c.BasesFolderPath = "bases"
	}
	if c.PalletTareKg == 0 {
		c.PalletTareKg = 22
	}
	if c.SufixoRecebExterno == "" {
		c.SufixoRecebExterno = "_1"
	}
	if c.FaixaPositivaPadrao == 0 {
		c.FaixaPositivaPadrao = 0.02
	}
	if c.FaixaNegativaPadrao == 0 {
		c.FaixaNegativaPadrao = 0.01
	}
	if c.DownloadFolder == "" {
		c.DownloadFolder = "downloads"
	}
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			aplicarPadroes(&cfg)
			return cfg, nil
		}
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{}, err
	}
	aplicarPadroes(&tempCfg)
	cfg = tempCfg
	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	aplicarPadroes(&newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	c := cfg
	aplicarPadroes(&c)
	return c
}
