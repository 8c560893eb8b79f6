package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"simulador/automation"
	"simulador/expedicao"
	"simulador/loader"
	"simulador/simulacao"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB) {

	// ingestão de linhas de remessa
	mux.HandleFunc("/api/expedicao/receber", expedicao.ReceberExpedicaoHandler(dbConn))
	mux.HandleFunc("/api/expedicao/upload", expedicao.UploadExpedicaoHandler(dbConn))
	mux.HandleFunc("/api/remessas", expedicao.ListRemessasHandler(dbConn))

	// consulta e correção manual de remessas
	mux.HandleFunc("/api/remessa/editar", expedicao.SalvarEdicaoHandler(dbConn))
	mux.HandleFunc("/api/remessa/excluir/", expedicao.ExcluirEdicaoHandler(dbConn))
	mux.HandleFunc("/api/remessa/", expedicao.GetRemessaHandler(dbConn))

	// simulação
	mux.HandleFunc("/api/simulador/calcular", simulacao.CalcularHandler(dbConn))
	mux.HandleFunc("/api/simulador/formulario", simulacao.FormularioHandler(dbConn))
	mux.HandleFunc("/api/simulador/divergencia", simulacao.DivergenciaHandler(dbConn))

	// bases de referência e automação do portal
	mux.HandleFunc("/api/bases/reload", loader.ReloadBasesHandler(dbConn))
	mux.HandleFunc("/api/automacao/rastreabilidade", automation.DownloadRastreabilidadeHandler(dbConn))

	// configuração
	mux.HandleFunc("/api/config/get", GetConfigHandler())
	mux.HandleFunc("/api/config/save", SaveConfigHandler())
}
