package simulacao

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"

	"github.com/jmoiron/sqlx"

	"simulador/config"
	"simulador/database"
	"simulador/model"
	"simulador/parsers"
	"simulador/render"
	"simulador/sobrepeso"
)

// CalcularPayload são os parâmetros da simulação enviados pelo frontend.
type CalcularPayload struct {
	Remessa       string  `json:"remessa"`
	PesoVeiculoKg float64 `json:"pesoVeiculoKg"`
	QtdPaletes    float64 `json:"qtdPaletes"`
}

// Tolerancia é a faixa de aceite aplicada ao resultado.
type Tolerancia struct {
	Positiva      float64 `json:"positiva"`
	Negativa      float64 `json:"negativa"`
	ProporcaoReal float64 `json:"proporcaoReal"`
	Familia       string  `json:"familia"`
}

// CalcularResponse devolve o resultado da simulação com a faixa aplicada.
type CalcularResponse struct {
	Resultado    *model.ResultadoRemessa `json:"resultado"`
	Tolerancia   Tolerancia              `json:"tolerancia"`
	PesoMinimoKg float64                 `json:"pesoMinimoKg"`
	PesoMaximoKg float64                 `json:"pesoMaximoKg"`
}

// simulacaoErro carrega o status HTTP junto com a mensagem para o handler.
type simulacaoErro struct {
	status int
	msg    string
}

func (e *simulacaoErro) Error() string { return e.msg }

// calcConfig traduz a configuração do app para os parâmetros do cálculo.
func calcConfig() sobrepeso.Config {
	cfg := config.GetConfig()
	return sobrepeso.Config{
		PalletTareKg:        cfg.PalletTareKg,
		SufixoRecebExterno:  cfg.SufixoRecebExterno,
		FaixaPositivaPadrao: cfg.FaixaPositivaPadrao,
		FaixaNegativaPadrao: cfg.FaixaNegativaPadrao,
	}
}

// ordemOrigem força a exibição com telemetria primeiro e não resolvidos por
// último.
var ordemOrigem = map[model.Origem]int{
	model.OrigemReal:          0,
	model.OrigemRecebExterno:  1,
	model.OrigemFixo:          2,
	model.OrigemNaoEncontrado: 3,
}

// simulacao é o miolo compartilhado pelos handlers: carrega a remessa e as
// bases, roda o cálculo e classifica a tolerância.
type simulacao struct {
	resposta CalcularResponse
	linhas   []model.ExpedicaoLine
	bases    *sobrepeso.Bases
}

func rodarSimulacao(db *sqlx.DB, remessaBruta string, pesoVeiculoKg, qtdPaletes float64) (*simulacao, error) {
	remessa := parsers.NormalizarRemessa(remessaBruta)
	if remessa == "" {
		return nil, &simulacaoErro{http.StatusBadRequest, "Remessa is required"}
	}

	linhas, err := database.GetRemessaLines(db, remessa)
	if err != nil {
		log.Printf("Error loading remessa %s: %v", remessa, err)
		return nil, &simulacaoErro{http.StatusInternalServerError, "Failed to load remessa"}
	}
	if len(linhas) == 0 {
		return nil, &simulacaoErro{http.StatusNotFound, "Remessa não encontrada"}
	}

	bases, err := database.LoadBases(db)
	if err != nil {
		log.Printf("Error loading reference bases: %v", err)
		return nil, &simulacaoErro{http.StatusInternalServerError, "Failed to load reference bases"}
	}

	cfg := calcConfig()
	linhas = sobrepeso.DeduplicarLinhas(linhas)
	resultado := sobrepeso.CalcularPesoFinal(sobrepeso.ParametrosCalculo{
		Remessa:       remessa,
		PesoVeiculoKg: pesoVeiculoKg,
		QtdPaletes:    qtdPaletes,
	}, linhas, bases, cfg, log.Printf)
	if resultado == nil {
		return nil, &simulacaoErro{http.StatusUnprocessableEntity, "Nenhuma linha da remessa pôde ser calculada"}
	}

	sort.SliceStable(resultado.Itens, func(i, j int) bool {
		return ordemOrigem[resultado.Itens[i].Origem] < ordemOrigem[resultado.Itens[j].Origem]
	})

	positiva, negativa, proporcaoReal, familia := sobrepeso.ClassificarTolerancia(
		resultado.Itens, bases.Familias, bases.Faixas, cfg, log.Printf)

	return &simulacao{
		resposta: CalcularResponse{
			Resultado: resultado,
			Tolerancia: Tolerancia{
				Positiva:      positiva,
				Negativa:      negativa,
				ProporcaoReal: proporcaoReal,
				Familia:       familia,
			},
			PesoMinimoKg: resultado.PesoFinalKg * (1 - negativa),
			PesoMaximoKg: resultado.PesoFinalKg * (1 + positiva),
		},
		linhas: linhas,
		bases:  bases,
	}, nil
}

func responderErro(w http.ResponseWriter, err error) {
	var se *simulacaoErro
	if errors.As(err, &se) {
		http.Error(w, se.msg, se.status)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// CalcularHandler roda a simulação de peso final de uma remessa.
func CalcularHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload CalcularPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		sim, err := rodarSimulacao(db, payload.Remessa, payload.PesoVeiculoKg, payload.QtdPaletes)
		if err != nil {
			responderErro(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sim.resposta)

		resultado := sim.resposta.Resultado
		log.Printf("Simulação da remessa %d: peso final %.2f kg (faixa +%.2f%%/-%.2f%%, família %s)",
			resultado.Remessa, resultado.PesoFinalKg,
			sim.resposta.Tolerancia.Positiva*100, sim.resposta.Tolerancia.Negativa*100,
			sim.resposta.Tolerancia.Familia)
	}
}

// FormularioHandler devolve o FORMULARIO DE CARREGAMENTO pronto para
// impressão, como fragmento HTML.
func FormularioHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload CalcularPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		sim, err := rodarSimulacao(db, payload.Remessa, payload.PesoVeiculoKg, payload.QtdPaletes)
		if err != nil {
			responderErro(w, err)
			return
		}

		html := render.RenderResultadoHTML(sim.resposta.Resultado,
			sim.resposta.Tolerancia.Positiva, sim.resposta.Tolerancia.Negativa,
			sim.resposta.Tolerancia.Familia)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
	}
}

// DivergenciaPayload compara a estimativa com a leitura real da balança.
type DivergenciaPayload struct {
	Remessa       string  `json:"remessa"`
	PesoBalancaKg float64 `json:"pesoBalancaKg"`
	PesoVeiculoKg float64 `json:"pesoVeiculoKg"`
	QtdPaletes    float64 `json:"qtdPaletes"`
}

// DivergenciaHandler apura a divergência por SKU entre o peso estimado e o
// peso pesado na balança.
func DivergenciaHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload DivergenciaPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if payload.PesoBalancaKg <= 0 {
			http.Error(w, "Peso de balança inválido", http.StatusBadRequest)
			return
		}

		sim, err := rodarSimulacao(db, payload.Remessa, payload.PesoVeiculoKg, payload.QtdPaletes)
		if err != nil {
			responderErro(w, err)
			return
		}

		resultado := sim.resposta.Resultado

		// Peso estimado da carga, sem o veículo.
		pesoEstimado := resultado.PesoFinalKg - payload.PesoVeiculoKg
		relatorio := sobrepeso.RelatorioDiferenca(resultado.Remessa, payload.PesoBalancaKg,
			payload.PesoVeiculoKg, sim.linhas, sim.bases.Catalogo, pesoEstimado, log.Printf)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(relatorio)
		log.Printf("Divergência da remessa %d: %.2f kg sobre %d SKUs",
			resultado.Remessa, relatorio.DiferencaTotalKg, len(relatorio.Linhas))
	}
}
