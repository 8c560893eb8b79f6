package sobrepeso

import (
	"strconv"
	"strings"

	"simulador/model"
)

// ParametrosCalculo são os dados digitados na portaria para uma pesagem.
type ParametrosCalculo struct {
	Remessa       string
	PesoVeiculoKg float64
	QtdPaletes    float64
}

// DeduplicarLinhas remove linhas exatamente repetidas (mesmo SKU, quantidade
// e chave de pallet). O extrato de rastreabilidade traz duplicatas quando a
// mesma remessa é reextraída no upstream.
func DeduplicarLinhas(linhas []model.ExpedicaoLine) []model.ExpedicaoLine {
	type chave struct {
		item   string
		qtd    float64
		pallet string
	}
	vistas := make(map[chave]bool, len(linhas))
	out := make([]model.ExpedicaoLine, 0, len(linhas))
	for _, l := range linhas {
		k := chave{strings.TrimSpace(l.Item), l.Quantidade, strings.TrimSpace(l.ChavePallet)}
		if vistas[k] {
			continue
		}
		vistas[k] = true
		out = append(out, l)
	}
	return out
}

// CalcularPesoFinal agrega a remessa inteira: para cada linha deduplicada
// resolve o peso de catálogo e o sobrepeso, e soma tara de paletes e do
// veículo no peso final.
//
// Retorna nil quando a remessa não é numérica ou quando nenhuma linha pôde
// ser resolvida. Isso é "sem dados", não uma falha.
func CalcularPesoFinal(p ParametrosCalculo, linhas []model.ExpedicaoLine, bases *Bases, cfg Config, logf Logf) *model.ResultadoRemessa {
	remessaNum, err := strconv.Atoi(strings.TrimSpace(p.Remessa))
	if err != nil {
		logf.logf("Remessa inválida: %q", p.Remessa)
		return nil
	}

	linhas = DeduplicarLinhas(linhas)
	logf.logf("Linhas da remessa após dedup: %d", len(linhas))

	resultado := &model.ResultadoRemessa{Remessa: remessaNum}

	for _, linha := range linhas {
		sku := strings.TrimSpace(linha.Item)
		qtd := linha.Quantidade
		if sku == "" || qtd <= 0 {
			continue
		}

		entrada, ok := BuscarCatalogo(sku, bases.Catalogo)
		if !ok {
			logf.logf("WARN: SKU %s não encontrado na base de catálogo.", sku)
			continue
		}

		var pesoBruto, pesoLiq float64
		if entrada.PesoBrutoKg > 0 {
			pesoBruto = entrada.PesoBrutoKg * qtd
		}
		if entrada.PesoLiquidoKg > 0 {
			pesoLiq = entrada.PesoLiquidoKg * qtd
		}
		resultado.PesoBaseKg += pesoBruto
		resultado.PesoBaseLiquidoKg += pesoLiq

		item := ResolverSobrepeso(strings.TrimSpace(linha.ChavePallet), sku, qtd, pesoLiq, bases, cfg, logf)
		resultado.SobrepesoTotalKg += item.AjusteKg
		resultado.Itens = append(resultado.Itens, item)
	}

	if len(resultado.Itens) == 0 {
		logf.logf("Remessa %d sem linhas resolvíveis.", remessaNum)
		return nil
	}

	resultado.PesoComSobrepesoKg = resultado.PesoBaseKg + resultado.SobrepesoTotalKg
	resultado.PesoFinalKg = resultado.PesoComSobrepesoKg + p.QtdPaletes*cfg.PalletTareKg + p.PesoVeiculoKg

	var somaSp float64
	for _, item := range resultado.Itens {
		somaSp += item.Sobrepeso
	}
	resultado.MediaSobrepeso = somaSp / float64(len(resultado.Itens))

	logf.logf("Peso base (bruto): %.2f kg | SP total: %.2f kg", resultado.PesoBaseKg, resultado.SobrepesoTotalKg)
	logf.logf("Peso total (paletes + veículo): %.2f kg", resultado.PesoFinalKg)
	return resultado
}
