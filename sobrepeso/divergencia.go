package sobrepeso

import (
	"math"
	"strings"

	"simulador/model"
)

// RelatorioDiferenca reparte a diferença entre o peso estimado e a leitura
// da balança proporcionalmente ao peso líquido de cada SKU, estimando
// quantas unidades de cada um explicam a divergência.
//
// Guardas: peso líquido total zerado deixa todas as fatias em zero; peso
// unitário zerado deixa a quantidade real estimada em zero. Nada aqui lança
// erro por dado de negócio.
func RelatorioDiferenca(remessa int, pesoBalancaKg, pesoVeiculoKg float64, linhas []model.ExpedicaoLine, catalogo []model.CatalogoSKU, pesoEstimadoKg float64, logf Logf) model.RelatorioDivergencia {
	rel := model.RelatorioDivergencia{
		Remessa:          remessa,
		PesoBalancaKg:    pesoBalancaKg,
		PesoVeiculoKg:    pesoVeiculoKg,
		PesoEstimadoKg:   pesoEstimadoKg,
		PesoCargaRealKg:  pesoBalancaKg - pesoVeiculoKg,
		DiferencaTotalKg: (pesoEstimadoKg + pesoVeiculoKg) - pesoBalancaKg,
	}

	// Quantidade total expedida por SKU, na ordem de aparição.
	var ordem []string
	qtdPorSku := make(map[string]float64)
	for _, l := range linhas {
		sku := strings.TrimSpace(l.Item)
		if sku == "" {
			continue
		}
		if _, visto := qtdPorSku[sku]; !visto {
			ordem = append(ordem, sku)
		}
		qtdPorSku[sku] += l.Quantidade
	}

	var pesoLiquidoTotal float64
	for _, sku := range ordem {
		entrada, ok := BuscarCatalogo(sku, catalogo)
		if !ok {
			logf.logf("WARN: SKU %s fora do catálogo; excluído da análise de divergência.", sku)
			continue
		}
		qtd := qtdPorSku[sku]
		pesoLiquido := entrada.PesoLiquidoKg * qtd
		pesoLiquidoTotal += pesoLiquido

		rel.Linhas = append(rel.Linhas, model.LinhaDivergencia{
			CodProduto:         sku,
			Unidade:            entrada.UnidadeMedida,
			Quantidade:         qtd,
			PesoUnitLiquidoKg:  entrada.PesoLiquidoKg,
			PesoLiquidoTotalKg: pesoLiquido,
		})
	}

	for i := range rel.Linhas {
		linha := &rel.Linhas[i]
		if pesoLiquidoTotal > 0 {
			linha.PercentualPeso = linha.PesoLiquidoTotalKg / pesoLiquidoTotal
		}
		linha.PesoProporcionalKg = linha.PercentualPeso * rel.PesoCargaRealKg
		if linha.PesoUnitLiquidoKg > 0 {
			linha.QuantidadeRealEst = math.Floor(linha.PesoProporcionalKg / linha.PesoUnitLiquidoKg)
		}
		linha.DivergenciaKg = linha.PercentualPeso * rel.DiferencaTotalKg
		linha.DivergenciaQuantidade = linha.QuantidadeRealEst - linha.Quantidade
	}

	return rel
}
