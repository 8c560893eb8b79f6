package sobrepeso_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simulador/model"
	"simulador/sobrepeso"
)

func TestRelatorioDiferenca(t *testing.T) {
	t.Parallel()

	catalogo := []model.CatalogoSKU{
		{CodProduto: "10", UnidadeMedida: "Caixa", PesoBrutoKg: 10, PesoLiquidoKg: 9},
		{CodProduto: "20", UnidadeMedida: "Caixa", PesoBrutoKg: 5, PesoLiquidoKg: 4.5},
	}
	linhas := []model.ExpedicaoLine{
		{Remessa: "777", Item: "10", Quantidade: 100, ChavePallet: "A"},
		{Remessa: "777", Item: "10", Quantidade: 50, ChavePallet: "B"},
		{Remessa: "777", Item: "20", Quantidade: 200, ChavePallet: "C"},
	}

	t.Run("divergência repartida proporcionalmente ao peso líquido", func(t *testing.T) {
		t.Parallel()

		rel := sobrepeso.RelatorioDiferenca(777, 10000, 8000, linhas, catalogo, 2300, nil)

		require.Len(t, rel.Linhas, 2)
		assert.InDelta(t, 2000, rel.PesoCargaRealKg, 1e-9)
		assert.InDelta(t, 300, rel.DiferencaTotalKg, 1e-9) // (2300+8000)-10000

		// pesos líquidos: 150*9 = 1350 e 200*4.5 = 900, total 2250
		assert.InDelta(t, 1350.0/2250.0, rel.Linhas[0].PercentualPeso, 1e-9)
		assert.InDelta(t, 900.0/2250.0, rel.Linhas[1].PercentualPeso, 1e-9)

		// soma das divergências por SKU fecha com a diferença total
		var soma float64
		for _, l := range rel.Linhas {
			soma += l.DivergenciaKg
		}
		assert.InDelta(t, rel.DiferencaTotalKg, soma, 1e-6)
	})

	t.Run("quantidade real estimada arredonda para baixo", func(t *testing.T) {
		t.Parallel()

		rel := sobrepeso.RelatorioDiferenca(777, 10000, 8000, linhas, catalogo, 2300, nil)
		// SKU 10: proporcional = 0.6*2000 = 1200 kg / 9 kg = 133.33 → 133
		assert.InDelta(t, 133, rel.Linhas[0].QuantidadeRealEst, 1e-9)
		assert.InDelta(t, 133-150, rel.Linhas[0].DivergenciaQuantidade, 1e-9)
	})

	t.Run("peso líquido total zero zera as fatias", func(t *testing.T) {
		t.Parallel()

		catalogoZerado := []model.CatalogoSKU{
			{CodProduto: "10", UnidadeMedida: "Caixa"},
		}
		rel := sobrepeso.RelatorioDiferenca(777, 10000, 8000, linhas[:1], catalogoZerado, 2300, nil)
		require.Len(t, rel.Linhas, 1)
		assert.Zero(t, rel.Linhas[0].PercentualPeso)
		assert.Zero(t, rel.Linhas[0].QuantidadeRealEst)
		assert.Zero(t, rel.Linhas[0].DivergenciaKg)
	})

	t.Run("SKU fora do catálogo sai da análise sem derrubar o resto", func(t *testing.T) {
		t.Parallel()

		comDesconhecido := append([]model.ExpedicaoLine{}, linhas...)
		comDesconhecido = append(comDesconhecido, model.ExpedicaoLine{Remessa: "777", Item: "999", Quantidade: 10})

		rel := sobrepeso.RelatorioDiferenca(777, 10000, 8000, comDesconhecido, catalogo, 2300, nil)
		assert.Len(t, rel.Linhas, 2)
	})
}
