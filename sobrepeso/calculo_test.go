package sobrepeso_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simulador/model"
	"simulador/sobrepeso"
)

func basesFixas() *sobrepeso.Bases {
	return &sobrepeso.Bases{
		Catalogo: []model.CatalogoSKU{
			{CodProduto: "7891234", UnidadeMedida: "Caixa", PesoBrutoKg: 12.0, PesoLiquidoKg: 11.5},
		},
		Fixo: []model.SobrepesoFixo{
			{CodProduto: "7891234", Percentual: 3.0},
		},
	}
}

func TestCalcularPesoFinal(t *testing.T) {
	t.Parallel()

	params := sobrepeso.ParametrosCalculo{
		Remessa:       "12345",
		PesoVeiculoKg: 8000,
		QtdPaletes:    20,
	}
	linhas := []model.ExpedicaoLine{
		{Remessa: "12345", Item: "7891234", Quantidade: 100, ChavePallet: "PAL-001"},
	}

	t.Run("sobrepeso fixo aplicado quando não há registro SAP", func(t *testing.T) {
		t.Parallel()

		res := sobrepeso.CalcularPesoFinal(params, linhas, basesFixas(), sobrepeso.DefaultConfig(), nil)
		require.NotNil(t, res)

		assert.Equal(t, 12345, res.Remessa)
		assert.InDelta(t, 1200.0, res.PesoBaseKg, 1e-9)
		assert.InDelta(t, 34.5, res.SobrepesoTotalKg, 1e-9)
		assert.InDelta(t, 1234.5, res.PesoComSobrepesoKg, 1e-9)
		// 1200 + 34.5 + 20*22 + 8000
		assert.InDelta(t, 9674.5, res.PesoFinalKg, 1e-9)

		require.Len(t, res.Itens, 1)
		assert.Equal(t, model.OrigemFixo, res.Itens[0].Origem)
		assert.InDelta(t, 0.03, res.Itens[0].Sobrepeso, 1e-9)
		assert.InDelta(t, 34.5, res.Itens[0].AjusteKg, 1e-9)
	})

	t.Run("duas chamadas idênticas dão o mesmo resultado", func(t *testing.T) {
		t.Parallel()

		a := sobrepeso.CalcularPesoFinal(params, linhas, basesFixas(), sobrepeso.DefaultConfig(), nil)
		b := sobrepeso.CalcularPesoFinal(params, linhas, basesFixas(), sobrepeso.DefaultConfig(), nil)
		assert.Equal(t, a, b)
	})

	t.Run("linha duplicada não conta duas vezes", func(t *testing.T) {
		t.Parallel()

		duplicadas := append([]model.ExpedicaoLine{}, linhas...)
		duplicadas = append(duplicadas, linhas[0])

		uma := sobrepeso.CalcularPesoFinal(params, linhas, basesFixas(), sobrepeso.DefaultConfig(), nil)
		duas := sobrepeso.CalcularPesoFinal(params, duplicadas, basesFixas(), sobrepeso.DefaultConfig(), nil)
		assert.Equal(t, uma, duas)
	})

	t.Run("remessa não numérica devolve nil", func(t *testing.T) {
		t.Parallel()

		p := params
		p.Remessa = "ABC123"
		assert.Nil(t, sobrepeso.CalcularPesoFinal(p, linhas, basesFixas(), sobrepeso.DefaultConfig(), nil))
	})

	t.Run("nenhuma linha resolvível devolve nil", func(t *testing.T) {
		t.Parallel()

		semCatalogo := []model.ExpedicaoLine{
			{Remessa: "12345", Item: "999", Quantidade: 10},
			{Remessa: "12345", Item: "", Quantidade: 5},
			{Remessa: "12345", Item: "7891234", Quantidade: 0},
		}
		assert.Nil(t, sobrepeso.CalcularPesoFinal(params, semCatalogo, basesFixas(), sobrepeso.DefaultConfig(), nil))
	})

	t.Run("tara de palete vem da configuração", func(t *testing.T) {
		t.Parallel()

		cfg := sobrepeso.DefaultConfig()
		cfg.PalletTareKg = 26 // valor das primeiras versões
		res := sobrepeso.CalcularPesoFinal(params, linhas, basesFixas(), cfg, nil)
		require.NotNil(t, res)
		assert.InDelta(t, 1234.5+20*26+8000, res.PesoFinalKg, 1e-9)
	})

	t.Run("peso base nunca fica negativo", func(t *testing.T) {
		t.Parallel()

		res := sobrepeso.CalcularPesoFinal(params, linhas, basesFixas(), sobrepeso.DefaultConfig(), nil)
		require.NotNil(t, res)
		assert.GreaterOrEqual(t, res.PesoBaseKg, 0.0)
	})
}

func TestCalcularPesoFinalComTelemetria(t *testing.T) {
	t.Parallel()

	dia := "2024-03-10"
	amostra := func(hora string, pct float64) model.AmostraSobrepeso {
		ts, err := time.Parse("2006-01-02 15:04:05", dia+" "+hora)
		require.NoError(t, err)
		return model.AmostraSobrepeso{Linha: "LC01", DataHora: ts, Percentual: pct}
	}

	bases := basesFixas()
	bases.SAP = []model.RegistroSAP{
		{ChavePallet: "PAL-001", Lote: "240310C01", DataProducao: dia, HoraCriacao: "08:15:00", HoraModificacao: "10:40:00"},
	}
	bases.Telemetria = []model.AmostraSobrepeso{
		amostra("08:00:00", 4.0),
		amostra("09:30:00", 6.0),
		amostra("11:00:00", 99.0), // fora da janela
	}

	params := sobrepeso.ParametrosCalculo{Remessa: "12345", PesoVeiculoKg: 0, QtdPaletes: 0}
	linhas := []model.ExpedicaoLine{
		{Remessa: "12345", Item: "7891234", Quantidade: 100, ChavePallet: "PAL-001"},
	}

	res := sobrepeso.CalcularPesoFinal(params, linhas, bases, sobrepeso.DefaultConfig(), nil)
	require.NotNil(t, res)
	require.Len(t, res.Itens, 1)

	// média (4+6)/2 = 5% sobre 1150 kg líquidos, mesmo existindo entrada fixa
	assert.Equal(t, model.OrigemReal, res.Itens[0].Origem)
	assert.InDelta(t, 0.05, res.Itens[0].Sobrepeso, 1e-9)
	assert.InDelta(t, 57.5, res.Itens[0].AjusteKg, 1e-9)
	assert.InDelta(t, 1200.0+57.5, res.PesoComSobrepesoKg, 1e-9)
}
