package sobrepeso_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"simulador/model"
	"simulador/sobrepeso"
)

var faixasPadrao = []model.FaixaTolerancia{
	{Familia: "CARGA COM MIX", Positiva: 0.02, Negativa: 0.01},
	{Familia: "EXCLUSIVO MASSAS", Positiva: 0.005, Negativa: 0.01},
	{Familia: "EXCLUSIVO BISCOITOS", Positiva: 0.04, Negativa: 0.01},
}

func TestClassificarTolerancia(t *testing.T) {
	t.Parallel()

	cfg := sobrepeso.DefaultConfig()

	t.Run("maioria real usa médias ponderadas", func(t *testing.T) {
		t.Parallel()

		itens := []model.ItemDetalhado{
			{CodProduto: "1", Quantidade: 60, Sobrepeso: 0.05, Origem: model.OrigemReal},
			{CodProduto: "1", Quantidade: 20, Sobrepeso: -0.02, Origem: model.OrigemReal},
			{CodProduto: "2", Quantidade: 20, Sobrepeso: 0.03, Origem: model.OrigemFixo},
		}
		pos, neg, prop, familia := sobrepeso.ClassificarTolerancia(itens, nil, faixasPadrao, cfg, nil)

		assert.Equal(t, sobrepeso.FamiliaReal, familia)
		assert.InDelta(t, 0.8, prop, 1e-9)
		// ponderador positivo: 0.05*60 = 3.0 sobre 80 reais
		assert.InDelta(t, 3.0/80.0, pos, 1e-9)
		// ponderador negativo: 0.02*20 = 0.4 sobre 80 reais
		assert.InDelta(t, 0.4/80.0, neg, 1e-9)
	})

	t.Run("fatia real exatamente 0.5 ainda usa o ramo real", func(t *testing.T) {
		t.Parallel()

		itens := []model.ItemDetalhado{
			{CodProduto: "1", Quantidade: 50, Sobrepeso: 0.04, Origem: model.OrigemReal},
			{CodProduto: "2", Quantidade: 50, Sobrepeso: 0.03, Origem: model.OrigemFixo},
		}
		_, _, prop, familia := sobrepeso.ClassificarTolerancia(itens, nil, faixasPadrao, cfg, nil)
		assert.InDelta(t, 0.5, prop, 1e-9)
		assert.Equal(t, sobrepeso.FamiliaReal, familia)
	})

	t.Run("ramo real sem sobrepeso realizado usa os padrões", func(t *testing.T) {
		t.Parallel()

		itens := []model.ItemDetalhado{
			{CodProduto: "1", Quantidade: 100, Sobrepeso: 0, Origem: model.OrigemReal},
		}
		pos, neg, _, _ := sobrepeso.ClassificarTolerancia(itens, nil, faixasPadrao, cfg, nil)
		assert.InDelta(t, 0.02, pos, 1e-9)
		assert.InDelta(t, 0.01, neg, 1e-9)
	})

	t.Run("carga só de biscoito usa a linha de biscoito", func(t *testing.T) {
		t.Parallel()

		itens := []model.ItemDetalhado{
			{CodProduto: "1", Quantidade: 10, Sobrepeso: 0.03, Origem: model.OrigemFixo},
			{CodProduto: "2", Quantidade: 10, Sobrepeso: 0.03, Origem: model.OrigemFixo},
		}
		familias := []model.FamiliaSKU{
			{CodProduto: "1", Familia: "BISCOITO RECHEADO"},
			{CodProduto: "2", Familia: "BISCOITO SALGADO"},
		}
		pos, neg, _, familia := sobrepeso.ClassificarTolerancia(itens, familias, faixasPadrao, cfg, nil)
		assert.Equal(t, sobrepeso.FamiliaMix, familia) // duas famílias distintas → MIX
		assert.InDelta(t, 0.02, pos, 1e-9)
		assert.InDelta(t, 0.01, neg, 1e-9)

		familias = []model.FamiliaSKU{
			{CodProduto: "1", Familia: "BISCOITO RECHEADO"},
			{CodProduto: "2", Familia: "BISCOITO RECHEADO"},
		}
		pos, neg, _, familia = sobrepeso.ClassificarTolerancia(itens, familias, faixasPadrao, cfg, nil)
		assert.Equal(t, sobrepeso.FamiliaBiscoito, familia)
		assert.InDelta(t, 0.04, pos, 1e-9)
		assert.InDelta(t, 0.01, neg, 1e-9)
	})

	t.Run("carga só de massa usa a linha de massas", func(t *testing.T) {
		t.Parallel()

		itens := []model.ItemDetalhado{
			{CodProduto: "3", Quantidade: 10, Sobrepeso: 0.01, Origem: model.OrigemFixo},
		}
		familias := []model.FamiliaSKU{{CodProduto: "3", Familia: "MASSA SEMOLA"}}
		pos, _, _, familia := sobrepeso.ClassificarTolerancia(itens, familias, faixasPadrao, cfg, nil)
		assert.Equal(t, sobrepeso.FamiliaMassa, familia)
		assert.InDelta(t, 0.005, pos, 1e-9)
	})

	t.Run("linha da família ausente cai na linha MIX", func(t *testing.T) {
		t.Parallel()

		soMix := []model.FaixaTolerancia{{Familia: "CARGA COM MIX", Positiva: 0.02, Negativa: 0.01}}
		itens := []model.ItemDetalhado{
			{CodProduto: "3", Quantidade: 10, Origem: model.OrigemFixo},
		}
		familias := []model.FamiliaSKU{{CodProduto: "3", Familia: "MASSA SEMOLA"}}
		pos, neg, _, _ := sobrepeso.ClassificarTolerancia(itens, familias, soMix, cfg, nil)
		assert.InDelta(t, 0.02, pos, 1e-9)
		assert.InDelta(t, 0.01, neg, 1e-9)
	})

	t.Run("tabela vazia cai nos padrões da configuração", func(t *testing.T) {
		t.Parallel()

		cfgCustom := cfg
		cfgCustom.FaixaPositivaPadrao = 0.07
		cfgCustom.FaixaNegativaPadrao = 0.03
		itens := []model.ItemDetalhado{
			{CodProduto: "4", Quantidade: 10, Origem: model.OrigemFixo},
		}
		pos, neg, _, familia := sobrepeso.ClassificarTolerancia(itens, nil, nil, cfgCustom, nil)
		assert.Equal(t, sobrepeso.FamiliaMix, familia)
		assert.InDelta(t, 0.07, pos, 1e-9)
		assert.InDelta(t, 0.03, neg, 1e-9)
	})

	t.Run("sem itens a fatia real é zero", func(t *testing.T) {
		t.Parallel()

		_, _, prop, familia := sobrepeso.ClassificarTolerancia(nil, nil, faixasPadrao, cfg, nil)
		assert.Zero(t, prop)
		assert.Equal(t, sobrepeso.FamiliaMix, familia)
	})
}
