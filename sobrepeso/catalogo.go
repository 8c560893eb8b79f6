package sobrepeso

import (
	"sort"

	"simulador/model"
	"simulador/unidades"
)

// BuscarCatalogo resolve o peso unitário (bruto e líquido) de um SKU.
// O cadastro pode ter mais de uma entrada por SKU com unidades de medida
// diferentes; a busca prefere a entrada por caixa e, na falta dela, a
// primeira em ordem alfabética de unidade. Retorna false quando o SKU não
// existe no cadastro; o chamador trata como linha sem peso, não como erro.
func BuscarCatalogo(sku string, catalogo []model.CatalogoSKU) (model.CatalogoSKU, bool) {
	if sku == "" {
		return model.CatalogoSKU{}, false
	}

	var candidatas []model.CatalogoSKU
	for _, c := range catalogo {
		if c.CodProduto == sku {
			candidatas = append(candidatas, c)
		}
	}
	if len(candidatas) == 0 {
		return model.CatalogoSKU{}, false
	}

	sort.SliceStable(candidatas, func(i, j int) bool {
		return candidatas[i].UnidadeMedida < candidatas[j].UnidadeMedida
	})
	for _, c := range candidatas {
		if unidades.EhCaixa(c.UnidadeMedida) {
			return c, true
		}
	}
	return candidatas[0], true
}
