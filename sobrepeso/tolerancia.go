package sobrepeso

import (
	"strings"

	"simulador/model"
)

// Famílias reconhecidas na tabela de tolerância. "REAL" não é família de
// produto: marca que as faixas vieram da telemetria da própria carga.
const (
	FamiliaReal     = "REAL"
	FamiliaBiscoito = "BISCOITO"
	FamiliaMassa    = "MASSA"
	FamiliaMix      = "MIX"
)

// ClassificarTolerancia decide as faixas de aceite (+) e (-) da remessa.
//
// Se a fatia da quantidade resolvida com telemetria real for >= 50%, as
// faixas são médias ponderadas do sobrepeso realizado. Senão a remessa é
// classificada pela família dos SKUs (biscoito, massa ou mix) e as faixas
// saem da tabela por família; MIX é o fallback quando as famílias se
// misturam ou a linha da família não existe, e os padrões da configuração
// são o último recurso.
//
// Retorna as faixas como frações, a fatia real e a família detectada.
func ClassificarTolerancia(itens []model.ItemDetalhado, familias []model.FamiliaSKU, faixas []model.FaixaTolerancia, cfg Config, logf Logf) (positiva, negativa, proporcaoReal float64, familia string) {
	var qtdTotal, qtdReal, ponderadorPos, ponderadorNeg float64
	skus := make(map[string]bool)

	for _, item := range itens {
		skus[item.CodProduto] = true
		qtdTotal += item.Quantidade
		if item.Origem != model.OrigemReal {
			continue
		}
		qtdReal += item.Quantidade
		if item.Sobrepeso > 0 {
			ponderadorPos += item.Sobrepeso * item.Quantidade
		} else if item.Sobrepeso < 0 {
			ponderadorNeg += -item.Sobrepeso * item.Quantidade
		}
	}

	if qtdTotal > 0 {
		proporcaoReal = qtdReal / qtdTotal
	}
	logf.logf("Quantidade total: %.2f, com SP real: %.2f, proporção: %.2f%%", qtdTotal, qtdReal, proporcaoReal*100)

	if proporcaoReal >= 0.5 && qtdReal > 0 {
		positiva = cfg.FaixaPositivaPadrao
		negativa = cfg.FaixaNegativaPadrao
		if ponderadorPos > 0 {
			positiva = ponderadorPos / qtdReal
		}
		if ponderadorNeg > 0 {
			negativa = ponderadorNeg / qtdReal
		}
		logf.logf("Mais de 50%% da quantidade com SP real. Usando médias ponderadas.")
		return positiva, negativa, proporcaoReal, FamiliaReal
	}

	familia = detectarFamilia(skus, familias)
	positiva, negativa = buscarFaixa(familia, faixas, cfg, logf)
	logf.logf("Sobrepeso físico (+): %.4f | (-): %.4f [família %s]", positiva, negativa, familia)
	return positiva, negativa, proporcaoReal, familia
}

// detectarFamilia classifica a carga: uma única família entre os SKUs define
// o grupo (biscoito ou massa); qualquer mistura vira MIX.
func detectarFamilia(skus map[string]bool, familias []model.FamiliaSKU) string {
	porSku := make(map[string]string, len(familias))
	for _, f := range familias {
		porSku[f.CodProduto] = f.Familia
	}

	encontradas := make(map[string]bool)
	for sku := range skus {
		if fam, ok := porSku[sku]; ok {
			encontradas[strings.ToUpper(strings.TrimSpace(fam))] = true
		}
	}
	if len(encontradas) != 1 {
		return FamiliaMix
	}

	var unica string
	for fam := range encontradas {
		unica = fam
	}
	switch {
	case strings.Contains(unica, FamiliaBiscoito):
		return FamiliaBiscoito
	case strings.Contains(unica, FamiliaMassa):
		return FamiliaMassa
	default:
		return FamiliaMix
	}
}

// buscarFaixa procura a linha da família na tabela de tolerância por
// substring, sem diferenciar caixa ("EXCLUSIVO BISCOITOS" casa com
// BISCOITO). Linha ausente cai para MIX; MIX ausente cai para os padrões.
func buscarFaixa(familia string, faixas []model.FaixaTolerancia, cfg Config, logf Logf) (float64, float64) {
	procurar := func(nome string) (model.FaixaTolerancia, bool) {
		for _, f := range faixas {
			if strings.Contains(strings.ToUpper(f.Familia), nome) {
				return f, true
			}
		}
		return model.FaixaTolerancia{}, false
	}

	if row, ok := procurar(familia); ok {
		return row.Positiva, row.Negativa
	}
	if row, ok := procurar(FamiliaMix); ok {
		return row.Positiva, row.Negativa
	}
	logf.logf("WARN: tabela de tolerância sem linha para %s nem MIX; usando padrões.", familia)
	return cfg.FaixaPositivaPadrao, cfg.FaixaNegativaPadrao
}
