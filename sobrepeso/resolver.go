package sobrepeso

import (
	"fmt"
	"strings"
	"time"

	"simulador/model"
)

// LinhaDoLote deriva a linha de produção a partir do código do lote: os
// últimos 3 caracteres prefixados com "L". As linhas LB06 e LB07 são medidas
// pelo mesmo equipamento e viram a linha combinada LB06/07.
func LinhaDoLote(lote string) string {
	lote = strings.TrimSpace(lote)
	sufixo := lote
	if len(lote) > 3 {
		sufixo = lote[len(lote)-3:]
	}
	return mesclarLinha("L" + sufixo)
}

func mesclarLinha(linha string) string {
	if linha == "LB06" || linha == "LB07" {
		return "LB06/07"
	}
	return linha
}

// janelaProducao monta a janela horária de produção do pallet:
// [hora(criação):00:00, hora(modificação):00:00] no dia de produção.
func janelaProducao(reg model.RegistroSAP) (time.Time, time.Time, error) {
	criacao, err := time.Parse("15:04:05", reg.HoraCriacao)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("hora de criação inválida %q: %w", reg.HoraCriacao, err)
	}
	modificacao, err := time.Parse("15:04:05", reg.HoraModificacao)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("hora de modificação inválida %q: %w", reg.HoraModificacao, err)
	}

	inicio, err := time.Parse("2006-01-02 15:04:05",
		fmt.Sprintf("%s %02d:00:00", reg.DataProducao, criacao.Hour()))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("data de produção inválida %q: %w", reg.DataProducao, err)
	}
	fim, err := time.Parse("2006-01-02 15:04:05",
		fmt.Sprintf("%s %02d:00:00", reg.DataProducao, modificacao.Hour()))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("data de produção inválida %q: %w", reg.DataProducao, err)
	}
	return inicio, fim, nil
}

func buscarRegistroSAP(chave string, registros []model.RegistroSAP) (model.RegistroSAP, bool) {
	for _, reg := range registros {
		if reg.ChavePallet == chave {
			return reg, true
		}
	}
	return model.RegistroSAP{}, false
}

// mediaTelemetria calcula a média das amostras da linha derivada do lote
// dentro da janela de produção, já dividida por 100. O segundo retorno é
// false quando não há amostra na janela (ou a janela não pôde ser montada).
func mediaTelemetria(reg model.RegistroSAP, amostras []model.AmostraSobrepeso, logf Logf) (float64, bool) {
	linha := LinhaDoLote(reg.Lote)

	inicio, fim, err := janelaProducao(reg)
	if err != nil {
		logf.logf("WARN: janela de produção do pallet %s descartada: %v", reg.ChavePallet, err)
		return 0, false
	}

	var soma float64
	var n int
	for _, a := range amostras {
		if mesclarLinha(a.Linha) != linha {
			continue
		}
		if a.DataHora.Before(inicio) || a.DataHora.After(fim) {
			continue
		}
		soma += a.Percentual
		n++
	}
	if n == 0 {
		return 0, false
	}
	return soma / float64(n) / 100.0, true
}

// resolverRecebExterno reconcilia o peso de um pallet recebido de fora pela
// proporção entre a quantidade expedida e a registrada na entrada. Retorna
// false quando os dados não permitem o cálculo (pallet ausente, quantidade
// registrada zerada ou peso teórico nulo); o chamador segue para a tabela
// fixa.
func resolverRecebExterno(item *model.ItemDetalhado, chave string, qtd, pesoBaseLiq float64, bases *Bases, logf Logf) bool {
	var rec model.RecebimentoExterno
	encontrado := false
	for _, r := range bases.Recebimentos {
		if r.ChavePallet == chave {
			rec = r
			encontrado = true
			break
		}
	}
	if !encontrado {
		return false
	}
	if rec.QuantidadeRegistrada <= 0 || rec.PesoRealKg <= 0 {
		logf.logf("Recebimento externo %s com peso ou quantidade registrada inválidos.", chave)
		return false
	}
	if pesoBaseLiq <= 0 {
		return false
	}

	if qtd > rec.QuantidadeRegistrada {
		logf.logf("Quantidade expedida (%.2f) maior que a registrada (%.2f) no pallet externo %s. Usando mesmo assim.",
			qtd, rec.QuantidadeRegistrada, chave)
	}

	pesoProporcional := rec.PesoRealKg * (qtd / rec.QuantidadeRegistrada)
	item.Sobrepeso = pesoProporcional/pesoBaseLiq - 1
	item.AjusteKg = pesoProporcional - pesoBaseLiq
	item.Origem = model.OrigemRecebExterno
	logf.logf("Receb. externo %s: peso real %.2f kg | teórico %.2f kg → SP: %.4f",
		chave, pesoProporcional, pesoBaseLiq, item.Sobrepeso)
	return true
}

func buscarFixo(sku string, fixo []model.SobrepesoFixo) (float64, bool) {
	for _, f := range fixo {
		if f.CodProduto == sku {
			return f.Percentual / 100.0, true
		}
	}
	return 0, false
}

// ResolverSobrepeso determina a fração de sobrepeso de uma linha da remessa
// e o ajuste em kg sobre o peso líquido de base, tentando na ordem:
//
//  1. telemetria real da linha de produção do pallet;
//  2. reconciliação proporcional de recebimento externo;
//  3. percentual fixo por SKU.
//
// Uma média de telemetria nula ou negativa cai para a tabela fixa (mesmo
// comportamento das versões de produção do simulador). Quando nada resolve,
// a origem fica como não encontrado e o ajuste é zero.
func ResolverSobrepeso(chave, sku string, qtd, pesoBaseLiq float64, bases *Bases, cfg Config, logf Logf) model.ItemDetalhado {
	item := model.ItemDetalhado{
		CodProduto:  sku,
		ChavePallet: chave,
		Quantidade:  qtd,
		Origem:      model.OrigemNaoEncontrado,
	}

	if chave != "" {
		if reg, ok := buscarRegistroSAP(chave, bases.SAP); ok {
			if sp, ok := mediaTelemetria(reg, bases.Telemetria, logf); ok {
				if sp > 0 {
					item.Sobrepeso = sp
					item.AjusteKg = pesoBaseLiq * sp
					item.Origem = model.OrigemReal
					return item
				}
				logf.logf("Média de telemetria não positiva (%.4f) para o pallet %s; usando tabela fixa.", sp, chave)
			}
		}
	}

	if chave != "" && strings.HasSuffix(chave, cfg.SufixoRecebExterno) {
		if resolverRecebExterno(&item, chave, qtd, pesoBaseLiq, bases, logf) {
			return item
		}
	}

	if sp, ok := buscarFixo(sku, bases.Fixo); ok && sp != 0 {
		item.Sobrepeso = sp
		item.AjusteKg = pesoBaseLiq * sp
		item.Origem = model.OrigemFixo
		return item
	}

	logf.logf("Nenhum sobrepeso encontrado para o SKU %s.", sku)
	return item
}
