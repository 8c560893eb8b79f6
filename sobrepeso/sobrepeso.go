// Package sobrepeso implementa o cálculo de peso estimado de uma remessa:
// peso de catálogo por SKU, correção empírica de sobrepeso resolvida em
// cadeia (telemetria real → recebimento externo → tabela fixa), faixas de
// tolerância e relatório de divergência contra a balança.
//
// O pacote é puro: todas as bases chegam materializadas em memória e nenhuma
// função toca disco, rede ou estado global.
package sobrepeso

import "simulador/model"

// Logf recebe os diagnósticos do cálculo. O chamador decide o destino
// (log do servidor, painel do formulário, etc). Pode ser nil.
type Logf func(format string, args ...any)

func (l Logf) logf(format string, args ...any) {
	if l != nil {
		l(format, args...)
	}
}

// Config carrega as constantes que mudaram de valor ao longo das versões do
// simulador e por isso nunca ficam fixas no código.
type Config struct {
	// Tara de um palete vazio. Já valeu 26, 25, 23 e hoje 22 kg.
	PalletTareKg float64
	// Sufixo de chave que identifica pallet de recebimento externo.
	SufixoRecebExterno string
	// Faixas aplicadas quando nem telemetria nem tabela de família resolvem.
	FaixaPositivaPadrao float64
	FaixaNegativaPadrao float64
}

// DefaultConfig retorna os valores vigentes.
func DefaultConfig() Config {
	return Config{
		PalletTareKg:        22,
		SufixoRecebExterno:  "_1",
		FaixaPositivaPadrao: 0.02,
		FaixaNegativaPadrao: 0.01,
	}
}

// Bases reúne as tabelas de referência de um cálculo. O chamador carrega
// tudo de uma vez; o cálculo não sabe de onde as tabelas vieram.
type Bases struct {
	Catalogo     []model.CatalogoSKU
	SAP          []model.RegistroSAP
	Telemetria   []model.AmostraSobrepeso
	Fixo         []model.SobrepesoFixo
	Recebimentos []model.RecebimentoExterno
	Familias     []model.FamiliaSKU
	Faixas       []model.FaixaTolerancia
}
