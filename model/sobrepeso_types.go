package model

import "time"

// Origem identifica a fonte que resolveu o sobrepeso de um item.
type Origem string

const (
	OrigemReal          Origem = "real"
	OrigemRecebExterno  Origem = "receb_ext"
	OrigemFixo          Origem = "fixo"
	OrigemNaoEncontrado Origem = "nao_encontrado"
)

// AmostraSobrepeso é uma medição de sobrepeso (%) de uma linha de produção.
// Percentual cru: 6 significa 6%.
type AmostraSobrepeso struct {
	Linha      string    `json:"linha"`
	DataHora   time.Time `json:"dataHora"`
	Percentual float64   `json:"percentual"`
}

// SobrepesoFixo é o percentual de sobrepeso de referência por SKU, usado
// quando não há telemetria para o pallet.
type SobrepesoFixo struct {
	CodProduto string  `db:"cod_produto" json:"codProduto"`
	Percentual float64 `db:"percentual" json:"percentual"`
}

// ItemDetalhado é a atribuição de sobrepeso de uma linha da remessa.
type ItemDetalhado struct {
	CodProduto  string  `json:"sku"`
	ChavePallet string  `json:"chavePallet"`
	Quantidade  float64 `json:"quantidade"`
	Sobrepeso   float64 `json:"sobrepeso"` // fração, ex. 0.03
	AjusteKg    float64 `json:"ajusteKg"`
	Origem      Origem  `json:"origem"`
}

// ResultadoRemessa é o resultado agregado do cálculo de uma remessa.
type ResultadoRemessa struct {
	Remessa            int             `json:"remessa"`
	PesoBaseKg         float64         `json:"pesoBaseKg"`
	PesoBaseLiquidoKg  float64         `json:"pesoBaseLiquidoKg"`
	SobrepesoTotalKg   float64         `json:"sobrepesoTotalKg"`
	PesoComSobrepesoKg float64         `json:"pesoComSobrepesoKg"`
	PesoFinalKg        float64         `json:"pesoFinalKg"`
	MediaSobrepeso     float64         `json:"mediaSobrepeso"`
	Itens              []ItemDetalhado `json:"itens"`
}

// LinhaDivergencia é a divergência apurada para um SKU da remessa.
type LinhaDivergencia struct {
	CodProduto            string  `json:"sku"`
	Unidade               string  `json:"unidade"`
	Quantidade            float64 `json:"quantidade"`
	PesoUnitLiquidoKg     float64 `json:"pesoUnitLiquidoKg"`
	PesoLiquidoTotalKg    float64 `json:"pesoLiquidoTotalKg"`
	PercentualPeso        float64 `json:"percentualPeso"`
	PesoProporcionalKg    float64 `json:"pesoProporcionalKg"`
	QuantidadeRealEst     float64 `json:"quantidadeRealEstimada"`
	DivergenciaKg         float64 `json:"divergenciaKg"`
	DivergenciaQuantidade float64 `json:"divergenciaQuantidade"`
}

// RelatorioDivergencia compara o peso estimado com a leitura da balança.
type RelatorioDivergencia struct {
	Remessa          int                `json:"remessa"`
	PesoBalancaKg    float64            `json:"pesoBalancaKg"`
	PesoVeiculoKg    float64            `json:"pesoVeiculoKg"`
	PesoEstimadoKg   float64            `json:"pesoEstimadoKg"`
	PesoCargaRealKg  float64            `json:"pesoCargaRealKg"`
	DiferencaTotalKg float64            `json:"diferencaTotalKg"`
	Linhas           []LinhaDivergencia `json:"linhas"`
}
