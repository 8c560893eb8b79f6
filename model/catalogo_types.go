package model

// CatalogoSKU é uma entrada do cadastro de pesos por SKU. Um mesmo produto
// pode ter várias entradas com unidades de medida diferentes; o cálculo usa
// sempre a entrada por caixa.
type CatalogoSKU struct {
	CodProduto    string  `db:"cod_produto" json:"codProduto"`
	UnidadeMedida string  `db:"unidade_medida" json:"unidadeMedida"`
	PesoBrutoKg   float64 `db:"peso_bruto_kg" json:"pesoBrutoKg"`
	PesoLiquidoKg float64 `db:"peso_liquido_kg" json:"pesoLiquidoKg"`
}

// FamiliaSKU associa um SKU à família de produto (BISCOITO, MASSA, ...).
type FamiliaSKU struct {
	CodProduto string `db:"cod_produto" json:"codProduto"`
	Familia    string `db:"familia" json:"familia"`
}

// FaixaTolerancia é uma linha da tabela de faixas de aceite por família.
type FaixaTolerancia struct {
	Familia  string  `db:"familia" json:"familia"`
	Positiva float64 `db:"positiva" json:"positiva"`
	Negativa float64 `db:"negativa" json:"negativa"`
}
