package model

// ExpedicaoLine é uma linha da remessa no extrato de rastreabilidade.
// ChavePallet vazia significa que a linha não estava amarrada a um pallet
// físico no momento da expedição.
type ExpedicaoLine struct {
	Remessa     string  `db:"remessa" json:"remessa"`
	Item        string  `db:"item" json:"item"`
	Quantidade  float64 `db:"quantidade" json:"quantidade"`
	ChavePallet string  `db:"chave_pallet" json:"chavePallet"`
}

// RegistroSAP é o registro de produção de um pallet extraído da base SAP.
// Os últimos 2–3 caracteres do lote codificam a linha de produção.
type RegistroSAP struct {
	ChavePallet     string `db:"chave_pallet" json:"chavePallet"`
	Lote            string `db:"lote" json:"lote"`
	DataProducao    string `db:"data_producao" json:"dataProducao"`       // 2006-01-02
	HoraCriacao     string `db:"hora_criacao" json:"horaCriacao"`         // 15:04:05
	HoraModificacao string `db:"hora_modificacao" json:"horaModificacao"` // 15:04:05
}

// RecebimentoExterno guarda o peso real registrado na entrada de um pallet
// recebido de fora (chave com sufixo de recebimento externo).
type RecebimentoExterno struct {
	ChavePallet          string  `db:"chave_pallet" json:"chavePallet"`
	PesoRealKg           float64 `db:"peso_real_kg" json:"pesoRealKg"`
	QuantidadeRegistrada float64 `db:"quantidade_registrada" json:"quantidadeRegistrada"`
	CodProduto           string  `db:"cod_produto" json:"codProduto"`
}
