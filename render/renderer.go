package render

import (
	"fmt"
	"strconv"
	"strings"

	"simulador/model"
)

// rótulos exibidos no formulário para cada origem de sobrepeso
var rotuloOrigem = map[model.Origem]string{
	model.OrigemReal:          "Telemetria",
	model.OrigemRecebExterno:  "Recebimento",
	model.OrigemFixo:          "Base física",
	model.OrigemNaoEncontrado: "Não encontrado",
}

// RenderResultadoHTML gera o fragmento HTML do FORMULARIO DE CARREGAMENTO a
// partir do resultado da simulação. Chamado pelo frontend para imprimir.
func RenderResultadoHTML(resultado *model.ResultadoRemessa, positiva, negativa float64, familia string) string {
	var sb strings.Builder

	sb.WriteString(`<div class="formulario-carregamento">`)
	sb.WriteString(fmt.Sprintf(`<h2>FORMULARIO DE CARREGAMENTO — Remessa %d</h2>`, resultado.Remessa))

	sb.WriteString(`<table class="resumo"><tbody>`)
	sb.WriteString(linhaResumo("Peso base (bruto)", resultado.PesoBaseKg))
	sb.WriteString(linhaResumo("Sobrepeso total", resultado.SobrepesoTotalKg))
	sb.WriteString(linhaResumo("Peso com sobrepeso", resultado.PesoComSobrepesoKg))
	sb.WriteString(linhaResumo("Peso final estimado", resultado.PesoFinalKg))
	sb.WriteString(linhaResumo("Peso mínimo aceito", resultado.PesoFinalKg*(1-negativa)))
	sb.WriteString(linhaResumo("Peso máximo aceito", resultado.PesoFinalKg*(1+positiva)))
	sb.WriteString(fmt.Sprintf(`<tr><th>Família da carga</th><td>%s</td></tr>`, familia))
	sb.WriteString(`</tbody></table>`)

	sb.WriteString(`
    <table class="itens">
    <thead>
        <tr>
            <th class="col-sku">SKU</th>
            <th class="col-chave">Chave Pallet</th>
            <th class="col-qtd">Qtd</th>
            <th class="col-sp">Sobrepeso</th>
            <th class="col-ajuste">Ajuste (kg)</th>
            <th class="col-origem">Origem</th>
        </tr>
    </thead>`)

	sb.WriteString(`<tbody>`)
	if len(resultado.Itens) == 0 {
		sb.WriteString(`<tr><td colspan="6">Nenhum item calculado.</td></tr>`)
	} else {
		for _, item := range resultado.Itens {
			origem := rotuloOrigem[item.Origem]
			if origem == "" {
				origem = string(item.Origem)
			}
			sb.WriteString(`<tr>`)
			sb.WriteString(`<td>` + item.CodProduto + `</td>`)
			sb.WriteString(`<td>` + item.ChavePallet + `</td>`)
			sb.WriteString(`<td>` + strconv.FormatFloat(item.Quantidade, 'f', 0, 64) + `</td>`)
			sb.WriteString(`<td>` + strconv.FormatFloat(item.Sobrepeso*100, 'f', 2, 64) + `%</td>`)
			sb.WriteString(`<td>` + strconv.FormatFloat(item.AjusteKg, 'f', 2, 64) + `</td>`)
			sb.WriteString(`<td class="origem-` + string(item.Origem) + `">` + origem + `</td>`)
			sb.WriteString(`</tr>`)
		}
	}
	sb.WriteString(`</tbody></table></div>`)

	return sb.String()
}

func linhaResumo(rotulo string, valorKg float64) string {
	return fmt.Sprintf(`<tr><th>%s</th><td>%s kg</td></tr>`,
		rotulo, strconv.FormatFloat(valorKg, 'f', 2, 64))
}
