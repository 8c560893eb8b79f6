package parsers_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simulador/parsers"
)

func TestParseTelemetriaCSV(t *testing.T) {
	t.Parallel()

	raw := strings.Join([]string{
		"Linha;DataHora;Sobrepeso",
		"LC01;2024-03-10 08:15:00;4,2",
		"LB06/07;10/03/2024 09:30;6",
		"LC01;quando deu;3", // timestamp ilegível, pulada
	}, "\n")

	amostras, err := parsers.ParseTelemetriaCSV(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, amostras, 2)

	assert.Equal(t, "LC01", amostras[0].Linha)
	assert.Equal(t, time.Date(2024, 3, 10, 8, 15, 0, 0, time.UTC), amostras[0].DataHora)
	assert.InDelta(t, 4.2, amostras[0].Percentual, 1e-9)

	assert.Equal(t, "LB06/07", amostras[1].Linha)
	assert.Equal(t, time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC), amostras[1].DataHora)
}

func TestParseSobrepesoFixoCSV(t *testing.T) {
	t.Parallel()

	t.Run("cabeçalho da planilha original", func(t *testing.T) {
		t.Parallel()

		raw := "CÓDIGO PRODUTO;SOBRE PESO\n7891234;3,5\n;9\n"
		registros, err := parsers.ParseSobrepesoFixoCSV(strings.NewReader(raw))
		require.NoError(t, err)
		require.Len(t, registros, 1)
		assert.Equal(t, "7891234", registros[0].CodProduto)
		assert.InDelta(t, 3.5, registros[0].Percentual, 1e-9)
	})

	t.Run("cabeçalho do extrato novo", func(t *testing.T) {
		t.Parallel()

		raw := "COD_PRODUTO;SOBREPESO\n7895555;2\n"
		registros, err := parsers.ParseSobrepesoFixoCSV(strings.NewReader(raw))
		require.NoError(t, err)
		require.Len(t, registros, 1)
		assert.InDelta(t, 2.0, registros[0].Percentual, 1e-9)
	})

	t.Run("sem colunas reconhecidas é erro", func(t *testing.T) {
		t.Parallel()

		_, err := parsers.ParseSobrepesoFixoCSV(strings.NewReader("A;B\n1;2\n"))
		assert.Error(t, err)
	})
}

func TestParseFaixasCSV(t *testing.T) {
	t.Parallel()

	raw := strings.Join([]string{
		"FAMILIA;(+);(-)",
		"CARGA COM MIX;0,02;0,01",
		"EXCLUSIVO BISCOITOS;0,04;0,01",
	}, "\n")

	faixas, err := parsers.ParseFaixasCSV(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, faixas, 2)
	assert.Equal(t, "CARGA COM MIX", faixas[0].Familia)
	assert.InDelta(t, 0.02, faixas[0].Positiva, 1e-9)
	assert.InDelta(t, 0.01, faixas[0].Negativa, 1e-9)
}

func TestParseRecebimentoCSV(t *testing.T) {
	t.Parallel()

	raw := strings.Join([]string{
		"chave_pallete;peso;quantidade;SKU",
		"PAL-001_1;550,5;50;7891234",
		";100;10;7895555",
	}, "\n")

	recebimentos, err := parsers.ParseRecebimentoCSV(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, recebimentos, 1)
	assert.Equal(t, "PAL-001_1", recebimentos[0].ChavePallet)
	assert.InDelta(t, 550.5, recebimentos[0].PesoRealKg, 1e-9)
	assert.InDelta(t, 50.0, recebimentos[0].QuantidadeRegistrada, 1e-9)
	assert.Equal(t, "7891234", recebimentos[0].CodProduto)
}
