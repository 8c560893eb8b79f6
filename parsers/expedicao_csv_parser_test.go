package parsers_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simulador/parsers"
)

func TestParseExpedicaoCSV(t *testing.T) {
	t.Parallel()

	t.Run("extrato da auditoria com ponto e vírgula", func(t *testing.T) {
		t.Parallel()

		raw := strings.Join([]string{
			"REMESSA;COD_ITEM;CASEWHENA.EXCLUIDO_POR_LOGINISNULLTHENA.VOLUMEELSE-1*A.VOLUMEEND;COD_RASTREABILIDADE;TIPO_RASTREABILIDADE",
			"71234.0;7891234;100;PAL-001;CHAVE PALLET",
			"71234.0;7891234;-20;PAL-002;CHAVE PALLET", // exclusão lógica vira quantidade absoluta
			"71234.0;7895555;50;LOTE-9;LOTE",           // rastreado por lote, fora
			"71234.0;7891234;100;PAL-001;CHAVE PALLET", // duplicata exata
			";;0;;CHAVE PALLET",
		}, "\n")

		lines, err := parsers.ParseExpedicaoCSV(strings.NewReader(raw))
		require.NoError(t, err)
		require.Len(t, lines, 2)

		assert.Equal(t, "71234", lines[0].Remessa)
		assert.Equal(t, "7891234", lines[0].Item)
		assert.InDelta(t, 100.0, lines[0].Quantidade, 1e-9)
		assert.Equal(t, "PAL-001", lines[0].ChavePallet)

		assert.InDelta(t, 20.0, lines[1].Quantidade, 1e-9)
		assert.Equal(t, "PAL-002", lines[1].ChavePallet)
	})

	t.Run("exportação com vírgula e coluna VOLUME", func(t *testing.T) {
		t.Parallel()

		raw := strings.Join([]string{
			"REMESSA,COD_ITEM,VOLUME,COD_RASTREABILIDADE",
			"88000,123,30,PAL-X",
		}, "\n")

		lines, err := parsers.ParseExpedicaoCSV(strings.NewReader(raw))
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, "88000", lines[0].Remessa)
		assert.InDelta(t, 30.0, lines[0].Quantidade, 1e-9)
	})

	t.Run("sem coluna de quantidade é erro", func(t *testing.T) {
		t.Parallel()

		raw := "REMESSA;COD_ITEM;COD_RASTREABILIDADE\n1;2;3\n"
		_, err := parsers.ParseExpedicaoCSV(strings.NewReader(raw))
		assert.Error(t, err)
	})
}

func TestParseDecimal(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 216.0, parsers.ParseDecimal("216"), 1e-9)
	assert.InDelta(t, 216.5, parsers.ParseDecimal("216,5"), 1e-9)
	assert.InDelta(t, 216.5, parsers.ParseDecimal(" 216.5 "), 1e-9)
	assert.Zero(t, parsers.ParseDecimal("abc"))
	assert.Zero(t, parsers.ParseDecimal(""))
}

func TestDetectarSeparador(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ';', parsers.DetectarSeparador("A;B;C"))
	assert.Equal(t, ',', parsers.DetectarSeparador("A,B,C"))
	assert.Equal(t, '\t', parsers.DetectarSeparador("A\tB\tC"))
}
