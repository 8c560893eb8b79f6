package parsers_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"simulador/parsers"
)

// windows1252 reencoda o texto do teste como o GUI do SAP exporta.
func windows1252(t *testing.T, s string) *bytes.Reader {
	t.Helper()
	out, err := charmap.Windows1252.NewEncoder().String(s)
	require.NoError(t, err)
	return bytes.NewReader([]byte(out))
}

func TestParseBaseSAPCSV(t *testing.T) {
	t.Parallel()

	raw := strings.Join([]string{
		"Chave Pallet;Lote;Data de produção;Hora de criação;Hora de modificação",
		"PAL-001;240310C01;10/03/2024;08:15;09:40:12",
		"PAL-002;240311B06;2024-03-11 00:00:00;22:05:00;23:59",
		";240312C01;12/03/2024;10:00;11:00", // sem chave, descartada
	}, "\r\n")

	registros, err := parsers.ParseBaseSAPCSV(windows1252(t, raw))
	require.NoError(t, err)
	require.Len(t, registros, 2)

	assert.Equal(t, "PAL-001", registros[0].ChavePallet)
	assert.Equal(t, "240310C01", registros[0].Lote)
	assert.Equal(t, "2024-03-10", registros[0].DataProducao)
	assert.Equal(t, "08:15:00", registros[0].HoraCriacao)
	assert.Equal(t, "09:40:12", registros[0].HoraModificacao)

	assert.Equal(t, "2024-03-11", registros[1].DataProducao)
	assert.Equal(t, "23:59:00", registros[1].HoraModificacao)
}

func TestNormalizarData(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2024-03-10", parsers.NormalizarData("2024-03-10"))
	assert.Equal(t, "2024-03-10", parsers.NormalizarData("10/03/2024"))
	assert.Equal(t, "2024-03-10", parsers.NormalizarData("10.03.2024"))
	assert.Equal(t, "2024-03-10", parsers.NormalizarData("2024-03-10 14:22:00"))
	assert.Empty(t, parsers.NormalizarData("ontem"))
	assert.Empty(t, parsers.NormalizarData(""))
}

func TestNormalizarRemessa(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "71234", parsers.NormalizarRemessa("71234.0"))
	assert.Equal(t, "71234", parsers.NormalizarRemessa(" 71234 "))
	assert.Equal(t, "71234", parsers.NormalizarRemessa("71234"))
}
