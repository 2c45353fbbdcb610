package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"extrato-João da Conceição-divida", "extrato-joao-da-conceicao-divida"},
		{"  --Ação!! ", "acao"},
		{"relatório_2024.v2", "relatorio_2024.v2"},
		{"///", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.in))
		})
	}
}

func TestFileName_Fallback(t *testing.T) {
	assert.Equal(t, "extrato-cliente.pdf", FileName("***", "pdf"))
	assert.Equal(t, "extrato-ana.xlsx", FileName("Extrato Ana", ".xlsx"))
}

func TestFileSink_Save(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(filepath.Join(dir, "out"))

	res, err := sink.Save(context.Background(), "Extrato Zé", "pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.False(t, res.Canceled)
	assert.Equal(t, filepath.Join(dir, "out", "extrato-ze.pdf"), res.FilePath)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
}

func TestFileSink_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewFileSink(t.TempDir()).Save(ctx, "x", "pdf", []byte("x"))
	require.NoError(t, err)
	assert.True(t, res.Canceled)
	assert.Empty(t, res.FilePath)
}

func TestFileSink_RejectsEmpty(t *testing.T) {
	_, err := NewFileSink(t.TempDir()).Save(context.Background(), "x", "pdf", nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestChromePDF_RejectsEmptyMarkup(t *testing.T) {
	_, err := NewChromePDF("", 0).Render(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestWorkbook(t *testing.T) {
	data, err := Workbook(
		Sheet{Name: "Dívida", Headers: []string{"Tipo", "Valor"}, Rows: [][]string{{"Venda", "R$ 10,00"}}},
		Sheet{Name: "Histórico", Headers: []string{"Tipo", "Valor"}, Empty: "Sem movimentações no histórico."},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Dívida", "Histórico"}, f.GetSheetList())

	v, err := f.GetCellValue("Dívida", "B2")
	require.NoError(t, err)
	assert.Equal(t, "R$ 10,00", v)

	v, err = f.GetCellValue("Histórico", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Sem movimentações no histórico.", v)
}
