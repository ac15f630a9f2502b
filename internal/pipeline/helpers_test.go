package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uncharted-waters/tradedb/internal/fetcher"
	"github.com/uncharted-waters/tradedb/internal/model"
	"github.com/uncharted-waters/tradedb/internal/region"
)

func testMapper(t *testing.T) *region.Mapper {
	t.Helper()
	m, err := region.New([]model.Region{
		{Code: "영국", Name: "영국", Display: "북해", Aliases: []string{"잉글랜드"}},
		{Code: "스페", Name: "스페인", Display: "지중해", Aliases: []string{"에스파냐"}},
		{Code: "포르", Name: "포르투갈", Display: "지중해"},
		{Code: "카리", Name: "카리브해", Display: "신대륙"},
	})
	require.NoError(t, err)
	return m
}

// table builds an in-memory table; data rows are numbered from line 2.
func table(header []string, rows ...[]string) *fetcher.Table {
	t := &fetcher.Table{Source: "test", Header: header}
	for i, r := range rows {
		t.Rows = append(t.Rows, fetcher.Row{Line: i + 2, Cells: r})
	}
	return t
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}
