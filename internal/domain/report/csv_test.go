package report_test

import (
	"strings"
	"testing"

	"github.com/ma6uchi/freee-api-export/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCSV_HeaderAlwaysPresent(t *testing.T) {
	data, err := report.EncodeCSV(nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "対象従業員,社内/社外,プロジェクト,工数タグ,プロジェクトタグ,業務内容,合計工数（分）,合計工数（時間）", lines[0])
}

func TestEncodeCSV_Rows(t *testing.T) {
	rows := []report.Row{
		{
			Key:              report.Key{PersonName: "日野", ProjectName: "リブセンス", WorkloadTagName: "資料作成"},
			InternalExternal: "社外",
			ProjectCode:      "P-009",
			ProjectTagNames:  "コンサルティング, 社外",
			Memos:            "x, y",
			TotalMinutes:     60,
			TotalHours:       1.0,
		},
		{
			Key:          report.Key{PersonName: "A"},
			TotalMinutes: 125,
			TotalHours:   2.08,
		},
	}

	data, err := report.EncodeCSV(rows)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `日野,社外,リブセンス,資料作成,"コンサルティング, 社外","x, y",60,1`, lines[1])
	assert.Equal(t, "A,,,,,,125,2.08", lines[2])
}

func TestEncodeCSV_QuotesEmbeddedCommas(t *testing.T) {
	rows := []report.Row{
		{
			Key:          report.Key{PersonName: "A", ProjectName: "X, Y"},
			Memos:        "memo, with comma",
			TotalMinutes: 10,
			TotalHours:   0.17,
		},
	}

	data, err := report.EncodeCSV(rows)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"X, Y"`)
	assert.Contains(t, string(data), `"memo, with comma"`)
}
