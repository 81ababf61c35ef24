package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// csvHeader is the fixed 8-column report schema. Column names match the
// spreadsheet the report feeds.
var csvHeader = []string{
	"対象従業員",
	"社内/社外",
	"プロジェクト",
	"工数タグ",
	"プロジェクトタグ",
	"業務内容",
	"合計工数（分）",
	"合計工数（時間）",
}

// EncodeCSV serializes rows as UTF-8 CSV. The header row is always present,
// even for zero rows; callers that want to skip empty reports should do so
// before encoding.
func EncodeCSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Key.PersonName,
			r.InternalExternal,
			r.Key.ProjectName,
			r.Key.WorkloadTagName,
			r.ProjectTagNames,
			r.Memos,
			strconv.Itoa(r.TotalMinutes),
			strconv.FormatFloat(r.TotalHours, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}
