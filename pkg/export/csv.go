package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// RenderCSV serializes a row set to CSV text. The header is the row
// set's column order; absent and nil values render as empty fields,
// never the literal "null". Quoting follows RFC 4180 (fields with
// commas, quotes or newlines are wrapped, embedded quotes doubled).
//
// An empty row set yields a zero-length string, not a header-only
// file. That mirrors what the dashboards have always produced for an
// empty selection; downstream consumers rely on it.
func RenderCSV(rs RowSet) (string, error) {
	if len(rs.Rows) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(rs.Columns); err != nil {
		return "", err
	}

	record := make([]string, len(rs.Columns))
	for _, row := range rs.Rows {
		for i, col := range rs.Columns {
			record[i] = renderField(row[col])
		}
		if err := writer.Write(record); err != nil {
			return "", err
		}
	}

	writer.Flush()
	return buf.String(), writer.Error()
}

func renderField(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		return fmt.Sprintf("%g", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
