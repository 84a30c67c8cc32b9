package export

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// EncodeCSV writes a header line followed by the rows.
func EncodeCSV(header []string, rows [][]string) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("write csv rows: %w", err)
	}
	return b.String(), nil
}
