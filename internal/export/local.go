package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/five82/sitelens/internal/backend"
)

const sheetName = "Crawl"

// LocalBackend writes export files itself when no crawler backend is
// configured.
type LocalBackend struct {
	// Dir resolves relative paths. Empty means the working directory.
	Dir string
}

var _ backend.Exporter = LocalBackend{}

// Export writes req to disk as CSV or xlsx.
func (b LocalBackend) Export(ctx context.Context, req backend.ExportRequest) (backend.ExportResult, error) {
	if err := ctx.Err(); err != nil {
		return backend.ExportResult{}, err
	}
	path := req.Path
	if b.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(b.Dir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return backend.ExportResult{}, fmt.Errorf("create export dir: %w", err)
	}

	switch Format(req.Format) {
	case FormatCSV:
		data := req.CSV
		if data == "" {
			var err error
			data, err = EncodeCSV(headerFor(req), req.Rows)
			if err != nil {
				return backend.ExportResult{}, err
			}
		}
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			return backend.ExportResult{}, fmt.Errorf("write csv: %w", err)
		}
	case FormatXLSX:
		if err := writeWorkbook(path, headerFor(req), req.Rows); err != nil {
			return backend.ExportResult{}, err
		}
	default:
		return backend.ExportResult{}, fmt.Errorf("unsupported export format %q", req.Format)
	}

	info, err := os.Stat(path)
	if err != nil {
		return backend.ExportResult{}, fmt.Errorf("stat export: %w", err)
	}
	return backend.ExportResult{Path: path, Bytes: info.Size()}, nil
}

func headerFor(req backend.ExportRequest) []string {
	if len(req.Titles) == len(req.Columns) && len(req.Titles) > 0 {
		return req.Titles
	}
	return req.Columns
}

func writeWorkbook(path string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", n, err)
	}
	return nil
}
