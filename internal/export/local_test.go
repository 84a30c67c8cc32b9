package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/five82/sitelens/internal/backend"
)

func TestLocalBackend_WritesCSV(t *testing.T) {
	dir := t.TempDir()
	b := LocalBackend{Dir: dir}

	res, err := b.Export(context.Background(), backend.ExportRequest{
		Format:  "csv",
		Path:    "nested/out.csv",
		Columns: []string{"url"},
		CSV:     "URL\nhttps://a\n",
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if res.Path != filepath.Join(dir, "nested", "out.csv") || res.Bytes != 16 {
		t.Fatalf("result = %+v", res)
	}
	data, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "URL\nhttps://a\n" {
		t.Fatalf("file = %q", data)
	}
}

func TestLocalBackend_WritesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crawl.xlsx")
	rows := [][]string{{"https://a", "200"}, {"https://b", "404"}}

	res, err := LocalBackend{}.Export(context.Background(), backend.ExportRequest{
		Format:  "xlsx",
		Path:    path,
		Columns: []string{"url", "status"},
		Titles:  []string{"URL", "Status"},
		Rows:    rows,
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if res.Bytes <= 0 {
		t.Fatalf("Bytes = %d, want > 0", res.Bytes)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer func() { _ = f.Close() }()
	got, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	want := [][]string{{"URL", "Status"}, {"https://a", "200"}, {"https://b", "404"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sheet mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalBackend_RejectsUnknownFormat(t *testing.T) {
	_, err := LocalBackend{}.Export(context.Background(), backend.ExportRequest{
		Format: "pdf",
		Path:   filepath.Join(t.TempDir(), "x.pdf"),
	})
	if err == nil {
		t.Fatalf("Export returned nil error for pdf")
	}
}
