package spreadsheet

import (
	"errors"
	"path/filepath"
	"testing"
)

func newFixture(t *testing.T) *File {
	t.Helper()

	path := filepath.Join(t.TempDir(), "book.xlsx")
	wb := New(path)
	f := wb.Excelize()
	if _, err := f.NewSheet("Data"); err != nil {
		t.Fatalf("fixture sheet: %v", err)
	}
	f.SetCellValue("Data", "A1", "Header")
	f.SetCellValue("Data", "A2", "one")
	f.SetCellValue("Data", "B2", "two")
	if err := wb.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	return wb
}

func TestFile_HasSheet(t *testing.T) {
	wb := newFixture(t)

	if !wb.HasSheet("Data") {
		t.Errorf("Data sheet should exist")
	}
	if wb.HasSheet("Nope") {
		t.Errorf("Nope sheet should not exist")
	}
}

func TestFile_Duplicate(t *testing.T) {
	wb := newFixture(t)

	idx, err := wb.Duplicate("Data", "Copy")
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if idx < 0 {
		t.Errorf("index = %d", idx)
	}

	rows, err := wb.Rows("Copy")
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) == 0 || rows[0][0] != "Header" {
		t.Errorf("copied sheet content missing: %v", rows)
	}
}

func TestFile_Duplicate_ExistingNameFails(t *testing.T) {
	wb := newFixture(t)

	if _, err := wb.Duplicate("Data", "Data"); err == nil {
		t.Fatalf("duplicating onto an existing name should fail")
	}
}

func TestFile_Duplicate_MissingSourceFails(t *testing.T) {
	wb := newFixture(t)

	_, err := wb.Duplicate("Nope", "Copy")
	var snf *SheetNotFoundError
	if !errors.As(err, &snf) {
		t.Fatalf("expected SheetNotFoundError, got %v", err)
	}
	if snf.Name != "Nope" || len(snf.Available) == 0 {
		t.Errorf("error detail incomplete: %+v", snf)
	}
}

func TestFile_BatchWriteAndRows(t *testing.T) {
	wb := newFixture(t)

	writes := []CellWrite{
		{Sheet: "Data", Cell: "C1", Value: "three"},
		{Sheet: "Data", Cell: "C2", Value: 42},
	}
	if err := wb.BatchWrite(writes); err != nil {
		t.Fatalf("BatchWrite: %v", err)
	}

	rows, err := wb.Rows("Data")
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if rows[0][2] != "three" || rows[1][2] != "42" {
		t.Errorf("writes not visible: %v", rows)
	}
}

func TestFile_Rows_MissingSheet(t *testing.T) {
	wb := newFixture(t)

	_, err := wb.Rows("Nope")
	var snf *SheetNotFoundError
	if !errors.As(err, &snf) {
		t.Fatalf("expected SheetNotFoundError, got %v", err)
	}
}

func TestFile_SaveAndReopen(t *testing.T) {
	wb := newFixture(t)

	if err := wb.WriteCell("Data", "D1", "persisted"); err != nil {
		t.Fatalf("WriteCell: %v", err)
	}
	if err := wb.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := wb.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(wb.Path())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reopened.Close()

	rows, err := reopened.Rows("Data")
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if rows[0][3] != "persisted" {
		t.Errorf("reopened content = %v", rows)
	}
}

func TestFile_DeleteSheet(t *testing.T) {
	wb := newFixture(t)
	if _, err := wb.Duplicate("Data", "Doomed"); err != nil {
		t.Fatalf("Duplicate: %v", err)
	}

	if err := wb.DeleteSheet("Doomed"); err != nil {
		t.Fatalf("DeleteSheet: %v", err)
	}
	if wb.HasSheet("Doomed") {
		t.Errorf("sheet still present after delete")
	}
}

func TestCellName(t *testing.T) {
	tests := []struct {
		col, row int
		want     string
	}{
		{1, 1, "A1"},
		{3, 14, "C14"},
		{27, 2, "AA2"},
		{0, 1, ""},
	}
	for _, tt := range tests {
		if got := CellName(tt.col, tt.row); got != tt.want {
			t.Errorf("CellName(%d, %d) = %q, want %q", tt.col, tt.row, got, tt.want)
		}
	}
}
