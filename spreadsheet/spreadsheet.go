// Package spreadsheet wraps access to the shared workbook that acts as the
// field-operations datastore. Handlers and services receive a Workbook value
// instead of opening files themselves, so tests can substitute a fixture
// workbook in a temp directory.
package spreadsheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellName converts 1-based column/row coordinates to an A1-style reference.
// Invalid coordinates yield an empty string.
func CellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	return name
}

// CellWrite is a single cell assignment inside a batch.
type CellWrite struct {
	Sheet string
	Cell  string
	Value any
}

// Workbook is the operation surface the recap engine needs from the shared
// spreadsheet. Implementations must keep sheet names unique.
type Workbook interface {
	// SheetNames returns all sheet names in workbook order.
	SheetNames() []string
	// HasSheet reports whether a sheet with the given name exists.
	HasSheet(name string) bool
	// Duplicate copies srcName into a new sheet called newName and returns
	// the new sheet's index. It fails when newName is already taken.
	Duplicate(srcName, newName string) (int, error)
	// BatchWrite applies all writes. Implementations may apply them one by
	// one; callers must not rely on partial-failure bookkeeping.
	BatchWrite(writes []CellWrite) error
	// WriteCell sets a single cell value.
	WriteCell(sheet, cell string, value any) error
	// Rows returns all populated rows of a sheet as strings.
	Rows(sheet string) ([][]string, error)
	// DeleteSheet removes a sheet by name.
	DeleteSheet(name string) error
	// Save persists pending changes.
	Save() error
}

// SheetNotFoundError reports a lookup against a sheet name that does not
// exist, carrying the available names for diagnostics.
type SheetNotFoundError struct {
	Name      string
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// File is a Workbook backed by an .xlsx file via excelize.
type File struct {
	f    *excelize.File
	path string
}

// Open loads the workbook at path.
func Open(path string) (*File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &File{f: f, path: path}, nil
}

// New creates an empty workbook that will be saved to path.
func New(path string) *File {
	return &File{f: excelize.NewFile(), path: path}
}

// Path returns the backing file path.
func (w *File) Path() string { return w.path }

// Excelize exposes the underlying excelize file for fixture setup in tests.
func (w *File) Excelize() *excelize.File { return w.f }

func (w *File) SheetNames() []string { return w.f.GetSheetList() }

func (w *File) HasSheet(name string) bool {
	idx, err := w.f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

func (w *File) Duplicate(srcName, newName string) (int, error) {
	if w.HasSheet(newName) {
		return 0, fmt.Errorf("sheet %q already exists", newName)
	}
	srcIdx, err := w.f.GetSheetIndex(srcName)
	if err != nil || srcIdx < 0 {
		return 0, &SheetNotFoundError{Name: srcName, Available: w.SheetNames()}
	}
	dstIdx, err := w.f.NewSheet(newName)
	if err != nil {
		return 0, fmt.Errorf("create sheet %q: %w", newName, err)
	}
	if err := w.f.CopySheet(srcIdx, dstIdx); err != nil {
		// Leave no half-made sheet behind.
		if delErr := w.f.DeleteSheet(newName); delErr != nil {
			return 0, fmt.Errorf("copy sheet %q -> %q: %w (cleanup failed: %v)", srcName, newName, err, delErr)
		}
		return 0, fmt.Errorf("copy sheet %q -> %q: %w", srcName, newName, err)
	}
	return dstIdx, nil
}

func (w *File) BatchWrite(writes []CellWrite) error {
	for _, cw := range writes {
		if err := w.f.SetCellValue(cw.Sheet, cw.Cell, cw.Value); err != nil {
			return fmt.Errorf("write %s!%s: %w", cw.Sheet, cw.Cell, err)
		}
	}
	return nil
}

func (w *File) WriteCell(sheet, cell string, value any) error {
	if err := w.f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
	}
	return nil
}

func (w *File) Rows(sheet string) ([][]string, error) {
	if !w.HasSheet(sheet) {
		return nil, &SheetNotFoundError{Name: sheet, Available: w.SheetNames()}
	}
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows of %s: %w", sheet, err)
	}
	return rows, nil
}

func (w *File) DeleteSheet(name string) error {
	if err := w.f.DeleteSheet(name); err != nil {
		return fmt.Errorf("delete sheet %q: %w", name, err)
	}
	return nil
}

func (w *File) Save() error {
	if err := w.f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	return nil
}

// Close releases the underlying file resources without saving.
func (w *File) Close() error { return w.f.Close() }
