// Package oxml extracts the formulas stored in the worksheets of an Office
// Open XML workbook.
package oxml

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/peternovig/formulae/formula/ast"
)

var (
	ErrFile  = errors.New("invalid xlsx file")
	ErrFound = errors.New("not found")
)

// Formula is a formula found in a cell. Text is the formula as written in
// the worksheet, without the leading '='. Expr is nil when Text could not be
// parsed, Err then holds the reason.
//
// Cells filled from a shared formula get the text of the cell defining it
// and have Shared set.
type Formula struct {
	Sheet  string
	Cell   string
	Text   string
	Expr   ast.Expr
	Err    error
	Shared bool
}

func (f Formula) String() string {
	if f.Sheet == "" {
		return fmt.Sprintf("%s: =%s", f.Cell, f.Text)
	}
	return fmt.Sprintf("%s!%s: =%s", f.Sheet, f.Cell, f.Text)
}

type Sheet struct {
	Name     string
	Index    int
	Formulas []Formula
}

type File struct {
	sheets []*Sheet
}

// Open reads every worksheet of the workbook stored in file.
func Open(file string) (*File, error) {
	z, err := zip.OpenReader(file)
	if err != nil {
		return nil, err
	}
	defer z.Close()
	return readFile(&z.Reader)
}

// NewReader reads a workbook from r, size being the length of the archive.
func NewReader(r io.ReaderAt, size int64) (*File, error) {
	z, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFile, err)
	}
	return readFile(z)
}

func readFile(z *zip.Reader) (*File, error) {
	rs := reader{
		reader: z,
	}
	return rs.ReadFile()
}

func (f *File) Sheets() []*Sheet {
	return slices.Clone(f.sheets)
}

func (f *File) Sheet(name string) (*Sheet, error) {
	ix := slices.IndexFunc(f.sheets, func(s *Sheet) bool {
		return s.Name == name
	})
	if ix < 0 {
		return nil, fmt.Errorf("sheet %s %w", name, ErrFound)
	}
	return f.sheets[ix], nil
}

// Formulas returns the formulas of all sheets in workbook order.
func (f *File) Formulas() []Formula {
	var list []Formula
	for _, s := range f.sheets {
		list = append(list, s.Formulas...)
	}
	return list
}
