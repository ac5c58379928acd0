package oxml

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	sax "github.com/midbel/codecs/xml"

	"github.com/peternovig/formulae/formula/parse"
)

type reader struct {
	reader   *zip.Reader
	base     string
	workbook string

	// sheet name to relation id
	relations map[string]string

	err error
}

func (r *reader) ReadFile() (*File, error) {
	var file File
	r.readWorkbook(&file)
	r.readWorksheets(&file)
	if r.err != nil {
		return nil, r.err
	}
	return &file, nil
}

func (r *reader) readWorkbook(file *File) {
	addr := r.readWorkbookLocation()
	if r.invalid() {
		return
	}
	r.base = path.Dir(addr)
	r.workbook = path.Base(addr)

	var root xmlWorkbook
	if err := r.decodeXML(addr, &root); err != nil {
		return
	}
	r.relations = make(map[string]string)
	for _, xs := range root.Sheets {
		s := Sheet{
			Name:  xs.Name,
			Index: xs.Index,
		}
		file.sheets = append(file.sheets, &s)
		r.relations[xs.Name] = xs.Id
	}
}

func (r *reader) readWorksheets(file *File) {
	if r.invalid() {
		return
	}
	relations := r.readRelationsForSheets()
	if r.invalid() {
		return
	}
	for _, s := range file.sheets {
		id := r.relations[s.Name]
		ix := slices.IndexFunc(relations, func(r xmlRelation) bool {
			return r.Id == id
		})
		if ix < 0 {
			r.err = fmt.Errorf("%w: no relation for sheet %s", ErrFile, s.Name)
			return
		}
		if !isRelation(relations[ix], typeSheetUrl) {
			// chart sheets and dialog sheets have no cells
			continue
		}
		r.readWorksheet(s, relations[ix].Target)
		if r.invalid() {
			break
		}
	}
}

func (r *reader) readWorksheet(sheet *Sheet, addr string) {
	if r.invalid() {
		return
	}
	name := r.resolve(addr)
	z, err := r.openFile(name)
	if err != nil {
		r.err = err
		return
	}
	defer z.Close()

	list, err := ReadSheet(sheet.Name, z)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", name, err)
		return
	}
	sheet.Formulas = list
}

func (r *reader) readWorkbookLocation() string {
	if r.invalid() {
		return ""
	}
	var root xmlRelations
	if err := r.decodeXML(rootRels, &root); err != nil {
		r.err = nil
		return defaultWorkbook
	}
	ix := slices.IndexFunc(root.Relations, func(r xmlRelation) bool {
		return isRelation(r, typeDocUrl)
	})
	if ix < 0 {
		r.err = fmt.Errorf("%w: no office document relation", ErrFile)
		return ""
	}
	return strings.TrimPrefix(root.Relations[ix].Target, "/")
}

func (r *reader) readRelationsForSheets() []xmlRelation {
	if r.invalid() {
		return nil
	}
	var root xmlRelations
	if err := r.decodeXML(r.fromBase(path.Join("_rels", r.workbook+".rels")), &root); err != nil {
		return nil
	}
	return root.Relations
}

func (r *reader) decodeXML(name string, ptr any) error {
	if r.invalid() {
		return r.err
	}
	rs, err := r.openFile(name)
	if err != nil {
		r.err = err
		return r.err
	}
	defer rs.Close()
	if err := xml.NewDecoder(rs).Decode(ptr); err != nil {
		r.err = fmt.Errorf("%w: fail to read data from %s", ErrFile, name)
	}
	return r.err
}

func (r *reader) openFile(name string) (io.ReadCloser, error) {
	ix := slices.IndexFunc(r.reader.File, func(f *zip.File) bool {
		return f.Name == name
	})
	if ix < 0 {
		return nil, fmt.Errorf("%w: %s %w", ErrFile, name, ErrFound)
	}
	return r.reader.File[ix].Open()
}

// resolve returns the name in the archive of a relation target, targets being
// relative to the workbook directory unless they start with '/'.
func (r *reader) resolve(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return r.fromBase(target)
}

func (r *reader) fromBase(name string) string {
	if r.base == "" || r.base == "." {
		return name
	}
	return path.Join(r.base, name)
}

func (r *reader) invalid() bool {
	return r.err != nil
}

func isRelation(rel xmlRelation, url string) bool {
	return strings.HasSuffix(rel.Type, path.Base(url))
}

type sharedFormula struct {
	Cell string
	Text string
}

type sheetReader struct {
	reader *sax.Reader
	name   string

	cell           string
	formulas       []Formula
	sharedFormulas map[string]sharedFormula
}

// ReadSheet reads the worksheet part r and returns the formulas it contains
// in document order. name is only used to fill the Sheet field of each
// formula. A formula that can not be parsed is still returned with its Err
// field set.
func ReadSheet(name string, r io.Reader) ([]Formula, error) {
	rs := sheetReader{
		reader:         sax.NewReader(r),
		name:           name,
		sharedFormulas: make(map[string]sharedFormula),
	}
	if err := rs.Read(); err != nil {
		return nil, err
	}
	return rs.formulas, nil
}

func (r *sheetReader) Read() error {
	r.reader.Element(sax.LocalName("c"), r.onCell)
	return r.reader.Start()
}

func (r *sheetReader) onCell(rs *sax.Reader, el sax.E) error {
	r.cell = el.GetAttributeValue("r")
	rs.Element(sax.LocalName("f"), r.onFormula)
	return nil
}

func (r *sheetReader) onFormula(rs *sax.Reader, el sax.E) error {
	var (
		cell   = r.cell
		shared = el.GetAttributeValue("t") == "shared"
		index  = el.GetAttributeValue("si")
	)
	if el.SelfClosed {
		if !shared {
			return nil
		}
		sf, ok := r.sharedFormulas[index]
		if !ok {
			return fmt.Errorf("%s: shared formula %s not defined", cell, index)
		}
		r.append(cell, sf.Text, true)
		return nil
	}
	rs.OnText(func(_ *sax.Reader, str string) error {
		if _, ok := r.sharedFormulas[index]; shared && !ok {
			r.sharedFormulas[index] = sharedFormula{
				Cell: cell,
				Text: str,
			}
		}
		r.append(cell, str, false)
		return nil
	})
	return nil
}

func (r *sheetReader) append(cell, text string, shared bool) {
	f := Formula{
		Sheet:  r.name,
		Cell:   cell,
		Text:   text,
		Shared: shared,
	}
	f.Expr, f.Err = parse.ParseString(text)
	r.formulas = append(r.formulas, f)
}
