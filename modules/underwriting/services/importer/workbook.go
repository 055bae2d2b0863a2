package importer

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetSpec declares one required sheet of the workbook template: its name,
// the columns that must be present, and whether the first row beneath the
// header is a non-data description row to skip.
type SheetSpec struct {
	Name           string
	Required       []string
	Optional       []string
	DescriptionRow bool
}

// Row is one data row keyed by column header. Number is 1-based, counted from
// the first row beneath the header, so it matches what the template author
// sees in Excel minus the header row. A skipped description row keeps its
// number; data then starts at 2.
type Row struct {
	Number int
	Cells  map[string]string
}

// Get returns the trimmed cell value for the column, or "" when absent.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r.Cells[column])
}

func (r Row) Blank() bool {
	for _, v := range r.Cells {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Workbook wraps an open spreadsheet. The header row is fixed at index 0.
type Workbook struct {
	file *excelize.File
}

// Open parses the workbook at path. A file that cannot be parsed as a
// spreadsheet is a structural failure.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewStructuralError("cannot read workbook: " + err.Error())
	}
	return &Workbook{file: f}, nil
}

// OpenReader parses a workbook from an in-memory stream.
func OpenReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, NewStructuralError("cannot read workbook: " + err.Error())
	}
	return &Workbook{file: f}, nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

func (w *Workbook) HasSheet(name string) bool {
	for _, s := range w.SheetNames() {
		if s == name {
			return true
		}
	}
	return false
}

// Headers returns the header row of the sheet, trimmed.
func (w *Workbook) Headers(sheet string) ([]string, error) {
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, NewStructuralError("cannot read sheet " + sheet + ": " + err.Error())
	}
	if len(rows) == 0 {
		return nil, nil
	}
	headers := make([]string, 0, len(rows[0]))
	for _, h := range rows[0] {
		headers = append(headers, strings.TrimSpace(h))
	}
	return headers, nil
}

// Rows yields the sheet's data rows in file order, mapped by header. Blank
// rows are dropped; the declared description row is skipped but keeps its
// number so audit records line up with the file.
func (w *Workbook) Rows(spec SheetSpec) ([]Row, error) {
	raw, err := w.file.GetRows(spec.Name)
	if err != nil {
		return nil, NewStructuralError("cannot read sheet " + spec.Name + ": " + err.Error())
	}
	if len(raw) == 0 {
		return nil, nil
	}

	headers := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		headers[i] = strings.TrimSpace(h)
	}

	out := make([]Row, 0, len(raw)-1)
	for i, cells := range raw[1:] {
		number := i + 1
		if spec.DescriptionRow && number == 1 {
			continue
		}
		row := Row{Number: number, Cells: make(map[string]string, len(headers))}
		for j, header := range headers {
			if header == "" {
				continue
			}
			if j < len(cells) {
				row.Cells[header] = cells[j]
			} else {
				row.Cells[header] = ""
			}
		}
		if row.Blank() {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}
