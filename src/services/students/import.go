package students

import (
	"strings"

	"github.com/Adribv/Placement-Site-Backend/src/models"
)

// Spreadsheet column headers. The odd truncated names come from the upload
// template the placement office uses; do not "fix" them.
const (
	colRegNo       = "Register N"
	colName        = "Name"
	colDepartment  = "Departme"
	colLocation    = "Location"
	colBatch       = "Batch"
	colPassoutYear = "Passout Ye"
	colEmail       = "email"
)

// batchMap expands the batch-code abbreviations used in upload sheets.
// Unknown codes pass through unchanged.
var batchMap = map[string]string{
	"M":  "Marquee",
	"S":  "Super Dream",
	"D":  "Dream",
	"Se": "Service",
	"NA": "General",
}

// MapBatchCode resolves a batch-code abbreviation to its canonical name.
func MapBatchCode(code string) string {
	if name, ok := batchMap[code]; ok {
		return name
	}
	return code
}

type importRow struct {
	Name        string
	RegNo       string
	Email       string
	Department  string
	Location    string
	BatchCode   string
	Batch       string
	PassoutYear string
	Raw         map[string]string
}

func parseImportRow(raw map[string]string) importRow {
	row := importRow{
		Name:        strings.TrimSpace(raw[colName]),
		RegNo:       strings.TrimSpace(raw[colRegNo]),
		Email:       strings.TrimSpace(raw[colEmail]),
		Department:  strings.TrimSpace(raw[colDepartment]),
		Location:    strings.TrimSpace(raw[colLocation]),
		BatchCode:   strings.TrimSpace(raw[colBatch]),
		PassoutYear: strings.TrimSpace(raw[colPassoutYear]),
		Raw:         raw,
	}
	row.Batch = MapBatchCode(row.BatchCode)
	return row
}

// isEmpty reports a row with every recognized field blank. Such rows are
// skipped silently - they are not failures.
func (r importRow) isEmpty() bool {
	return r.Name == "" && r.RegNo == "" && r.Email == "" && r.Department == "" &&
		r.Location == "" && r.BatchCode == "" && r.PassoutYear == ""
}

func (r importRow) missingRequired() bool {
	return r.Name == "" || r.RegNo == "" || r.Email == "" || r.Department == "" ||
		r.Location == "" || r.Batch == "" || r.PassoutYear == ""
}

// validateImportRows sifts spreadsheet rows into import candidates and
// per-row errors. Row numbers are spreadsheet positions: the header row is 1,
// so data row idx maps to idx+2. A regNo repeated inside the same sheet
// fails its later occurrences up front rather than at insert time.
func validateImportRows(rows []map[string]string) ([]importRow, []models.ImportRowError) {
	var candidates []importRow
	var rowErrors []models.ImportRowError
	seen := make(map[string]bool)

	for idx, raw := range rows {
		row := parseImportRow(raw)
		if row.isEmpty() {
			continue
		}
		if row.missingRequired() {
			rowErrors = append(rowErrors, models.ImportRowError{
				Row:   idx + 2,
				Error: "Missing required fields",
				Data:  raw,
			})
			continue
		}
		if seen[row.RegNo] {
			rowErrors = append(rowErrors, models.ImportRowError{
				Row:   idx + 2,
				Error: "Duplicate registration number in sheet",
				Data:  raw,
			})
			continue
		}
		seen[row.RegNo] = true
		candidates = append(candidates, row)
	}
	return candidates, rowErrors
}
