package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ParseSheetRows reads the first sheet of an xlsx file into ordered rows keyed
// by the header row. Missing cells come back as "" so row validation can
// treat short rows and blank cells the same way.
func ParseSheetRows(path string) ([]map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(raw) == 0 {
		return []map[string]string{}, nil
	}

	headers := raw[0]
	rows := make([]map[string]string, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SaveUploadedFile writes an uploaded file under dir with a random name and
// returns its path. Callers must remove the file themselves (defer
// os.Remove) so it is released on every exit path.
func SaveUploadedFile(fileHeader *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	path := filepath.Join(dir, uuid.NewString()+filepath.Ext(fileHeader.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
