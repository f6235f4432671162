package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet — лист выгрузки. Значения строк пишутся с сохранением типа
// (числа остаются числами, nil — пустая ячейка).
type Sheet struct {
	Title  string
	Header []string
	Rows   [][]any
}

type Workbook struct {
	File *excelize.File
}

func NewWorkbook(sheets []Sheet) (*Workbook, error) {
	f := excelize.NewFile()
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Title); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.Title); err != nil {
			return nil, fmt.Errorf("new sheet %s: %w", s.Title, err)
		}
		for c, h := range s.Header {
			if err := f.SetCellStr(s.Title, cell(c+1, 1), h); err != nil {
				return nil, fmt.Errorf("set header %s: %w", cell(c+1, 1), err)
			}
		}
		for r, row := range s.Rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				if err := f.SetCellValue(s.Title, cell(c+1, r+2), v); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell(c+1, r+2), err)
				}
			}
		}
		if err := ApplyDefaultFormatting(f, s.Title); err != nil {
			return nil, fmt.Errorf("format %s: %w", s.Title, err)
		}
	}
	return &Workbook{File: f}, nil
}

func (w *Workbook) WriteTo(dst io.Writer) (int64, error) {
	return w.File.WriteTo(dst)
}

func (w *Workbook) Close() error { return w.File.Close() }
