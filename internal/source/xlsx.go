package source

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/dataview-cli/internal/dataset"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(name string) bool {
	return lowerExt(name) == ".xlsx"
}

// Load reads the selected sheet and re-encodes it as semicolon-delimited text.
func (xlsxLoader) Load(name string, content []byte, opt Options) (*Document, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", name)
	}
	sheet := ""
	if opt.Sheet != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				opt.Sheet, name, strings.Join(sheets, ", "))
		}
	} else {
		idx := opt.SheetIndex
		if idx <= 0 {
			idx = 1
		}
		if idx > len(sheets) {
			return nil, fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(sheets))
		}
		sheet = sheets[idx-1]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	text, err := dataset.Normalize(dataset.FromRecords(rows)).Encode(dataset.DefaultDelimiter)
	if err != nil {
		return nil, fmt.Errorf("encode sheet %s: %w", sheet, err)
	}
	return &Document{
		Name:           name,
		Text:           text,
		Encoding:       "utf-8",
		Delimiter:      dataset.DefaultDelimiter,
		FixedDelimiter: true,
		Sheet:          sheet,
	}, nil
}
