// Package sheet writes the per-character summary workbook.
package sheet

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the title of the only worksheet
	SheetName = "Kanji Data"

	imageSizePx    = 200
	imageRowHeight = 150 // points, about 200px
)

// Row is one character line of the workbook. ImagePath, when set, is
// embedded as a picture; otherwise Diagram is written as cell text.
type Row struct {
	Character string
	In        []string
	Out       []string
	ImagePath string
	Diagram   string
}

// Layout controls the diagram column
type Layout struct {
	DiagramHeader string
	ColumnWidth   float64
}

// DefaultLayout matches the image and text workbooks
func DefaultLayout() Layout {
	return Layout{DiagramHeader: "Diagram", ColumnWidth: 30}
}

// Write creates the workbook at path
func Write(path string, rows []Row, layout Layout) error {
	if layout.DiagramHeader == "" {
		layout.DiagramHeader = "Diagram"
	}
	if layout.ColumnWidth <= 0 {
		layout.ColumnWidth = 30
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := []string{"Kanji", "In", "Out", layout.DiagramHeader}
	for i, h := range headers {
		if err := setCell(f, i+1, 1, h); err != nil {
			return err
		}
	}

	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	for i, r := range rows {
		rowNum := i + 2
		if err := setCell(f, 1, rowNum, r.Character); err != nil {
			return err
		}
		if err := setCell(f, 2, rowNum, strings.Join(r.In, ", ")); err != nil {
			return err
		}
		if err := setCell(f, 3, rowNum, strings.Join(r.Out, ", ")); err != nil {
			return err
		}

		if r.ImagePath != "" {
			cell, err := cellName(4, rowNum)
			if err != nil {
				return err
			}
			if err := addImage(f, cell, r.ImagePath); err != nil {
				return fmt.Errorf("failed to embed diagram of %s: %w", r.Character, err)
			}
			if err := f.SetRowHeight(SheetName, rowNum, imageRowHeight); err != nil {
				return fmt.Errorf("failed to set row height: %w", err)
			}
			continue
		}
		cell, err := setCellName(f, 4, rowNum, r.Diagram)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, cell, cell, wrap); err != nil {
			return fmt.Errorf("failed to style cell %s: %w", cell, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "D", layout.ColumnWidth); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	_, err := setCellName(f, col, row, value)
	return err
}

// setCellName writes value and returns the name of the cell it went to
func setCellName(f *excelize.File, col, row int, value any) (string, error) {
	cell, err := cellName(col, row)
	if err != nil {
		return "", err
	}
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return "", fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return cell, nil
}

func cellName(col, row int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("failed to name cell (%d, %d): %w", col, row, err)
	}
	return cell, nil
}

// addImage embeds the picture scaled to 200x200 pixels
func addImage(f *excelize.File, cell, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	cfg, _, err := image.DecodeConfig(file)
	file.Close()
	if err != nil {
		return fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	opts := &excelize.GraphicOptions{ScaleX: 1, ScaleY: 1}
	if cfg.Width > 0 && cfg.Height > 0 {
		opts.ScaleX = float64(imageSizePx) / float64(cfg.Width)
		opts.ScaleY = float64(imageSizePx) / float64(cfg.Height)
	}

	if err := f.AddPicture(SheetName, cell, path, opts); err != nil {
		return fmt.Errorf("failed to add picture: %w", err)
	}
	return nil
}
