package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/asthmaguard/asthmaguard/internal/domain/account"
	"github.com/asthmaguard/asthmaguard/internal/domain/act"
	"github.com/asthmaguard/asthmaguard/internal/domain/peakflow"
)

const (
	sheetProfile  = "Profile"
	sheetReadings = "Peak Flow History"
	sheetScores   = "ACT Scores"
)

var readingsHeader = []string{"Recorded At", "Reading (L/min)", "Zone"}
var scoresHeader = []string{"Taken At", "Q1", "Q2", "Q3", "Q4", "Q5", "Total", "Interpretation"}

// EmergencyInfo carries the patient details that are supplied per
// export rather than stored: city, blood group, and known triggers.
type EmergencyInfo struct {
	City       string
	BloodGroup string
	Triggers   []string
}

// Workbook renders the patient's full record as an Excel document.
func Workbook(profile *account.Account, info EmergencyInfo, readings []peakflow.Reading, scores []act.Score) ([]byte, error) {
	f := excelize.NewFile()

	if err := writeProfileSheet(f, profile, info); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeReadingsSheet(f, readings); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeScoresSheet(f, scores); err != nil {
		f.Close()
		return nil, err
	}

	// excelize always starts with Sheet1; our own sheets replace it.
	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(sheetProfile); err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

func writeHeader(f *excelize.File, sheet string, header []string) error {
	style, err := headerStyle(f)
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("style header %s: %w", cell, err)
		}
	}
	return nil
}

func writeProfileSheet(f *excelize.File, profile *account.Account, info EmergencyInfo) error {
	if _, err := f.NewSheet(sheetProfile); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheetProfile, err)
	}

	rows := [][]any{
		{"Patient", profile.FullName},
		{"Email", profile.Email},
	}
	if profile.DoctorPhone != nil {
		rows = append(rows, []any{"Doctor Phone", *profile.DoctorPhone})
	}
	if profile.PersonalBest != nil {
		rows = append(rows, []any{"Personal Best (L/min)", *profile.PersonalBest})
	}
	if info.City != "" {
		rows = append(rows, []any{"City", info.City})
	}
	if info.BloodGroup != "" {
		rows = append(rows, []any{"Blood Group", info.BloodGroup})
	}
	if len(info.Triggers) > 0 {
		rows = append(rows, []any{"Triggers", strings.Join(info.Triggers, ", ")})
	}
	rows = append(rows, []any{"Exported", time.Now().Format(time.RFC3339)})

	for i, row := range rows {
		if err := f.SetSheetRow(sheetProfile, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("profile row %d: %w", i+1, err)
		}
	}
	return f.SetColWidth(sheetProfile, "A", "B", 28)
}

func writeReadingsSheet(f *excelize.File, readings []peakflow.Reading) error {
	if _, err := f.NewSheet(sheetReadings); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheetReadings, err)
	}
	if err := writeHeader(f, sheetReadings, readingsHeader); err != nil {
		return err
	}

	for i, rd := range readings {
		row := []any{rd.RecordedAt.Format(time.RFC3339), rd.Value, string(rd.Zone)}
		if err := f.SetSheetRow(sheetReadings, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("reading row %d: %w", i+2, err)
		}
	}
	return f.SetColWidth(sheetReadings, "A", "C", 22)
}

func writeScoresSheet(f *excelize.File, scores []act.Score) error {
	if _, err := f.NewSheet(sheetScores); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheetScores, err)
	}
	if err := writeHeader(f, sheetScores, scoresHeader); err != nil {
		return err
	}

	for i, sc := range scores {
		row := []any{sc.TakenAt.Format(time.RFC3339)}
		for _, a := range sc.Answers {
			row = append(row, a)
		}
		for len(row) < len(scoresHeader)-2 {
			row = append(row, "")
		}
		row = append(row, sc.Total, act.Interpretation(sc.Total))
		if err := f.SetSheetRow(sheetScores, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("score row %d: %w", i+2, err)
		}
	}
	return f.SetColWidth(sheetScores, "A", "H", 16)
}
