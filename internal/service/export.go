package service

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Thimira-N/todo-cabin/internal/model"
)

const exportSheet = "Minute Tracker"

// BuildWorkbook renders tracked entries as a spreadsheet: one row per
// member task, blank task slots skipped. memberName resolves a member
// id to its display name; unknown ids fall back to the raw id.
func BuildWorkbook(entries []model.MinuteTrackerEntry, memberName func(id string) string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"Date", "Priority", "Estimated Minutes", "Member", "Task Number", "Task Description"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, e := range entries {
		for _, memberID := range e.Members {
			name := memberID
			if memberName != nil {
				if n := memberName(memberID); n != "" {
					name = n
				}
			}
			taskNo := 0
			for _, task := range e.Tasks[memberID] {
				if strings.TrimSpace(task) == "" {
					continue
				}
				taskNo++
				cell, err := excelize.CoordinatesToCellName(1, row)
				if err != nil {
					return nil, fmt.Errorf("cell name: %w", err)
				}
				values := []any{e.Date, string(e.Priority), e.EstimatedMinutes, name, taskNo, task}
				if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
					return nil, fmt.Errorf("write row %d: %w", row, err)
				}
				row++
			}
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "F", 18); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}
	return f, nil
}
