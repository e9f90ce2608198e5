// Package export renders saved workouts as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/claude/gymtrack/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	SheetEntries  = "Entries"
	SheetWorkouts = "Workouts"

	dateLayout = "2006-01-02 15:04"
)

var (
	entryHeader   = []any{"Workout", "Date", "Exercise", "Kind", "Duration (min)", "Set", "Reps", "Load (kg)", "Distance (km)", "Calories"}
	workoutHeader = []any{"Workout", "Date", "Exercises", "Sets", "Volume (kg)", "Duration (min)", "Distance (km)", "Calories"}
)

// WriteHistory writes an XLSX workbook with two sheets: Entries holds one row
// per strength set or cardio exercise, Workouts holds one totals row per
// workout. Workouts with no exercises only appear on the Workouts sheet.
func WriteHistory(w io.Writer, workouts []*models.Workout) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetEntries); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetWorkouts); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	entries := [][]any{entryHeader}
	totals := [][]any{workoutHeader}
	for _, wo := range workouts {
		date := wo.CreatedAt().Format(dateLayout)
		var sets, minutes, calories int
		var volume, distance float64

		exercises := wo.Exercises()
		for _, ex := range exercises {
			minutes += ex.DurationMinutes()
			if ex.IsCardio() {
				distance += ex.DistanceKm()
				calories += ex.EstimatedCalories()
				entries = append(entries, []any{
					wo.Title(), date, ex.Name(), ex.Kind().String(), ex.DurationMinutes(),
					nil, nil, nil, ex.DistanceKm(), ex.EstimatedCalories(),
				})
				continue
			}
			for i, s := range ex.Sets() {
				sets++
				volume += float64(s.Reps()) * s.LoadKg()
				entries = append(entries, []any{
					wo.Title(), date, ex.Name(), ex.Kind().String(), ex.DurationMinutes(),
					i + 1, s.Reps(), s.LoadKg(), nil, nil,
				})
			}
		}
		totals = append(totals, []any{wo.Title(), date, len(exercises), sets, volume, minutes, distance, calories})
	}

	if err := writeSheet(f, SheetEntries, entries, bold); err != nil {
		return err
	}
	if err := writeSheet(f, SheetWorkouts, totals, bold); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	last, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "A", "C", 22); err != nil {
		return fmt.Errorf("sizing %s columns: %w", sheet, err)
	}
	return nil
}
