package models

import (
	"fmt"
	"strings"
)

const (
	reportTimeLayout = "2006-01-02 15:04"

	// HistoryHeader opens every full-history report.
	HistoryHeader = "--- Full Workout History ---"
	// HistoryDivider separates consecutive workouts in a full-history report.
	HistoryDivider = "-----------------------------------------"
)

// SummaryReport renders the workout as plain text: title, creation time, then
// one block per exercise in logged order. It reads state only, so repeated
// calls on an unchanged workout return identical text.
func (w *Workout) SummaryReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Workout: %s\n", w.title)
	fmt.Fprintf(&b, "Date: %s\n", w.createdAt.Format(reportTimeLayout))
	if len(w.exercises) == 0 {
		b.WriteString("No exercises logged.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Exercises (%d):\n", len(w.exercises))
	for i, e := range w.exercises {
		writeExercise(&b, i+1, e)
	}
	return b.String()
}

func writeExercise(b *strings.Builder, n int, e *Exercise) {
	switch e.kind {
	case KindStrength:
		fmt.Fprintf(b, "%d. %s [%s] - %d min\n", n, e.name, e.kind, e.durationMinutes)
		for i, s := range e.strength.sets {
			fmt.Fprintf(b, "   Set %d: %s\n", i+1, s)
		}
	case KindCardio:
		fmt.Fprintf(b, "%d. %s [%s] - %d min, %s km, %d kcal\n",
			n, e.name, e.kind, e.durationMinutes, formatDecimal(e.cardio.distanceKm), e.cardio.estimatedCalories)
	}
}

// HistoryReport concatenates the summary of every workout in order, separated
// by HistoryDivider.
func HistoryReport(workouts []*Workout) string {
	var b strings.Builder
	b.WriteString(HistoryHeader)
	b.WriteString("\n\n")
	if len(workouts) == 0 {
		b.WriteString("No saved workouts.\n")
		return b.String()
	}
	for i, w := range workouts {
		if i > 0 {
			b.WriteString("\n" + HistoryDivider + "\n")
		}
		b.WriteString(w.SummaryReport())
	}
	return b.String()
}

// HistoryIndexLine is the one-line form used in the compact history list,
// e.g. "Mar 04 - Leg Day".
func (w *Workout) HistoryIndexLine() string {
	return fmt.Sprintf("%s - %s", w.createdAt.Format("Jan 02"), w.title)
}
