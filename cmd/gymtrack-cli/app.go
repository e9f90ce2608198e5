package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/claude/gymtrack/internal/bmi"
	"github.com/claude/gymtrack/internal/models"
	"github.com/claude/gymtrack/internal/tracker"
)

type styles struct {
	title lipgloss.Style
	menu  lipgloss.Style
	ok    lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
	dim   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		menu:  r.NewStyle().Foreground(lipgloss.Color("7")),
		ok:    r.NewStyle().Foreground(lipgloss.Color("10")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("11")),
		err:   r.NewStyle().Foreground(lipgloss.Color("9")),
		dim:   r.NewStyle().Faint(true),
	}
}

// app is the menu loop. Every prompt re-asks until it gets a usable answer
// or input ends.
type app struct {
	tr     *tracker.Tracker
	in     *bufio.Scanner
	out    io.Writer
	styles styles
}

func newApp(tr *tracker.Tracker, in io.Reader, out io.Writer) *app {
	return &app{
		tr:     tr,
		in:     bufio.NewScanner(in),
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

type menuItem struct {
	key    string
	label  string
	action func(ctx context.Context) bool
}

func (a *app) menu() []menuItem {
	return []menuItem{
		{"1", "Log strength exercise", func(context.Context) bool { return a.logStrength() }},
		{"2", "Log cardio exercise", func(context.Context) bool { return a.logCardio() }},
		{"3", "Remove last logged item", func(context.Context) bool { a.removeLast(); return true }},
		{"4", "Rename workout", func(context.Context) bool { return a.rename() }},
		{"5", "Show current workout", func(context.Context) bool { a.print(a.tr.SummaryReport()); return true }},
		{"6", "Save workout", func(ctx context.Context) bool { a.save(ctx); return true }},
		{"7", "Show full history", func(context.Context) bool { a.print(a.tr.HistoryReport()); return true }},
		{"8", "List saved workouts", func(context.Context) bool { a.listHistory(); return true }},
		{"9", "BMI calculator", func(context.Context) bool { return a.computeBMI() }},
		{"q", "Quit", nil},
	}
}

func (a *app) run(ctx context.Context) error {
	items := a.menu()
	for {
		a.print("")
		a.print(a.styles.title.Render("GymTrack - " + a.tr.Current().Title()))
		for _, it := range items {
			a.print(a.styles.menu.Render(fmt.Sprintf("  %s) %s", it.key, it.label)))
		}
		choice, ok := a.prompt("Choose")
		if !ok {
			return a.in.Err()
		}

		var selected *menuItem
		for i := range items {
			if strings.EqualFold(items[i].key, choice) {
				selected = &items[i]
			}
		}
		switch {
		case selected == nil:
			a.fail(fmt.Sprintf("Unknown option %q.", choice))
		case selected.action == nil:
			a.quitWarning()
			return nil
		case !selected.action(ctx):
			// Input ended in the middle of a prompt.
			return a.in.Err()
		}
	}
}

func (a *app) quitWarning() {
	if cur := a.tr.Current(); !cur.IsEmpty() {
		a.warn(fmt.Sprintf("Unsaved workout %q discarded (%d exercises).", cur.Title(), cur.Len()))
	}
	a.print(a.styles.dim.Render("Bye."))
}

func (a *app) logStrength() bool {
	name, ok := a.promptText("Exercise name")
	if !ok {
		return false
	}
	duration, ok := a.promptInt("Duration (min)", 1)
	if !ok {
		return false
	}
	reps, ok := a.promptInt("Reps", 1)
	if !ok {
		return false
	}
	load, ok := a.promptFloat("Load (kg)")
	if !ok {
		return false
	}
	a.logEntry(models.LogEntry{Kind: models.KindStrength, Name: name, DurationMinutes: duration, Reps: reps, LoadKg: load})
	return true
}

func (a *app) logCardio() bool {
	name, ok := a.promptText("Exercise name")
	if !ok {
		return false
	}
	duration, ok := a.promptInt("Duration (min)", 1)
	if !ok {
		return false
	}
	distance, ok := a.promptFloat("Distance (km)")
	if !ok {
		return false
	}
	calories, ok := a.promptInt("Estimated calories", 1)
	if !ok {
		return false
	}
	a.logEntry(models.LogEntry{Kind: models.KindCardio, Name: name, DurationMinutes: duration, DistanceKm: distance, EstimatedCalories: calories})
	return true
}

func (a *app) logEntry(entry models.LogEntry) {
	res, err := a.tr.LogExercise(entry)
	if err != nil {
		a.fail(err.Error())
		return
	}
	if res.Merged {
		a.success(fmt.Sprintf("Added set %d to %s.", res.SetCount, res.Name))
		return
	}
	a.success(fmt.Sprintf("Logged %s (%s).", res.Name, res.Kind))
}

func (a *app) removeLast() {
	res, err := a.tr.RemoveLastLoggedItem()
	if err != nil {
		a.fail(err.Error())
		return
	}
	if res.Removal == models.RemovedExercise {
		a.success(fmt.Sprintf("Removed %s (%s), its last set.", res.ExerciseName, res.Set))
		return
	}
	a.success(fmt.Sprintf("Removed %s from %s, %d sets left.", res.Set, res.ExerciseName, res.RemainingSets))
}

func (a *app) rename() bool {
	title, ok := a.promptText("New title")
	if !ok {
		return false
	}
	if err := a.tr.SetTitle(title); err != nil {
		a.fail(err.Error())
		return true
	}
	a.success("Workout renamed.")
	return true
}

func (a *app) save(ctx context.Context) {
	saved, err := a.tr.Save(ctx)
	if err != nil {
		a.fail(err.Error())
		return
	}
	a.success(fmt.Sprintf("Saved %q. A new workout has started.", saved.Title()))
}

func (a *app) listHistory() {
	lines := a.tr.HistoryIndex()
	if len(lines) == 0 {
		a.print("No saved workouts.")
		return
	}
	for _, l := range lines {
		a.print("  " + l)
	}
}

func (a *app) computeBMI() bool {
	height, ok := a.promptFloat("Height (cm)")
	if !ok {
		return false
	}
	weight, ok := a.promptFloat("Weight (kg)")
	if !ok {
		return false
	}
	res, err := bmi.Compute(height, weight)
	if err != nil {
		a.fail(err.Error())
		return true
	}
	a.print(a.styles.title.Render(res.String()))
	for _, line := range bmi.Recommendation(res.Category) {
		a.print("  - " + line)
	}
	return true
}

// --- prompts ---

func (a *app) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, label+": ")
	if !a.in.Scan() {
		fmt.Fprintln(a.out)
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *app) promptText(label string) (string, bool) {
	for {
		s, ok := a.prompt(label)
		if !ok {
			return "", false
		}
		if s != "" {
			return s, true
		}
		a.fail(label + " cannot be blank.")
	}
}

func (a *app) promptInt(label string, floor int) (int, bool) {
	for {
		s, ok := a.prompt(label)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(s)
		if err == nil && n >= floor {
			return n, true
		}
		a.fail(fmt.Sprintf("Enter a whole number of at least %d.", floor))
	}
}

// promptFloat asks for a finite number greater than zero.
func (a *app) promptFloat(label string) (float64, bool) {
	for {
		s, ok := a.prompt(label)
		if !ok {
			return 0, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err == nil && v > 0 && !math.IsInf(v, 0) {
			return v, true
		}
		a.fail("Enter a number greater than 0.")
	}
}

func (a *app) print(s string)   { fmt.Fprintln(a.out, s) }
func (a *app) success(s string) { a.print(a.styles.ok.Render(s)) }
func (a *app) warn(s string)    { a.print(a.styles.warn.Render(s)) }
func (a *app) fail(s string)    { a.print(a.styles.err.Render(s)) }
