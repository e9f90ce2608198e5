package mcp

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/claude/gymtrack/internal/bmi"
	"github.com/claude/gymtrack/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolLogExercise = mcp.NewTool("log_exercise",
	mcp.WithDescription("Log an exercise into the active workout. A strength exercise whose name matches one already logged (ignoring case) gets a new set appended and its duration replaced; otherwise a new exercise is added. Cardio is always added as a new exercise."),
	mcp.WithString("kind", mcp.Required(), mcp.Description("Exercise kind"), mcp.Enum("strength", "cardio")),
	mcp.WithString("name", mcp.Required(), mcp.Description("Exercise name, e.g. Squat or Running")),
	mcp.WithNumber("duration_minutes", mcp.Required(), mcp.Description("Duration in whole minutes, at least 1")),
	mcp.WithNumber("reps", mcp.Description("Strength only: repetitions in the set, at least 1")),
	mcp.WithNumber("load_kg", mcp.Description("Strength only: load in kilograms, greater than 0")),
	mcp.WithNumber("distance_km", mcp.Description("Cardio only: distance in kilometres, greater than 0")),
	mcp.WithNumber("estimated_calories", mcp.Description("Cardio only: estimated calories burned, at least 1")),
)

var toolRemoveLastItem = mcp.NewTool("remove_last_item",
	mcp.WithDescription("Undo the most recent set of the last logged strength exercise. The exercise is removed too when its last set goes. Cardio exercises cannot be undone this way."),
)

var toolSetWorkoutTitle = mcp.NewTool("set_workout_title",
	mcp.WithDescription("Rename the active workout."),
	mcp.WithString("title", mcp.Required(), mcp.Description("New title, not blank")),
)

var toolGetWorkoutReport = mcp.NewTool("get_workout_report",
	mcp.WithDescription("Plain-text summary of the active workout: title, date and every exercise with its sets."),
)

var toolSaveWorkout = mcp.NewTool("save_workout",
	mcp.WithDescription("Save the active workout to history and start a new one. Fails for a workout with no exercises."),
)

var toolGetHistoryReport = mcp.NewTool("get_history_report",
	mcp.WithDescription("Plain-text report of every saved workout in order."),
)

var toolComputeBMI = mcp.NewTool("compute_bmi",
	mcp.WithDescription("Compute body mass index from height and weight. Returns the value, its category and a training plan for that category."),
	mcp.WithNumber("height_cm", mcp.Required(), mcp.Description("Height in centimetres")),
	mcp.WithNumber("weight_kg", mcp.Required(), mcp.Description("Weight in kilograms")),
)

// --- Tool handlers ---

// toolError turns a model error into a tool error result. Only unexpected
// failures are logged; rejected input is the caller's to fix.
func (h *handlers) toolError(tool string, err error) *mcp.CallToolResult {
	if !errors.Is(err, models.ErrInvalidArgument) &&
		!errors.Is(err, models.ErrEmptyCollection) &&
		!errors.Is(err, models.ErrUnsupportedOperation) {
		h.log.Error("mcp "+tool, "error", err)
	}
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(v any) *mcp.CallToolResult {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed")
	}
	return result
}

// wholeArg reads a numeric argument that must be a whole number. JSON numbers
// arrive as float64; fractions and values outside the int32 range are
// rejected instead of truncated. A missing argument reads as 0.
func wholeArg(req mcp.CallToolRequest, name string) (int, error) {
	v := req.GetFloat(name, 0)
	if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %g", models.ErrInvalidArgument, name, v)
	}
	return int(v), nil
}

func (h *handlers) logExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kindStr, err := req.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("kind parameter is required"), nil
	}
	kind, err := models.ParseKind(kindStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	if _, err := req.RequireFloat("duration_minutes"); err != nil {
		return mcp.NewToolResultError("duration_minutes parameter is required"), nil
	}

	entry := models.LogEntry{Kind: kind, Name: name}
	if entry.DurationMinutes, err = wholeArg(req, "duration_minutes"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	switch kind {
	case models.KindStrength:
		if entry.Reps, err = wholeArg(req, "reps"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		entry.LoadKg = req.GetFloat("load_kg", 0)
	case models.KindCardio:
		entry.DistanceKm = req.GetFloat("distance_km", 0)
		if entry.EstimatedCalories, err = wholeArg(req, "estimated_calories"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	res, err := h.ds.LogExercise(ctx, entry)
	if err != nil {
		return h.toolError("log_exercise", err), nil
	}
	return jsonResult(res), nil
}

func (h *handlers) removeLastItem(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := h.ds.RemoveLastLoggedItem(ctx)
	if err != nil {
		return h.toolError("remove_last_item", err), nil
	}
	return jsonResult(res), nil
}

func (h *handlers) setWorkoutTitle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title parameter is required"), nil
	}
	if err := h.ds.SetTitle(ctx, title); err != nil {
		return h.toolError("set_workout_title", err), nil
	}
	return mcp.NewToolResultText("Workout renamed to " + title), nil
}

func (h *handlers) getWorkoutReport(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := h.ds.WorkoutReport(ctx)
	if err != nil {
		return h.toolError("get_workout_report", err), nil
	}
	return mcp.NewToolResultText(report), nil
}

func (h *handlers) saveWorkout(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := h.ds.SaveWorkout(ctx)
	if err != nil {
		return h.toolError("save_workout", err), nil
	}
	return jsonResult(rec), nil
}

func (h *handlers) getHistoryReport(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := h.ds.HistoryReport(ctx)
	if err != nil {
		return h.toolError("get_history_report", err), nil
	}
	return mcp.NewToolResultText(report), nil
}

// bmiResult is the compute_bmi payload.
type bmiResult struct {
	bmi.Result
	Plan []string `json:"plan"`
}

func (h *handlers) computeBMI(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	height, err := req.RequireFloat("height_cm")
	if err != nil {
		return mcp.NewToolResultError("height_cm parameter is required"), nil
	}
	weight, err := req.RequireFloat("weight_kg")
	if err != nil {
		return mcp.NewToolResultError("weight_kg parameter is required"), nil
	}
	res, err := bmi.Compute(height, weight)
	if err != nil {
		return h.toolError("compute_bmi", err), nil
	}
	return jsonResult(bmiResult{Result: res, Plan: bmi.Recommendation(res.Category)}), nil
}
