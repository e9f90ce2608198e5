package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/claude/gymtrack/internal/bmi"
	"github.com/claude/gymtrack/internal/export"
	"github.com/claude/gymtrack/internal/models"
	"github.com/claude/gymtrack/internal/storage"
	"github.com/go-chi/chi/v5"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrEmptyCollection), errors.Is(err, storage.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, models.ErrUnsupportedOperation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, storage.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"accounts": s.accounts != nil,
	})
}

// --- Active workout ---

func (s *Server) handleCurrentWorkout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Current().Record())
}

func (s *Server) handleWorkoutReport(w http.ResponseWriter, r *http.Request) {
	writeText(w, s.tracker.SummaryReport())
}

// logRequest is the body of POST /api/v1/workout/exercises. Kind accepts the
// same aliases as models.ParseKind.
type logRequest struct {
	Kind              string  `json:"kind"`
	Name              string  `json:"name"`
	DurationMinutes   int     `json:"duration_minutes"`
	Reps              int     `json:"reps"`
	LoadKg            float64 `json:"load_kg"`
	DistanceKm        float64 `json:"distance_km"`
	EstimatedCalories int     `json:"estimated_calories"`
}

func (req logRequest) entry() (models.LogEntry, error) {
	kind, err := models.ParseKind(req.Kind)
	if err != nil {
		return models.LogEntry{}, err
	}
	return models.LogEntry{
		Kind:              kind,
		Name:              req.Name,
		DurationMinutes:   req.DurationMinutes,
		Reps:              req.Reps,
		LoadKg:            req.LoadKg,
		DistanceKm:        req.DistanceKm,
		EstimatedCalories: req.EstimatedCalories,
	}, nil
}

func (s *Server) handleLogExercise(w http.ResponseWriter, r *http.Request) {
	var req logRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	entry, err := req.entry()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.tracker.LogExercise(entry)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	status := http.StatusCreated
	if res.Merged {
		status = http.StatusOK
	}
	writeJSON(w, status, res)
}

func (s *Server) handleRemoveLast(w http.ResponseWriter, r *http.Request) {
	res, err := s.tracker.RemoveLastLoggedItem()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSetTitle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.tracker.SetTitle(req.Title); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.Current().Record())
}

func (s *Server) handleSaveWorkout(w http.ResponseWriter, r *http.Request) {
	saved, err := s.tracker.Save(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"saved":        saved.Record(),
		"history_size": len(s.tracker.History()),
	})
}

// --- History ---

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ws := s.tracker.History()
	records := make([]models.WorkoutRecord, len(ws))
	for i, wo := range ws {
		records[i] = wo.Record()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"workouts": records,
		"index":    s.tracker.HistoryIndex(),
	})
}

func (s *Server) handleHistoryReport(w http.ResponseWriter, r *http.Request) {
	writeText(w, s.tracker.HistoryReport())
}

func (s *Server) handleHistoryExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="gymtrack-history.xlsx"`)
	if err := export.WriteHistory(w, s.tracker.History()); err != nil {
		// Headers are already out; all that is left is to log.
		s.log.Error("history export failed", "error", err)
	}
}

// --- BMI ---

type bmiRequest struct {
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
}

type bmiResponse struct {
	bmi.Result
	Plan []string `json:"plan"`
}

func (s *Server) handleBMI(w http.ResponseWriter, r *http.Request) {
	var req bmiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	res, err := bmi.Compute(req.HeightCm, req.WeightKg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bmiResponse{Result: res, Plan: bmi.Recommendation(res.Category)})
}

// --- Accounts ---

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	reg.Normalize()
	if err := reg.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	// The unique constraints still settle a race between two registrations.
	taken, err := s.accounts.UserExists(r.Context(), reg.Username, reg.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if taken {
		s.writeError(w, r, storage.ErrUserExists)
		return
	}
	u, err := s.accounts.Register(r.Context(), reg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("account registered", "user_id", u.ID, "username", u.Username)
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	u, err := s.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accountView(u))
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}
	u, err := s.accounts.GetUser(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accountView(u))
}

func (s *Server) handleUpdateMetrics(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}
	var req bmiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	u, err := s.accounts.UpdateBodyMetrics(r.Context(), id, req.HeightCm, req.WeightKg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accountView(u))
}

// accountResponse is a user plus, once body metrics are recorded, the BMI
// category and its training plan.
type accountResponse struct {
	*models.User
	Category bmi.Category `json:"category,omitempty"`
	Plan     []string     `json:"plan,omitempty"`
}

func accountView(u *models.User) accountResponse {
	resp := accountResponse{User: u}
	if u.HasBodyMetrics() {
		resp.Category = bmi.Classify(u.BMI)
		resp.Plan = bmi.Recommendation(resp.Category)
	}
	return resp
}

func userIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user ID"})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
