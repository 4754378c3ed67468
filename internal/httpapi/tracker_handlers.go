// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package httpapi

import (
	"net/http"

	"github.com/oklog/ulid/v2"

	"github.com/deepworktimer/deepworktimer/internal/tracker"
)

// pathID parses the {id} path segment. On failure it writes a 400 and
// returns false.
func pathID(w http.ResponseWriter, r *http.Request) (ulid.ULID, bool) {
	id, err := ulid.Parse(r.PathValue("id"))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid id")
		return ulid.ULID{}, false
	}
	return id, true
}

// selectHandler builds the select endpoint for one entity kind.
func (s *Server) selectHandler(kind tracker.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := s.mustUserID(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := s.tracker.Select(r.Context(), kind, userID, id); err != nil {
			s.writeError(w, r, err)
			return
		}

		s.countSelectionSwap(kind)
		w.WriteHeader(http.StatusNoContent)
	}
}

// Daily goals.

type createDailyGoalRequest struct {
	Quantity   int  `json:"quantity"`
	BlockSize  int  `json:"block_size"`
	IsSelected bool `json:"is_selected"`
}

func (s *Server) handleCreateDailyGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	var req createDailyGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goal, err := s.tracker.CreateDailyGoal(r.Context(), userID, req.Quantity, req.BlockSize, req.IsSelected)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newDailyGoalResponse(goal))
}

func (s *Server) handleListDailyGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	goals, err := s.tracker.ListDailyGoals(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]dailyGoalResponse, 0, len(goals))
	for _, goal := range goals {
		resp = append(resp, newDailyGoalResponse(goal))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetDailyGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	goal, err := s.tracker.GetDailyGoal(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newDailyGoalResponse(goal))
}

type updateDailyGoalRequest struct {
	Quantity  *int `json:"quantity"`
	BlockSize *int `json:"block_size"`
}

func (s *Server) handleUpdateDailyGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateDailyGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goal, err := s.tracker.UpdateDailyGoal(r.Context(), userID, id, tracker.DailyGoalPatch{
		Quantity:  req.Quantity,
		BlockSize: req.BlockSize,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newDailyGoalResponse(goal))
}

func (s *Server) handleDeleteDailyGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.tracker.DeleteDailyGoal(r.Context(), userID, id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Study categories.

type createStudyCategoryRequest struct {
	Title      string `json:"title"`
	IsSelected bool   `json:"is_selected"`
}

func (s *Server) handleCreateStudyCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	var req createStudyCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := s.tracker.CreateStudyCategory(r.Context(), userID, req.Title, req.IsSelected)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newStudyCategoryResponse(category))
}

func (s *Server) handleListStudyCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	categories, err := s.tracker.ListStudyCategories(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]studyCategoryResponse, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, newStudyCategoryResponse(category))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetStudyCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	category, err := s.tracker.GetStudyCategory(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newStudyCategoryResponse(category))
}

type renameStudyCategoryRequest struct {
	Title string `json:"title"`
}

func (s *Server) handleRenameStudyCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req renameStudyCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := s.tracker.RenameStudyCategory(r.Context(), userID, id, req.Title)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newStudyCategoryResponse(category))
}

func (s *Server) handleDeleteStudyCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.tracker.DeleteStudyCategory(r.Context(), userID, id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Session counters.

type createSessionCounterRequest struct {
	Target     int  `json:"target"`
	IsSelected bool `json:"is_selected"`
}

func (s *Server) handleCreateSessionCounter(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	var req createSessionCounterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	counter, err := s.tracker.CreateSessionCounter(r.Context(), userID, req.Target, req.IsSelected)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newSessionCounterResponse(counter))
}

func (s *Server) handleListSessionCounters(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	counters, err := s.tracker.ListSessionCounters(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]sessionCounterResponse, 0, len(counters))
	for _, counter := range counters {
		resp = append(resp, newSessionCounterResponse(counter))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSessionCounter(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	counter, err := s.tracker.GetSessionCounter(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionCounterResponse(counter))
}

func (s *Server) handleIncrementSessionCounter(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	counter, err := s.tracker.IncrementSessionCounter(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionCounterResponse(counter))
}

func (s *Server) handleResetSessionCounter(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	counter, err := s.tracker.ResetSessionCounter(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionCounterResponse(counter))
}

func (s *Server) handleDeleteSessionCounter(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.tracker.DeleteSessionCounter(r.Context(), userID, id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Time settings.

type timeSettingsRequest struct {
	IsCountdown       *bool `json:"is_countdown"`
	Duration          *int  `json:"duration"`
	ShortBreakMinutes *int  `json:"short_break_minutes"`
	LongBreakMinutes  *int  `json:"long_break_minutes"`
	LongBreakInterval *int  `json:"long_break_interval"`
	IsSound           *bool `json:"is_sound"`
	SoundInterval     *int  `json:"sound_interval"`
	IsSelected        bool  `json:"is_selected"`
}

func (req timeSettingsRequest) patch() tracker.TimeSettingsPatch {
	return tracker.TimeSettingsPatch{
		IsCountdown:       req.IsCountdown,
		Duration:          req.Duration,
		ShortBreakMinutes: req.ShortBreakMinutes,
		LongBreakMinutes:  req.LongBreakMinutes,
		LongBreakInterval: req.LongBreakInterval,
		IsSound:           req.IsSound,
		SoundInterval:     req.SoundInterval,
	}
}

func (s *Server) handleCreateTimeSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	var req timeSettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	settings, err := s.tracker.CreateTimeSettings(r.Context(), userID, req.patch(), req.IsSelected)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newTimeSettingsResponse(settings))
}

func (s *Server) handleListTimeSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	settings, err := s.tracker.ListTimeSettings(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]timeSettingsResponse, 0, len(settings))
	for _, preset := range settings {
		resp = append(resp, newTimeSettingsResponse(preset))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTimeSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	settings, err := s.tracker.GetTimeSettings(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newTimeSettingsResponse(settings))
}

func (s *Server) handleUpdateTimeSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req timeSettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	settings, err := s.tracker.UpdateTimeSettings(r.Context(), userID, id, req.patch())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newTimeSettingsResponse(settings))
}

func (s *Server) handleDeleteTimeSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.tracker.DeleteTimeSettings(r.Context(), userID, id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
