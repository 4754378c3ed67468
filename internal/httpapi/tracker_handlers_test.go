// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package httpapi_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deepworktimer/deepworktimer/internal/tracker"
)

func testGoal(userID ulid.ULID) *tracker.DailyGoal {
	now := time.Now()
	return &tracker.DailyGoal{
		ID:        ulid.Make(),
		UserID:    userID,
		Quantity:  8,
		BlockSize: 25,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testCounter(userID ulid.ULID) *tracker.SessionCounter {
	now := time.Now()
	return &tracker.SessionCounter{
		ID:        ulid.Make(),
		UserID:    userID,
		Target:    10,
		Completed: 3,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestDailyGoalEndpoints(t *testing.T) {
	t.Run("create returns 201", func(t *testing.T) {
		ts := newTestServer(t)
		_, cookie := ts.authenticate(t)
		ts.goals.On("Create", mock.Anything, mock.AnythingOfType("*tracker.DailyGoal")).Return(nil)

		rec := ts.do(t, http.MethodPost, "/daily-goals", map[string]any{
			"quantity":   8,
			"block_size": 25,
		}, cookie)

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody[map[string]any](t, rec)
		assert.Equal(t, float64(8), body["quantity"])
		assert.Equal(t, float64(25), body["block_size"])
		assert.Equal(t, false, body["is_selected"])
	})

	t.Run("create rejects a non-positive quantity", func(t *testing.T) {
		ts := newTestServer(t)
		_, cookie := ts.authenticate(t)

		rec := ts.do(t, http.MethodPost, "/daily-goals", map[string]any{
			"quantity":   0,
			"block_size": 25,
		}, cookie)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list returns the user's goals", func(t *testing.T) {
		ts := newTestServer(t)
		userID, cookie := ts.authenticate(t)
		ts.goals.On("ListByUser", mock.Anything, userID).
			Return([]*tracker.DailyGoal{testGoal(userID), testGoal(userID)}, nil)

		rec := ts.do(t, http.MethodGet, "/daily-goals", nil, cookie)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[[]map[string]any](t, rec)
		assert.Len(t, body, 2)
	})

	t.Run("list returns an empty array, not null", func(t *testing.T) {
		ts := newTestServer(t)
		userID, cookie := ts.authenticate(t)
		ts.goals.On("ListByUser", mock.Anything, userID).Return([]*tracker.DailyGoal{}, nil)

		rec := ts.do(t, http.MethodGet, "/daily-goals", nil, cookie)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("get maps a missing goal to 404", func(t *testing.T) {
		ts := newTestServer(t)
		userID, cookie := ts.authenticate(t)
		id := ulid.Make()
		ts.goals.On("Get", mock.Anything, userID, id).Return(nil, tracker.ErrNotFound)

		rec := ts.do(t, http.MethodGet, "/daily-goals/"+id.String(), nil, cookie)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("get rejects a malformed id", func(t *testing.T) {
		ts := newTestServer(t)
		_, cookie := ts.authenticate(t)

		rec := ts.do(t, http.MethodGet, "/daily-goals/not-a-ulid", nil, cookie)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("patch updates the quantity", func(t *testing.T) {
		ts := newTestServer(t)
		userID, cookie := ts.authenticate(t)
		goal := testGoal(userID)
		ts.goals.On("Get", mock.Anything, userID, goal.ID).Return(goal, nil)
		ts.goals.On("Update", mock.Anything, goal).Return(nil)

		rec := ts.do(t, http.MethodPatch, "/daily-goals/"+goal.ID.String(), map[string]any{
			"quantity": 12,
		}, cookie)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[map[string]any](t, rec)
		assert.Equal(t, float64(12), body["quantity"])
		assert.Equal(t, float64(25), body["block_size"])
	})

	t.Run("delete returns 204", func(t *testing.T) {
		ts := newTestServer(t)
		userID, cookie := ts.authenticate(t)
		id := ulid.Make()
		ts.goals.On("Delete", mock.Anything, userID, id).Return(nil)

		rec := ts.do(t, http.MethodDelete, "/daily-goals/"+id.String(), nil, cookie)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("select swaps the selection", func(t *testing.T) {
		ts := newTestServer(t)
		userID, cookie := ts.authenticate(t)
		id := ulid.Make()
		ts.selection.On("SetSelected", mock.Anything, tracker.KindDailyGoal, userID, id).Return(nil)

		rec := ts.do(t, http.MethodPost, "/daily-goals/"+id.String()+"/select", nil, cookie)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("select maps a foreign goal to 404", func(t *testing.T) {
		ts := newTestServer(t)
		userID, cookie := ts.authenticate(t)
		id := ulid.Make()
		ts.selection.On("SetSelected", mock.Anything, tracker.KindDailyGoal, userID, id).
			Return(tracker.ErrNotFound)

		rec := ts.do(t, http.MethodPost, "/daily-goals/"+id.String()+"/select", nil, cookie)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("requires a session", func(t *testing.T) {
		ts := newTestServer(t)

		rec := ts.do(t, http.MethodGet, "/daily-goals", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestStudyCategoryEndpoints(t *testing.T) {
	t.Run("create returns 201", func(t *testing.T) {
		ts := newTestServer(t)
		_, cookie := ts.authenticate(t)
		ts.categories.On("Create", mock.Anything, mock.AnythingOfType("*tracker.StudyCategory")).Return(nil)

		rec := ts.do(t, http.MethodPost, "/study-categories", map[string]any{
			"title":       "mathematics",
			"is_selected": true,
		}, cookie)

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody[map[string]any](t, rec)
		assert.Equal(t, "mathematics", body["title"])
		assert.Equal(t, true, body["is_selected"])
	})

	t.Run("create rejects an empty title", func(t *testing.T) {
		ts := newTestServer(t)
		_, cookie := ts.authenticate(t)

		rec := ts.do(t, http.MethodPost, "/study-categories", map[string]any{
			"title": "",
		}, cookie)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rename updates the title", func(t *testing.T) {
		ts := newTestServer(t)
		userID, cookie := ts.authenticate(t)
		now := time.Now()
		category := &tracker.StudyCategory{
			ID: ulid.Make(), UserID: userID, Title: "maths", CreatedAt: now, UpdatedAt: now,
		}
		ts.categories.On("Get", mock.Anything, userID, category.ID).Return(category, nil)
		ts.categories.On("Update", mock.Anything, category).Return(nil)

		rec := ts.do(t, http.MethodPatch, "/study-categories/"+category.ID.String(), map[string]any{
			"title": "mathematics",
		}, cookie)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[map[string]any](t, rec)
		assert.Equal(t, "mathematics", body["title"])
	})

	t.Run("rename rejects an empty title without touching storage", func(t *testing.T) {
		ts := newTestServer(t)
		_, cookie := ts.authenticate(t)

		rec := ts.do(t, http.MethodPatch, "/study-categories/"+ulid.Make().String(), map[string]any{
			"title": "",
		}, cookie)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSessionCounterEndpoints(t *testing.T) {
	t.Run("create returns 201", func(t *testing.T) {
		ts := newTestServer(t)
		_, cookie := ts.authenticate(t)
		ts.counters.On("Create", mock.Anything, mock.AnythingOfType("*tracker.SessionCounter")).Return(nil)

		rec := ts.do(t, http.MethodPost, "/session-counters", map[string]any{
			"target": 10,
		}, cookie)

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody[map[string]any](t, rec)
		assert.Equal(t, float64(10), body["target"])
		assert.Equal(t, float64(0), body["completed"])
	})

	t.Run("increment returns the updated count", func(t *testing.T) {
		ts := newTestServer(t)
		userID, cookie := ts.authenticate(t)
		counter := testCounter(userID)
		counter.Completed = 4
		ts.counters.On("Increment", mock.Anything, userID, counter.ID).Return(counter, nil)

		rec := ts.do(t, http.MethodPost, "/session-counters/"+counter.ID.String()+"/increment", nil, cookie)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[map[string]any](t, rec)
		assert.Equal(t, float64(4), body["completed"])
	})

	t.Run("increment maps a missing counter to 404", func(t *testing.T) {
		ts := newTestServer(t)
		userID, cookie := ts.authenticate(t)
		id := ulid.Make()
		ts.counters.On("Increment", mock.Anything, userID, id).Return(nil, tracker.ErrNotFound)

		rec := ts.do(t, http.MethodPost, "/session-counters/"+id.String()+"/increment", nil, cookie)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("reset zeroes the completed count", func(t *testing.T) {
		ts := newTestServer(t)
		userID, cookie := ts.authenticate(t)
		counter := testCounter(userID)
		ts.counters.On("Get", mock.Anything, userID, counter.ID).Return(counter, nil)
		ts.counters.On("Update", mock.Anything, counter).Return(nil)

		rec := ts.do(t, http.MethodPost, "/session-counters/"+counter.ID.String()+"/reset", nil, cookie)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[map[string]any](t, rec)
		assert.Equal(t, float64(0), body["completed"])
	})
}

func TestTimeSettingsEndpoints(t *testing.T) {
	t.Run("create defaults to a countdown preset", func(t *testing.T) {
		ts := newTestServer(t)
		_, cookie := ts.authenticate(t)
		ts.settings.On("Create", mock.Anything, mock.AnythingOfType("*tracker.TimeSettings")).Return(nil)

		rec := ts.do(t, http.MethodPost, "/time-settings", map[string]any{}, cookie)

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody[map[string]any](t, rec)
		assert.Equal(t, true, body["is_countdown"])
		assert.Nil(t, body["duration"])
	})

	t.Run("create carries optional fields", func(t *testing.T) {
		ts := newTestServer(t)
		_, cookie := ts.authenticate(t)
		ts.settings.On("Create", mock.Anything, mock.AnythingOfType("*tracker.TimeSettings")).Return(nil)

		rec := ts.do(t, http.MethodPost, "/time-settings", map[string]any{
			"is_countdown":        false,
			"duration":            50,
			"short_break_minutes": 10,
		}, cookie)

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody[map[string]any](t, rec)
		assert.Equal(t, false, body["is_countdown"])
		assert.Equal(t, float64(50), body["duration"])
		assert.Equal(t, float64(10), body["short_break_minutes"])
	})

	t.Run("patch preserves unset fields", func(t *testing.T) {
		ts := newTestServer(t)
		userID, cookie := ts.authenticate(t)
		duration := 25
		now := time.Now()
		preset := &tracker.TimeSettings{
			ID: ulid.Make(), UserID: userID, IsCountdown: true, Duration: &duration,
			CreatedAt: now, UpdatedAt: now,
		}
		ts.settings.On("Get", mock.Anything, userID, preset.ID).Return(preset, nil)
		ts.settings.On("Update", mock.Anything, preset).Return(nil)

		rec := ts.do(t, http.MethodPatch, "/time-settings/"+preset.ID.String(), map[string]any{
			"short_break_minutes": 5,
		}, cookie)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[map[string]any](t, rec)
		assert.Equal(t, float64(25), body["duration"])
		assert.Equal(t, float64(5), body["short_break_minutes"])
	})

	t.Run("select swaps the preset", func(t *testing.T) {
		ts := newTestServer(t)
		userID, cookie := ts.authenticate(t)
		id := ulid.Make()
		ts.selection.On("SetSelected", mock.Anything, tracker.KindTimeSettings, userID, id).Return(nil)

		rec := ts.do(t, http.MethodPost, "/time-settings/"+id.String()+"/select", nil, cookie)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
