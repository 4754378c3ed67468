// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

//go:build integration

package store_test

import (
	"sync"

	"github.com/oklog/ulid/v2"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/deepworktimer/deepworktimer/internal/tracker"
	trackerpg "github.com/deepworktimer/deepworktimer/internal/tracker/postgres"
)

func selectedGoalCount(userID ulid.ULID) int {
	var count int
	err := pg.Pool().QueryRow(suiteCtx,
		`SELECT COUNT(*) FROM daily_goals WHERE user_id = $1 AND is_selected`,
		userID.String()).Scan(&count)
	Expect(err).NotTo(HaveOccurred())
	return count
}

var _ = Describe("Concurrent selection changes", func() {
	const goroutines = 20

	var (
		userID ulid.ULID
		goals  *trackerpg.DailyGoalRepository
		sel    *trackerpg.SelectionStore
	)

	BeforeEach(func() {
		// Random tail of the ulid; the leading characters are a timestamp
		// and collide for users created in the same millisecond.
		suffix := ulid.Make().String()[10:]
		id := insertUser("racer_"+suffix, "racer_"+suffix+"@example.com")
		var err error
		userID, err = ulid.Parse(id)
		Expect(err).NotTo(HaveOccurred())

		goals = trackerpg.NewDailyGoalRepository(pg.Pool())
		sel = trackerpg.NewSelectionStore(pg.Pool())
	})

	newGoal := func(selected bool) *tracker.DailyGoal {
		goal, err := tracker.NewDailyGoal(userID, 8, 25)
		Expect(err).NotTo(HaveOccurred())
		goal.IsSelected = selected
		return goal
	}

	It("leaves at most one selected row when selections race", func() {
		ids := make([]ulid.ULID, goroutines)
		for i := range ids {
			goal := newGoal(false)
			Expect(goals.Create(suiteCtx, goal)).To(Succeed())
			ids[i] = goal.ID
		}

		var wg sync.WaitGroup
		errs := make([]error, goroutines)
		for i := range goroutines {
			wg.Add(1)
			go func(idx int) {
				defer GinkgoRecover()
				defer wg.Done()
				errs[idx] = sel.SetSelected(suiteCtx, tracker.KindDailyGoal, userID, ids[idx])
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(selectedGoalCount(userID)).To(Equal(1))
	})

	It("serializes pre-selected creates against selection swaps", func() {
		existing := newGoal(false)
		Expect(goals.Create(suiteCtx, existing)).To(Succeed())

		var wg sync.WaitGroup
		errs := make([]error, goroutines)
		for i := range goroutines {
			wg.Add(1)
			go func(idx int) {
				defer GinkgoRecover()
				defer wg.Done()
				if idx%2 == 0 {
					errs[idx] = goals.Create(suiteCtx, newGoal(true))
				} else {
					errs[idx] = sel.SetSelected(suiteCtx, tracker.KindDailyGoal, userID, existing.ID)
				}
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(selectedGoalCount(userID)).To(Equal(1))
	})
})
