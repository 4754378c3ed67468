// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package tracker

import "github.com/samber/oops"

// Kind identifies a selectable entity type. Every kind shares the singleton
// invariant: at most one selected row per (user, kind).
type Kind string

// Selectable entity kinds.
const (
	KindDailyGoal      Kind = "daily_goal"
	KindStudyCategory  Kind = "study_category"
	KindSessionCounter Kind = "session_counter"
	KindTimeSettings   Kind = "time_settings"
)

// Kinds lists every selectable entity kind.
func Kinds() []Kind {
	return []Kind{KindDailyGoal, KindStudyCategory, KindSessionCounter, KindTimeSettings}
}

// ParseKind validates a kind string from an external surface.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDailyGoal, KindStudyCategory, KindSessionCounter, KindTimeSettings:
		return Kind(s), nil
	default:
		return "", oops.Code("TRACKER_INVALID_KIND").
			With("kind", s).
			Wrap(ErrInvalidKind)
	}
}

// Table returns the backing table for the kind. The empty string is never
// returned for a parsed Kind.
func (k Kind) Table() string {
	switch k {
	case KindDailyGoal:
		return "daily_goals"
	case KindStudyCategory:
		return "study_categories"
	case KindSessionCounter:
		return "session_counters"
	case KindTimeSettings:
		return "time_settings"
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (k Kind) String() string { return string(k) }
