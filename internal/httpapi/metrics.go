// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package httpapi

import "github.com/deepworktimer/deepworktimer/internal/tracker"

// Metric helpers are nil-safe so the server can run without an observability
// endpoint wired in.

func (s *Server) countLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *Server) countRegistration() {
	if s.metrics != nil {
		s.metrics.RegistrationsTotal.Inc()
	}
}

func (s *Server) countSocialLogin(provider string) {
	if s.metrics != nil {
		s.metrics.SocialLoginsTotal.WithLabelValues(provider).Inc()
	}
}

func (s *Server) countSessionIssued() {
	if s.metrics != nil {
		s.metrics.SessionsIssued.Inc()
	}
}

func (s *Server) countSessionInvalidated() {
	if s.metrics != nil {
		s.metrics.SessionsInvalidated.Inc()
	}
}

func (s *Server) countSelectionSwap(kind tracker.Kind) {
	if s.metrics != nil {
		s.metrics.SelectionSwapsTotal.WithLabelValues(kind.String()).Inc()
	}
}
