package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/clinio/clinic-jobs/internal/server/middleware"
)

// AggregationRequest is the decoded mode selector for the applications
// endpoint. Exactly one of ClinicID or Aggregate must be given.
type AggregationRequest struct {
	ClinicID  string   `validate:"omitempty,max=64"`
	Aggregate bool
	Statuses  []string `validate:"omitempty,dive,oneof=pending negotiate interview hired rejected withdrawn"`
}

// handleClinicApplicants serves the per-clinic aggregation for the clinic
// named in the path. A clinic may only read its own postings; members of
// the admin group may read any clinic.
func (s *Server) handleClinicApplicants(w http.ResponseWriter, r *http.Request) {
	clinicID := r.PathValue("clinic_id")
	if clinicID == "" {
		s.errorResponse(w, http.StatusBadRequest, "clinic_id is required")
		return
	}

	subject, err := middleware.GetSubject(r)
	if err != nil {
		s.respondError(w, &ErrUnauthorized{})
		return
	}
	if subject.ID != clinicID && !subject.InGroup(adminGroup) {
		s.respondError(w, &ErrForbidden{ClinicID: clinicID})
		return
	}

	s.runClinicAggregation(w, r, clinicID)
}

// handleApplications selects the aggregation mode from query parameters:
// an explicit clinic_id always wins; otherwise aggregate=true selects the
// cross-clinic summary; neither is a client error, reported before any
// store access.
func (s *Server) handleApplications(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseAggregationRequest(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	if req.ClinicID != "" {
		subject, err := middleware.GetSubject(r)
		if err != nil {
			s.respondError(w, &ErrUnauthorized{})
			return
		}
		if subject.ID != req.ClinicID && !subject.InGroup(adminGroup) {
			s.respondError(w, &ErrForbidden{ClinicID: req.ClinicID})
			return
		}
		s.runClinicAggregation(w, r, req.ClinicID)
		return
	}

	statuses := req.Statuses
	if len(statuses) == 0 {
		statuses = s.defaultStatuses
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	result, err := s.engine.StatusSummary(ctx, statuses)
	if err != nil {
		s.respondError(w, wrapEngineError(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) runClinicAggregation(w http.ResponseWriter, r *http.Request, clinicID string) {
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	result, err := s.engine.ClinicApplicants(ctx, clinicID)
	if err != nil {
		s.respondError(w, wrapEngineError(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// parseAggregationRequest decodes and validates the mode selector. It never
// touches the store.
func (s *Server) parseAggregationRequest(r *http.Request) (*AggregationRequest, error) {
	query := r.URL.Query()
	req := &AggregationRequest{
		ClinicID:  strings.TrimSpace(query.Get("clinic_id")),
		Aggregate: parseBool(query.Get("aggregate")),
	}

	if raw := query.Get("statuses"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if status := strings.ToLower(strings.TrimSpace(part)); status != "" {
				req.Statuses = append(req.Statuses, status)
			}
		}
		if len(req.Statuses) == 0 {
			return nil, &ErrInvalidStatuses{Raw: raw}
		}
	}

	if req.ClinicID == "" && !req.Aggregate {
		return nil, &ErrMissingSelector{}
	}

	if err := s.validator.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, &ErrValidation{Field: verrs[0].Field(), Message: verrs[0].Tag()}
		}
		return nil, &ErrValidation{Field: "request", Message: err.Error()}
	}

	return req, nil
}

// wrapEngineError classifies an engine failure for the response taxonomy.
// Timeouts and cancellations pass through so they map to 504; everything
// else from the engine is a store-side failure.
func wrapEngineError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	return &ErrStoreUnavailable{Err: err}
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
