package aggregation

import (
	"github.com/clinio/clinic-jobs/internal/store"
)

// Mode discriminator values carried on every response payload.
const (
	ModeClinicJobs    = "clinic_jobs"
	ModeStatusSummary = "status_summary"
)

// JobApplicants pairs one job posting with its enriched applications.
// A posting with no applications is kept, with an empty list.
type JobApplicants struct {
	JobID      string                `json:"job_id"`
	JobPosting store.JobPosting      `json:"job_posting"`
	Applicants []EnrichedApplication `json:"applicants"`
}

// ClinicApplicantsResult is the per-clinic aggregation payload.
type ClinicApplicantsResult struct {
	Mode            string          `json:"mode"`
	ClinicID        string          `json:"clinic_id"`
	Jobs            []JobApplicants `json:"jobs"`
	TotalApplicants int             `json:"total_applicants"`
}

// ClinicSummary is one clinic's bucket in the cross-clinic summary.
// Pending and Negotiating bucket by the exact stored status value, not by
// the request's filter set.
type ClinicSummary struct {
	ClinicID          string                `json:"clinic_id"`
	TotalApplications int                   `json:"total_applications"`
	PendingCount      int                   `json:"pending_count"`
	Pending           []EnrichedApplication `json:"pending"`
	NegotiatingCount  int                   `json:"negotiating_count"`
	Negotiating       []EnrichedApplication `json:"negotiating"`
	Other             []EnrichedApplication `json:"other,omitempty"`
}

// SummaryResult is the cross-clinic aggregation payload. ClinicSummaries is
// sorted descending by TotalApplications.
type SummaryResult struct {
	Mode            string          `json:"mode"`
	TotalClinics    int             `json:"total_clinics"`
	Statuses        []string        `json:"statuses"`
	ClinicSummaries []ClinicSummary `json:"clinic_summaries"`
}
