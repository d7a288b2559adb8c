package aggregation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/clinio/clinic-jobs/internal/store"
)

// maxConcurrentJobFetches bounds the per-posting application fan-out.
const maxConcurrentJobFetches = 8

// Fetcher is the read surface of the store the engine depends on.
type Fetcher interface {
	JobPostingsByClinic(ctx context.Context, clinicID string) ([]store.JobPosting, error)
	ApplicationsByJob(ctx context.Context, clinicID, jobID string) ([]store.Application, error)
	AllApplications(ctx context.Context) ([]store.Application, error)
	ResolveProfiles(ctx context.Context, ids []string) (map[string]store.ApplicantProfile, error)
	ResolveNegotiations(ctx context.Context, ids []string) (map[string]store.Negotiation, error)
}

// Engine runs the aggregation pipeline. It holds no mutable state between
// requests; all concurrency is request-scoped.
type Engine struct {
	store  Fetcher
	logger *zap.Logger
}

// NewEngine creates an engine over the given store.
func NewEngine(store Fetcher, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{store: store, logger: logger}
}

// ClinicApplicants aggregates every job posting of one clinic with its
// enriched applications. Application fetches fan out concurrently across
// postings; results are reassembled by posting, never by completion order.
// Applicant and negotiation ids are deduplicated across all postings before
// resolution, so an applicant applying to several jobs at the clinic is
// fetched once.
func (e *Engine) ClinicApplicants(ctx context.Context, clinicID string) (*ClinicApplicantsResult, error) {
	postings, err := e.store.JobPostingsByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	appsByJob := make([][]store.Application, len(postings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentJobFetches)
	for i, posting := range postings {
		g.Go(func() error {
			apps, err := e.store.ApplicationsByJob(gctx, posting.ClinicID, posting.JobID)
			if err != nil {
				return fmt.Errorf("applications for job %s: %w", posting.JobID, err)
			}
			appsByJob[i] = apps
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []store.Application
	for _, apps := range appsByJob {
		all = append(all, apps...)
	}

	profiles, negotiations, err := e.resolveReferences(ctx, all)
	if err != nil {
		return nil, err
	}

	jobs := make([]JobApplicants, len(postings))
	total := 0
	for i, posting := range postings {
		applicants := Enrich(appsByJob[i], profiles, negotiations)
		jobs[i] = JobApplicants{
			JobID:      posting.JobID,
			JobPosting: posting,
			Applicants: applicants,
		}
		total += len(applicants)
	}

	e.logger.Debug("clinic aggregation complete",
		zap.String("clinic_id", clinicID),
		zap.Int("jobs", len(jobs)),
		zap.Int("total_applicants", total))

	return &ClinicApplicantsResult{
		Mode:            ModeClinicJobs,
		ClinicID:        clinicID,
		Jobs:            jobs,
		TotalApplicants: total,
	}, nil
}

// resolveReferences batch-resolves the distinct profile and negotiation ids
// referenced by the applications. The two tables are fetched concurrently.
func (e *Engine) resolveReferences(ctx context.Context, apps []store.Application) (map[string]store.ApplicantProfile, map[string]store.Negotiation, error) {
	profileIDs := CollectApplicantIDs(apps)
	negotiationIDs := CollectNegotiationIDs(apps)

	var profiles map[string]store.ApplicantProfile
	var negotiations map[string]store.Negotiation

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profiles, err = e.store.ResolveProfiles(gctx, profileIDs)
		return err
	})
	g.Go(func() error {
		var err error
		negotiations, err = e.store.ResolveNegotiations(gctx, negotiationIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return profiles, negotiations, nil
}

// StatusSummary builds the cross-clinic status summary: all applications
// system-wide, filtered to the allowed statuses (case-insensitively),
// grouped by clinic with negotiations attached. Negotiation ids are
// deduplicated globally for the request before resolution. Summaries are
// sorted descending by total application count; ties keep their relative
// order.
func (e *Engine) StatusSummary(ctx context.Context, statuses []string) (*SummaryResult, error) {
	allowed := make(map[string]struct{}, len(statuses))
	normalized := make([]string, 0, len(statuses))
	for _, status := range statuses {
		s := strings.ToLower(strings.TrimSpace(status))
		if s == "" {
			continue
		}
		if _, ok := allowed[s]; ok {
			continue
		}
		allowed[s] = struct{}{}
		normalized = append(normalized, s)
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("status summary requires at least one allowed status")
	}

	apps, err := e.store.AllApplications(ctx)
	if err != nil {
		return nil, err
	}

	var filtered []store.Application
	for _, app := range apps {
		if _, ok := allowed[strings.ToLower(app.Status)]; ok {
			filtered = append(filtered, app)
		}
	}

	negotiations, err := e.store.ResolveNegotiations(ctx, CollectNegotiationIDs(filtered))
	if err != nil {
		return nil, err
	}

	byClinic := make(map[string][]store.Application)
	var clinicOrder []string
	for _, app := range filtered {
		if _, ok := byClinic[app.ClinicID]; !ok {
			clinicOrder = append(clinicOrder, app.ClinicID)
		}
		byClinic[app.ClinicID] = append(byClinic[app.ClinicID], app)
	}

	summaries := make([]ClinicSummary, 0, len(clinicOrder))
	for _, clinicID := range clinicOrder {
		summary := ClinicSummary{
			ClinicID:    clinicID,
			Pending:     []EnrichedApplication{},
			Negotiating: []EnrichedApplication{},
		}
		for _, enriched := range Enrich(byClinic[clinicID], nil, negotiations) {
			summary.TotalApplications++
			switch strings.ToLower(enriched.Status) {
			case store.ApplicationStatusPending:
				summary.PendingCount++
				summary.Pending = append(summary.Pending, enriched)
			case store.ApplicationStatusNegotiate:
				summary.NegotiatingCount++
				summary.Negotiating = append(summary.Negotiating, enriched)
			default:
				summary.Other = append(summary.Other, enriched)
			}
		}
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalApplications > summaries[j].TotalApplications
	})

	e.logger.Debug("status summary complete",
		zap.Int("clinics", len(summaries)),
		zap.Int("applications", len(filtered)))

	return &SummaryResult{
		Mode:            ModeStatusSummary,
		TotalClinics:    len(summaries),
		Statuses:        normalized,
		ClinicSummaries: summaries,
	}, nil
}
