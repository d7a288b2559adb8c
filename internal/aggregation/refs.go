// Package aggregation implements the read-side join pipeline over job
// postings, applications, applicant profiles and negotiations.
package aggregation

import (
	"github.com/clinio/clinic-jobs/internal/store"
)

// ApplicantID returns the applicant reference of an application, checking
// the three attribute names that have carried it over time. Newer records
// use applicantId; profileId and userId are legacy spellings, in that
// priority order.
func ApplicantID(app store.Application) string {
	if app.ApplicantID != "" {
		return app.ApplicantID
	}
	if app.LegacyProfileID != "" {
		return app.LegacyProfileID
	}
	return app.LegacyUserID
}

// CollectApplicantIDs returns the distinct applicant ids referenced by the
// applications, in first-appearance order. Applications with no applicant
// reference contribute nothing.
func CollectApplicantIDs(apps []store.Application) []string {
	return collect(apps, ApplicantID)
}

// CollectNegotiationIDs returns the distinct negotiation ids referenced by
// the applications, in first-appearance order.
func CollectNegotiationIDs(apps []store.Application) []string {
	return collect(apps, func(app store.Application) string {
		return app.NegotiationID
	})
}

func collect(apps []store.Application, extract func(store.Application) string) []string {
	seen := make(map[string]struct{}, len(apps))
	var ids []string
	for _, app := range apps {
		id := extract(app)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
