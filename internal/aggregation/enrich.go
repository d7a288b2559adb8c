package aggregation

import (
	"github.com/clinio/clinic-jobs/internal/store"
)

// EnrichedApplication is an application with its resolved foreign records
// attached. It is a pipeline-local projection, never persisted. A reference
// that could not be resolved leaves the attachment nil.
type EnrichedApplication struct {
	store.Application
	Profile     *store.ApplicantProfile `json:"profile,omitempty"`
	Negotiation *store.Negotiation      `json:"negotiation,omitempty"`
}

// Enrich attaches resolved profiles and negotiations onto each application.
// It is pure: inputs are not mutated and output order matches input order.
// Either map may be nil when that attachment is not wanted.
func Enrich(apps []store.Application, profiles map[string]store.ApplicantProfile, negotiations map[string]store.Negotiation) []EnrichedApplication {
	enriched := make([]EnrichedApplication, len(apps))
	for i, app := range apps {
		e := EnrichedApplication{Application: app}
		if profile, ok := profiles[ApplicantID(app)]; ok {
			p := profile
			e.Profile = &p
		}
		if negotiation, ok := negotiations[app.NegotiationID]; ok {
			n := negotiation
			e.Negotiation = &n
		}
		enriched[i] = e
	}
	return enriched
}
