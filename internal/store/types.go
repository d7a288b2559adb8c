package store

// Job posting status values.
const (
	JobStatusActive    = "active"
	JobStatusCompleted = "completed"
	JobStatusCancelled = "cancelled"
)

// Application status values. The summary endpoint buckets by the exact
// stored value, so these are the canonical lowercase forms.
const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusNegotiate = "negotiate"
	ApplicationStatusInterview = "interview"
	ApplicationStatusHired     = "hired"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusWithdrawn = "withdrawn"
)

// JobPosting is a job posted by a clinic. The schedule fields are
// type-dependent: a single-day shift carries Date, a range carries
// StartDate/EndDate, an ongoing role carries only StartDate.
type JobPosting struct {
	ClinicID  string `dynamodbav:"clinicId" json:"clinic_id"`
	JobID     string `dynamodbav:"jobId" json:"job_id"`
	Type      string `dynamodbav:"type" json:"type"`
	Role      string `dynamodbav:"role" json:"role"`
	Status    string `dynamodbav:"status" json:"status"`
	Date      string `dynamodbav:"date,omitempty" json:"date,omitempty"`
	StartDate string `dynamodbav:"startDate,omitempty" json:"start_date,omitempty"`
	EndDate   string `dynamodbav:"endDate,omitempty" json:"end_date,omitempty"`
	CreatedAt string `dynamodbav:"createdAt" json:"created_at"`
	UpdatedAt string `dynamodbav:"updatedAt,omitempty" json:"updated_at,omitempty"`
}

// Application is one applicant's application against a job posting.
// ClinicID and JobID are denormalized onto the record.
//
// The applicant reference has drifted across deployments: newer records
// carry applicantId, older ones profileId or userId. All three are decoded
// and aggregation.ApplicantID picks the first present value.
type Application struct {
	ApplicationID   string `dynamodbav:"applicationId" json:"application_id"`
	JobID           string `dynamodbav:"jobId" json:"job_id"`
	ClinicID        string `dynamodbav:"clinicId" json:"clinic_id"`
	ApplicantID     string `dynamodbav:"applicantId" json:"applicant_id,omitempty"`
	LegacyProfileID string `dynamodbav:"profileId" json:"-"`
	LegacyUserID    string `dynamodbav:"userId" json:"-"`
	NegotiationID   string `dynamodbav:"negotiationId" json:"negotiation_id,omitempty"`
	Status          string `dynamodbav:"status" json:"status"`
	Rate            string `dynamodbav:"rate,omitempty" json:"rate,omitempty"`
	CreatedAt       string `dynamodbav:"createdAt" json:"created_at"`
}

// ApplicantProfile is the professional profile an application points at.
// Certifications may be stored as a string set or a list depending on the
// writer's SDK; the decode boundary normalizes both to a slice.
type ApplicantProfile struct {
	ProfileID      string   `dynamodbav:"profileId" json:"profile_id"`
	FirstName      string   `dynamodbav:"firstName" json:"first_name"`
	LastName       string   `dynamodbav:"lastName" json:"last_name"`
	Role           string   `dynamodbav:"role" json:"role"`
	Email          string   `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Phone          string   `dynamodbav:"phone,omitempty" json:"phone,omitempty"`
	Certifications []string `dynamodbav:"-" json:"certifications,omitempty"`
	YearsExp       int      `dynamodbav:"yearsExperience,omitempty" json:"years_experience,omitempty"`
	CreatedAt      string   `dynamodbav:"createdAt,omitempty" json:"created_at,omitempty"`
}

// Negotiation is an in-flight rate negotiation linked from an application.
type Negotiation struct {
	NegotiationID string `dynamodbav:"negotiationId" json:"negotiation_id"`
	ApplicationID string `dynamodbav:"applicationId" json:"application_id"`
	Status        string `dynamodbav:"status" json:"status"`
	ProposedRate  string `dynamodbav:"proposedRate,omitempty" json:"proposed_rate,omitempty"`
	MessageCount  int    `dynamodbav:"messageCount,omitempty" json:"message_count,omitempty"`
	CreatedAt     string `dynamodbav:"createdAt" json:"created_at"`
	UpdatedAt     string `dynamodbav:"updatedAt,omitempty" json:"updated_at,omitempty"`
}
