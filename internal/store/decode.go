package store

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Item is one raw DynamoDB item.
type Item = map[string]types.AttributeValue

// decodeJobPosting converts a raw item into a JobPosting. Items without both
// key attributes are malformed and rejected.
func decodeJobPosting(item Item) (*JobPosting, error) {
	var p JobPosting
	if err := attributevalue.UnmarshalMap(item, &p); err != nil {
		return nil, fmt.Errorf("failed to decode job posting: %w", err)
	}
	if p.ClinicID == "" || p.JobID == "" {
		return nil, fmt.Errorf("job posting missing clinicId/jobId")
	}
	return &p, nil
}

// decodeApplication converts a raw item into an Application.
func decodeApplication(item Item) (*Application, error) {
	var a Application
	if err := attributevalue.UnmarshalMap(item, &a); err != nil {
		return nil, fmt.Errorf("failed to decode application: %w", err)
	}
	if a.ApplicationID == "" {
		return nil, fmt.Errorf("application missing applicationId")
	}
	return &a, nil
}

// decodeProfile converts a raw item into an ApplicantProfile, normalizing
// the certifications attribute which older writers stored as a string set
// and newer ones as a list.
func decodeProfile(item Item) (*ApplicantProfile, error) {
	var p ApplicantProfile
	if err := attributevalue.UnmarshalMap(item, &p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	if p.ProfileID == "" {
		return nil, fmt.Errorf("profile missing profileId")
	}
	p.Certifications = stringSequence(item["certifications"])
	return &p, nil
}

// decodeNegotiation converts a raw item into a Negotiation.
func decodeNegotiation(item Item) (*Negotiation, error) {
	var n Negotiation
	if err := attributevalue.UnmarshalMap(item, &n); err != nil {
		return nil, fmt.Errorf("failed to decode negotiation: %w", err)
	}
	if n.NegotiationID == "" {
		return nil, fmt.Errorf("negotiation missing negotiationId")
	}
	return &n, nil
}

// stringSequence reads an attribute that may be stored either as a DynamoDB
// string set or as a list of strings and returns it as an ordered slice.
// Any other representation yields nil.
func stringSequence(av types.AttributeValue) []string {
	switch v := av.(type) {
	case *types.AttributeValueMemberSS:
		out := make([]string, len(v.Value))
		copy(out, v.Value)
		return out
	case *types.AttributeValueMemberL:
		var out []string
		for _, member := range v.Value {
			if s, ok := member.(*types.AttributeValueMemberS); ok {
				out = append(out, s.Value)
			}
		}
		return out
	default:
		return nil
	}
}

// stringKey builds a single-attribute string key for batched fetches.
func stringKey(attr, value string) Item {
	return Item{attr: &types.AttributeValueMemberS{Value: value}}
}

// keyValue extracts the string value of a key attribute from an item.
func keyValue(item Item, attr string) string {
	if s, ok := item[attr].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}
