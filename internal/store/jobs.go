package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// JobPostingsByClinic returns every job posting owned by the clinic,
// draining all pages of the partition query.
func (s *Store) JobPostingsByClinic(ctx context.Context, clinicID string) ([]JobPosting, error) {
	items, err := FetchAllPages(ctx, func(ctx context.Context, startKey Item) ([]Item, Item, error) {
		out, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.tables.Jobs),
			KeyConditionExpression: aws.String("clinicId = :cid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":cid": &types.AttributeValueMemberS{Value: clinicID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to query job postings: %w", err)
		}
		return out.Items, out.LastEvaluatedKey, nil
	})
	if err != nil {
		return nil, err
	}

	postings := make([]JobPosting, 0, len(items))
	for _, item := range items {
		posting, err := decodeJobPosting(item)
		if err != nil {
			s.logger.Warn("dropping malformed job posting",
				zap.String("clinic_id", clinicID), zap.Error(err))
			continue
		}
		postings = append(postings, *posting)
	}
	return postings, nil
}
