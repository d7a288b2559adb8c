package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ApplicationsByJob returns every application filed against one posting,
// identified by the denormalized (clinicId, jobId) pair.
func (s *Store) ApplicationsByJob(ctx context.Context, clinicID, jobID string) ([]Application, error) {
	items, err := FetchAllPages(ctx, func(ctx context.Context, startKey Item) ([]Item, Item, error) {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(s.tables.Applications),
			FilterExpression: aws.String("clinicId = :cid AND jobId = :jid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":cid": &types.AttributeValueMemberS{Value: clinicID},
				":jid": &types.AttributeValueMemberS{Value: jobID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan applications for job: %w", err)
		}
		return out.Items, out.LastEvaluatedKey, nil
	})
	if err != nil {
		return nil, err
	}
	return s.decodeApplications(items), nil
}

// AllApplications returns every application in the system, across all
// clinics, draining the full table scan.
func (s *Store) AllApplications(ctx context.Context) ([]Application, error) {
	items, err := FetchAllPages(ctx, func(ctx context.Context, startKey Item) ([]Item, Item, error) {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.tables.Applications),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan applications: %w", err)
		}
		return out.Items, out.LastEvaluatedKey, nil
	})
	if err != nil {
		return nil, err
	}
	return s.decodeApplications(items), nil
}

func (s *Store) decodeApplications(items []Item) []Application {
	apps := make([]Application, 0, len(items))
	for _, item := range items {
		app, err := decodeApplication(item)
		if err != nil {
			s.logger.Warn("dropping malformed application", zap.Error(err))
			continue
		}
		apps = append(apps, *app)
	}
	return apps
}
