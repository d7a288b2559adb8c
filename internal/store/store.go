// Package store provides DynamoDB-backed access to the clinic job tables.
// All reads go through a typed decode boundary: raw items are unmarshalled
// into the record types in types.go and malformed items are dropped, never
// passed deeper into the pipeline.
package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// DynamoAPI is the subset of the DynamoDB client used by the store.
// It exists so tests can substitute a fake client.
type DynamoAPI interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchGetItem(ctx context.Context, params *dynamodb.BatchGetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error)
}

// Tables names the four tables the store reads from.
type Tables struct {
	Jobs         string
	Applications string
	Profiles     string
	Negotiations string
}

// Store wraps a DynamoDB client with the table layout and read operations
// of the clinic jobs system. It performs no writes.
type Store struct {
	client    DynamoAPI
	tables    Tables
	chunkSize int
	logger    *zap.Logger
}

// New creates a store over the given client. chunkSize bounds the number of
// keys per batched fetch and must be in 1..100.
func New(client DynamoAPI, tables Tables, chunkSize int, logger *zap.Logger) *Store {
	if chunkSize < 1 || chunkSize > maxBatchKeys {
		chunkSize = maxBatchKeys
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client:    client,
		tables:    tables,
		chunkSize: chunkSize,
		logger:    logger,
	}
}
