package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxBatchKeys is the DynamoDB BatchGetItem limit.
const maxBatchKeys = 100

// ResolveProfiles fetches the applicant profiles for the given ids. Ids the
// store cannot return, even after the retry pass, are absent from the map.
func (s *Store) ResolveProfiles(ctx context.Context, ids []string) (map[string]ApplicantProfile, error) {
	items, err := s.batchGet(ctx, s.tables.Profiles, "profileId", ids)
	if err != nil {
		return nil, err
	}

	profiles := make(map[string]ApplicantProfile, len(items))
	for id, item := range items {
		profile, err := decodeProfile(item)
		if err != nil {
			s.logger.Warn("dropping malformed profile", zap.String("profile_id", id), zap.Error(err))
			continue
		}
		profiles[id] = *profile
	}
	return profiles, nil
}

// ResolveNegotiations fetches the negotiation records for the given ids.
func (s *Store) ResolveNegotiations(ctx context.Context, ids []string) (map[string]Negotiation, error) {
	items, err := s.batchGet(ctx, s.tables.Negotiations, "negotiationId", ids)
	if err != nil {
		return nil, err
	}

	negotiations := make(map[string]Negotiation, len(items))
	for id, item := range items {
		negotiation, err := decodeNegotiation(item)
		if err != nil {
			s.logger.Warn("dropping malformed negotiation", zap.String("negotiation_id", id), zap.Error(err))
			continue
		}
		negotiations[id] = *negotiation
	}
	return negotiations, nil
}

// batchGet fetches ids from a table keyed by a single string attribute.
// Ids are partitioned into chunks of at most chunkSize keys; chunks are
// fetched concurrently and each chunk retries its unprocessed keys exactly
// once. A full request failure on any chunk fails the whole call; keys
// still unprocessed after the retry are simply not in the result.
func (s *Store) batchGet(ctx context.Context, table, keyAttr string, ids []string) (map[string]Item, error) {
	if len(ids) == 0 {
		return map[string]Item{}, nil
	}

	chunks := chunkIDs(ids, s.chunkSize)
	results := make([]map[string]Item, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			found, err := s.fetchChunk(ctx, table, keyAttr, chunk)
			if err != nil {
				return err
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Ids map 1:1 to chunks, so the union is conflict-free.
	merged := make(map[string]Item, len(ids))
	for _, found := range results {
		for id, item := range found {
			merged[id] = item
		}
	}
	return merged, nil
}

func (s *Store) fetchChunk(ctx context.Context, table, keyAttr string, chunk []string) (map[string]Item, error) {
	keys := make([]Item, len(chunk))
	for i, id := range chunk {
		keys[i] = stringKey(keyAttr, id)
	}

	found := make(map[string]Item, len(chunk))
	collect := func(out *dynamodb.BatchGetItemOutput) {
		for _, item := range out.Responses[table] {
			if id := keyValue(item, keyAttr); id != "" {
				found[id] = item
			}
		}
	}

	out, err := s.client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
		RequestItems: map[string]types.KeysAndAttributes{
			table: {Keys: keys},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("batched fetch on %s failed: %w", table, err)
	}
	collect(out)

	// Unprocessed keys signal per-key throttling, not a systemic failure.
	// One retry pass; whatever is still missing stays unresolved.
	if unprocessed, ok := out.UnprocessedKeys[table]; ok && len(unprocessed.Keys) > 0 {
		s.logger.Warn("retrying unprocessed keys",
			zap.String("table", table),
			zap.Int("count", len(unprocessed.Keys)))

		retry, err := s.client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
			RequestItems: map[string]types.KeysAndAttributes{
				table: unprocessed,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("batched fetch retry on %s failed: %w", table, err)
		}
		collect(retry)
	}

	return found, nil
}

// chunkIDs partitions ids into slices of at most size elements.
func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
