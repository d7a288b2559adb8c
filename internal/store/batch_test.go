package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func profileIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("p%03d", i)
	}
	return ids
}

// TestResolveProfiles_ChunkingWithRetry resolves 250 ids through 100-key
// chunks where the store throttles 3 keys of the second chunk once.
func TestResolveProfiles_ChunkingWithRetry(t *testing.T) {
	ids := profileIDs(250)
	backend := newBatchBackend("profileId", ids...)
	backend.throttleOnce("p150", "p151", "p152")

	fake := &fakeDynamo{batchFn: backend.handle}
	s := New(fake, testTables, 100, zap.NewNop())

	profiles, err := s.ResolveProfiles(context.Background(), ids)
	require.NoError(t, err)

	assert.Len(t, profiles, 250)
	for _, id := range ids {
		assert.Contains(t, profiles, id)
	}

	// 3 chunks plus exactly one retry for the throttled keys.
	_, _, batchCalls := fake.calls()
	assert.Equal(t, 4, batchCalls)
}

// TestResolveProfiles_ChunkSizeIndependence yields the same mapping for
// chunks of size 1 and size 100 over the same backing data.
func TestResolveProfiles_ChunkSizeIndependence(t *testing.T) {
	ids := profileIDs(7)
	backend := newBatchBackend("profileId", ids[:5]...)

	small := New(&fakeDynamo{batchFn: backend.handle}, testTables, 1, zap.NewNop())
	large := New(&fakeDynamo{batchFn: backend.handle}, testTables, 100, zap.NewNop())

	bySmall, err := small.ResolveProfiles(context.Background(), ids)
	require.NoError(t, err)
	byLarge, err := large.ResolveProfiles(context.Background(), ids)
	require.NoError(t, err)

	assert.Equal(t, byLarge, bySmall)
	assert.Len(t, bySmall, 5)
}

// TestResolveProfiles_UnresolvedAfterRetryAbsent leaves keys the store never
// returns out of the mapping without failing the call.
func TestResolveProfiles_UnresolvedAfterRetryAbsent(t *testing.T) {
	backend := newBatchBackend("profileId", "p1", "p2")

	s := New(&fakeDynamo{batchFn: backend.handle}, testTables, 100, zap.NewNop())

	profiles, err := s.ResolveProfiles(context.Background(), []string{"p1", "p2", "ghost"})
	require.NoError(t, err)

	assert.Len(t, profiles, 2)
	assert.NotContains(t, profiles, "ghost")
	// Result key set is a subset of the input id set.
	for id := range profiles {
		assert.Contains(t, []string{"p1", "p2", "ghost"}, id)
	}
}

// TestResolveProfiles_HardFailureFatal propagates a full request failure
func TestResolveProfiles_HardFailureFatal(t *testing.T) {
	storeErr := errors.New("connection reset")
	fake := &fakeDynamo{
		batchFn: func(_ *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
			return nil, storeErr
		},
	}
	s := New(fake, testTables, 100, zap.NewNop())

	profiles, err := s.ResolveProfiles(context.Background(), []string{"p1"})
	require.ErrorIs(t, err, storeErr)
	assert.Nil(t, profiles)
}

// TestResolveProfiles_NoIDsNoCalls makes no store calls for an empty id set
func TestResolveProfiles_NoIDsNoCalls(t *testing.T) {
	fake := &fakeDynamo{}
	s := New(fake, testTables, 100, zap.NewNop())

	profiles, err := s.ResolveProfiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, profiles)

	_, _, batchCalls := fake.calls()
	assert.Zero(t, batchCalls)
}

// TestResolveProfiles_CertificationsSetOrList normalizes both storage
// representations of the certifications attribute to a slice.
func TestResolveProfiles_CertificationsSetOrList(t *testing.T) {
	backend := newBatchBackend("profileId")
	backend.data["p1"] = Item{
		"profileId":      stringAttr("p1"),
		"firstName":      stringAttr("Dana"),
		"certifications": &types.AttributeValueMemberSS{Value: []string{"RDH", "CPR"}},
	}
	backend.data["p2"] = Item{
		"profileId": stringAttr("p2"),
		"firstName": stringAttr("Sam"),
		"certifications": &types.AttributeValueMemberL{Value: []types.AttributeValue{
			stringAttr("DVM"),
		}},
	}

	s := New(&fakeDynamo{batchFn: backend.handle}, testTables, 100, zap.NewNop())

	profiles, err := s.ResolveProfiles(context.Background(), []string{"p1", "p2"})
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	assert.ElementsMatch(t, []string{"RDH", "CPR"}, profiles["p1"].Certifications)
	assert.Equal(t, []string{"DVM"}, profiles["p2"].Certifications)
}

// TestResolveNegotiations_DropsMalformed keeps decodable records and drops
// items missing their key attribute.
func TestResolveNegotiations_DropsMalformed(t *testing.T) {
	backend := newBatchBackend("negotiationId", "n1")
	backend.data["n2"] = Item{
		"negotiationId": stringAttr("n2"),
		"messageCount":  stringAttr("three"), // malformed: numeric attribute stored as string
	}

	s := New(&fakeDynamo{batchFn: backend.handle}, testTables, 100, zap.NewNop())

	negotiations, err := s.ResolveNegotiations(context.Background(), []string{"n1", "n2"})
	require.NoError(t, err)

	assert.Len(t, negotiations, 1)
	assert.Contains(t, negotiations, "n1")
}
