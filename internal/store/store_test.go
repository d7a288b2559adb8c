package store

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is a test double for the DynamoDB client. Behavior is supplied
// through function fields; call counts are tracked under a mutex because
// batched fetches run concurrently.
type fakeDynamo struct {
	mu sync.Mutex

	queryFn func(params *dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	scanFn  func(params *dynamodb.ScanInput) (*dynamodb.ScanOutput, error)
	batchFn func(params *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error)

	queryCalls int
	scanCalls  int
	batchCalls int
}

func (f *fakeDynamo) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	f.queryCalls++
	fn := f.queryFn
	f.mu.Unlock()
	return fn(params)
}

func (f *fakeDynamo) Scan(_ context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	f.scanCalls++
	fn := f.scanFn
	f.mu.Unlock()
	return fn(params)
}

func (f *fakeDynamo) BatchGetItem(_ context.Context, params *dynamodb.BatchGetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error) {
	f.mu.Lock()
	f.batchCalls++
	fn := f.batchFn
	f.mu.Unlock()
	return fn(params)
}

func (f *fakeDynamo) calls() (query, scan, batch int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queryCalls, f.scanCalls, f.batchCalls
}

// stringAttr builds a string attribute value.
func stringAttr(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

// testTables is the table layout used across store tests.
var testTables = Tables{
	Jobs:         "jobs",
	Applications: "applications",
	Profiles:     "profiles",
	Negotiations: "negotiations",
}

// batchBackend simulates a key-value table behind BatchGetItem, with an
// optional set of keys that are reported unprocessed exactly once before
// succeeding on the retry.
type batchBackend struct {
	mu       sync.Mutex
	keyAttr  string
	data     map[string]Item
	failOnce map[string]bool
}

func newBatchBackend(keyAttr string, ids ...string) *batchBackend {
	data := make(map[string]Item, len(ids))
	for _, id := range ids {
		data[id] = Item{keyAttr: stringAttr(id)}
	}
	return &batchBackend{keyAttr: keyAttr, data: data, failOnce: map[string]bool{}}
}

func (b *batchBackend) throttleOnce(ids ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range ids {
		b.failOnce[id] = true
	}
}

func (b *batchBackend) handle(params *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := &dynamodb.BatchGetItemOutput{
		Responses:       map[string][]Item{},
		UnprocessedKeys: map[string]types.KeysAndAttributes{},
	}

	for table, kaa := range params.RequestItems {
		var unprocessed []Item
		for _, key := range kaa.Keys {
			id := keyValue(key, b.keyAttr)
			if b.failOnce[id] {
				delete(b.failOnce, id)
				unprocessed = append(unprocessed, key)
				continue
			}
			if item, ok := b.data[id]; ok {
				out.Responses[table] = append(out.Responses[table], item)
			}
		}
		if len(unprocessed) > 0 {
			out.UnprocessedKeys[table] = types.KeysAndAttributes{Keys: unprocessed}
		}
	}
	return out, nil
}
