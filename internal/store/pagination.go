package store

import (
	"context"
)

// PageFunc issues one page of a query or scan. It receives the exclusive
// start key returned by the previous page (nil on the first call) and
// returns the page's items and the key to resume from; a nil resume key
// means the result set is exhausted.
type PageFunc func(ctx context.Context, startKey Item) ([]Item, Item, error)

// FetchAllPages drains a paginated query or scan. It places no bound on the
// number of pages or items; it stops only when the store returns no resume
// key. Pages are fetched strictly in sequence because each page's position
// depends on the previous one. Any page error propagates unchanged.
func FetchAllPages(ctx context.Context, fn PageFunc) ([]Item, error) {
	var all []Item
	var startKey Item

	for {
		items, nextKey, err := fn(ctx, startKey)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		if len(nextKey) == 0 {
			return all, nil
		}
		startKey = nextKey
	}
}
