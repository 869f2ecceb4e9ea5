// Package mocks provides function-field mocks of the service interfaces the
// HTTP layer depends on.
//
// Each mock has one XxxFn field per interface method. An unset function falls
// back to the mock's default values, so a test only wires the calls it cares about:
//
//	svc := &mocks.MockDeckService{
//	    GetStatsFn: func(ctx context.Context, userID, deckID uuid.UUID) (queue.DeckStats, error) {
//	        return queue.DeckStats{Total: 3, New: 3}, nil
//	    },
//	}
//
// Calls are recorded so tests can assert on the arguments a handler passed through.
package mocks
