// Package store holds the set of currently valid invitation tokens.
//
// Membership is the only state: a present token is valid and unredeemed, an
// absent token was redeemed or never issued.
package store

import "context"

type Store interface {
	// AddMissing inserts tokens and returns the ones that were not already present.
	AddMissing(ctx context.Context, tokens []string) ([]string, error)
	List(ctx context.Context) ([]string, error)
	// Remove deletes token and reports whether it was present, as one step.
	Remove(ctx context.Context, token string) (bool, error)
}
