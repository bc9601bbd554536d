package repository

import (
	"context"
	"errors"
)

// Collection names used by the service.
const (
	UsersCollection = "users"
	BooksCollection = "books"
)

var ErrCollectionNotFound = errors.New("collection not found")

// Store persists whole collections, each as one serialized blob.
// Implementations never merge or partially update a blob.
type Store interface {
	Load(ctx context.Context, collection string) ([]byte, error)
	Save(ctx context.Context, collection string, data []byte) error
}
