package store

import "errors"

var (
	// ErrNotFound means no row matched the (id, user_id) pair: wrong id,
	// wrong owner, or already completed/deleted.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a concurrent mutation raced out the operation
	// mid-transaction. The transaction is rolled back in full.
	ErrConflict = errors.New("conflict")

	// ErrAccountMissing means the referenced account does not exist.
	ErrAccountMissing = errors.New("account does not exist")

	// ErrDuplicateEmail means the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)
