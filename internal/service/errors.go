package service

import "errors"

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrCategoryNotFound = errors.New("ticket category not found")
	ErrAuctionNotFound  = errors.New("auction not found")

	ErrNotEventOwner   = errors.New("caller does not own this event")
	ErrNotAuctionOwner = errors.New("only the auction owner can close the auction")

	// ErrAssetLocked guards every mutation of an already-minted category.
	ErrAssetLocked  = errors.New("ticket category is already tokenized")
	ErrNotTokenized = errors.New("ticket category is not tokenized yet")

	// ErrSequenceConflict surfaces only after allocation retries are
	// exhausted; a single conflict is retried transparently.
	ErrSequenceConflict = errors.New("sequence allocation conflict")

	ErrBidTooLow           = errors.New("bid must exceed the current highest bid")
	ErrAuctionClosed       = errors.New("auction is closed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrPriceAboveFace      = errors.New("starting price must not exceed the category's price per unit")

	ErrInvalidPublicKey = errors.New("invalid account public key")
	ErrChallengeExpired = errors.New("challenge expired or unknown")
	ErrInvalidSignature = errors.New("signature verification failed")
)

// A duplicate-key conflict on the sequence unique index is retried this
// many times before giving up.
const maxAllocationRetries = 3
