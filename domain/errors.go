package domain

import "errors"

var (
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")

	// ErrEndpointExhausted means every configured rpc endpoint for a chain
	// failed its liveness probe. The chain is skipped for the pass.
	ErrEndpointExhausted = errors.New("all rpc endpoints exhausted")
	// ErrBlockFetch means a single block could not be fetched. The block is
	// skipped and its deposits are permanently missed.
	ErrBlockFetch = errors.New("block fetch failed")
	// ErrInvalidAddress means the directory returned a malformed address.
	// The address is excluded from the monitoring set.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrDirectoryUnavailable means the address directory cannot be resolved
	// at all. The pass for that chain aborts, other chains are unaffected.
	ErrDirectoryUnavailable = errors.New("address directory unavailable")
	// ErrScanInProgress rejects re-entrant orchestrated passes.
	ErrScanInProgress = errors.New("scan already in progress")

	ErrUnsupportedChain = errors.New("unsupported chain")
)
