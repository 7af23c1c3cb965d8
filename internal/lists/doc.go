// Package lists runs user-initiated operations on shopping lists and items.
//
// Every mutation follows the same sequence:
//
//	snapshot -> optimistic dispatch -> remote call -> confirm or revert
//
// Creates insert a pending record with a negative id and swap it for the
// server's record on success. Item updates, toggles and deletes keep a
// snapshot of the record and its position and put it back if the remote call
// fails. List updates revert only the fields they touched; a failed list
// delete restores the whole list. On
// failure the manager stores a readable message in State.Error and returns the
// original error, so callers can still inspect the *listapi.APIError.
//
// Mutations on the same list or item are serialized; the second waits until
// the first has confirmed or reverted. Operations on records missing from the
// store return nil without touching the network. Records still awaiting
// confirmation reject further mutations with shopping.ErrPending.
//
// Fetch operations raise State.Loading while any fetch is running and leave
// existing data in place when they fail. A list refresh that overlapped a
// mutation is discarded instead of applied.
package lists
