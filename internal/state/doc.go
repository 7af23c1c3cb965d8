// Package state holds the shopping-list collection shared by the mutation
// layer and the UI.
//
// # Overview
//
// State is changed only by dispatching an Action to a Store. The Store runs
// the pure Reduce function under a write lock, bumps its version and hands a
// copy of the result to every subscriber.
//
//	lists.Manager            Store                     UI
//	┌──────────────┐   Dispatch(AddItem)   ┌────────┐  State()  ┌────────┐
//	│ optimistic   │──────────────────────→│ Reduce │←──────────│ render │
//	│ remote call  │                       │ (pure) │           └────────┘
//	│ reconcile    │──────────────────────→│        │──Subscribe──→ Selection
//	└──────────────┘   ReplaceItem / ...   └────────┘
//
// # Core Types
//
// State:
//   - Lists in display order (newest first), plus Loading and Error
//   - Find / FindItem / DefaultID lookups used to take snapshots
//
// Store:
//   - sync.RWMutex around the current State
//   - Dispatch(Action): reduce, then notify subscribers outside the lock
//   - State(): deep copy, safe to keep and mutate
//   - Zero value is ready to use; NewStore injects a clock for tests
//
// Selection:
//   - the active list, owned by the application and passed down explicitly
//   - Subscribe for changes, Follow to clear it when the list goes away
//
// # Actions
//
// Collection actions mirror user operations (AddList, UpdateList, DeleteList,
// ToggleDefault, SetListItems, AddItem, UpdateItem, DeleteItem, SetLoading,
// SetError, SetAllLists). Reconciliation actions finish an optimistic
// mutation:
//
//	ReplaceList / ReplaceItem    pending record -> server record, in place
//	RestoreList / RestoreItem    snapshot back at its original index
//	DiscardItem                  drop a pending item, restore list UpdatedAt
//	RestoreDefault               default flag back to its previous owner
//
// Actions that name a record that is not present leave the state unchanged.
//
// # Invariants
//
//   - List ids are unique in the collection; item ids are unique in a list
//   - At most one list has IsDefault set
//   - UpdatedAt moves forward on every local change to a list or its items,
//     and moves back only when a rollback restores a snapshot
//
// # Concurrency
//
// Dispatch is serialized by the lock, so concurrent mutations interleave at
// action granularity. Subscribers run on the dispatching goroutine and must
// not call Dispatch re-entrantly while holding their own locks.
package state
