package state

import (
	"time"

	"github.com/five82/tote/internal/shopping"
)

// Action is a state transition request accepted by Reduce.
type Action interface {
	actionName() string
}

// SetAllLists replaces the whole collection.
type SetAllLists struct {
	Lists []shopping.List
}

// AddList prepends a list.
type AddList struct {
	List shopping.List
}

// UpdateList merges Patch into the list with ID and refreshes its UpdatedAt.
// A non-zero UpdatedAt is used instead of the clock.
type UpdateList struct {
	ID        shopping.ID
	Patch     shopping.ListPatch
	UpdatedAt time.Time
}

// DeleteList removes the list with ID.
type DeleteList struct {
	ID shopping.ID
}

// ToggleDefault flips the default flag of the list with ID and clears it on
// every other list.
type ToggleDefault struct {
	ID shopping.ID
}

// SetListItems replaces the items of one list.
type SetListItems struct {
	ListID shopping.ID
	Items  []shopping.Item
}

// AddItem appends an item to a list.
type AddItem struct {
	ListID shopping.ID
	Item   shopping.Item
}

// UpdateItem merges Patch into one item.
type UpdateItem struct {
	ListID shopping.ID
	ItemID shopping.ID
	Patch  shopping.ItemPatch
}

// DeleteItem removes one item.
type DeleteItem struct {
	ListID shopping.ID
	ItemID shopping.ID
}

// SetLoading toggles the loading flag.
type SetLoading struct {
	Loading bool
}

// SetError records a user-visible message. An empty message clears it.
type SetError struct {
	Message string
}

// ReplaceList swaps the record with ID for List in place. When ID is gone the
// list is prepended unless a record with List.ID already exists.
type ReplaceList struct {
	ID   shopping.ID
	List shopping.List
}

// ReplaceItem swaps the item with ItemID for Item in place, appending when
// ItemID is gone and Item.ID is not present yet.
type ReplaceItem struct {
	ListID shopping.ID
	ItemID shopping.ID
	Item   shopping.Item
}

// RestoreList puts a snapshot back. An existing record with the same id is
// overwritten; otherwise the list is inserted at Index.
type RestoreList struct {
	List  shopping.List
	Index int
}

// RestoreItem puts an item snapshot back at Index (or over the current
// record) and resets the owning list's UpdatedAt.
type RestoreItem struct {
	ListID        shopping.ID
	Item          shopping.Item
	Index         int
	ListUpdatedAt time.Time
}

// DiscardItem drops a pending item and resets the owning list's UpdatedAt.
type DiscardItem struct {
	ListID        shopping.ID
	ItemID        shopping.ID
	ListUpdatedAt time.Time
}

// RestoreDefault marks ID as the only default list. Zero clears every flag.
type RestoreDefault struct {
	ID shopping.ID
}

// SetListShares replaces the share grants of one list.
type SetListShares struct {
	ListID shopping.ID
	Shares []shopping.Share
}

func (SetAllLists) actionName() string    { return "set-all-lists" }
func (AddList) actionName() string        { return "add-list" }
func (UpdateList) actionName() string     { return "update-list" }
func (DeleteList) actionName() string     { return "delete-list" }
func (ToggleDefault) actionName() string  { return "toggle-default" }
func (SetListItems) actionName() string   { return "set-list-items" }
func (AddItem) actionName() string        { return "add-item" }
func (UpdateItem) actionName() string     { return "update-item" }
func (DeleteItem) actionName() string     { return "delete-item" }
func (SetLoading) actionName() string     { return "set-loading" }
func (SetError) actionName() string       { return "set-error" }
func (ReplaceList) actionName() string    { return "replace-list" }
func (ReplaceItem) actionName() string    { return "replace-item" }
func (RestoreList) actionName() string    { return "restore-list" }
func (RestoreItem) actionName() string    { return "restore-item" }
func (DiscardItem) actionName() string    { return "discard-item" }
func (RestoreDefault) actionName() string { return "restore-default" }
func (SetListShares) actionName() string  { return "set-list-shares" }

// Name returns the kebab-case name of an action, used in logs.
func Name(a Action) string {
	if a == nil {
		return ""
	}
	return a.actionName()
}
