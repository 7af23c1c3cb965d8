// Package shopping defines the canonical in-memory shapes for shopping lists,
// their items and share grants. Wire formats are translated into these types
// by the listapi package before the store ever sees them.
package shopping

import (
	"errors"
	"strconv"
	"sync/atomic"
	"time"
)

// Validation errors. They are returned before any state change or remote call.
var (
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrPending       = errors.New("record is not confirmed by the server yet")
)

// ID identifies a list, item or share. Negative values are reserved for
// pending records that the server has not confirmed.
type ID int64

// Pending reports whether the id belongs to an unconfirmed record.
func (id ID) Pending() bool {
	return id < 0
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Item is a single entry on a list.
type Item struct {
	ID        ID
	Name      string
	Completed bool
	CreatedAt time.Time
}

// Share is a grant giving another chat user access to a list.
type Share struct {
	ID                  ID
	ListID              ID
	OwnerID             int64
	SharedWithUserID    int64
	SharedWithUsername  string
	SharedWithFirstName string
	SharedWithLastName  string
	CreatedAt           time.Time
}

// DisplayName returns the best available label for the grantee.
func (s Share) DisplayName() string {
	if s.SharedWithUsername != "" {
		return "@" + s.SharedWithUsername
	}
	name := s.SharedWithFirstName
	if s.SharedWithLastName != "" {
		if name != "" {
			name += " "
		}
		name += s.SharedWithLastName
	}
	if name == "" {
		return "user " + strconv.FormatInt(s.SharedWithUserID, 10)
	}
	return name
}

// List is a named collection of items owned by one user.
type List struct {
	ID             ID
	Name           string
	Description    string
	Items          []Item
	ItemsLoaded    bool // Items came from the server rather than being absent on the wire
	TotalItems     int
	CompletedItems int
	IsDefault      bool
	IsOwner        bool
	OwnerID        int64
	ShareID        string
	SharedWith     int
	Shares         []Share
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Clone returns a deep copy of the list.
func (l List) Clone() List {
	dup := l
	if l.Items != nil {
		dup.Items = make([]Item, len(l.Items))
		copy(dup.Items, l.Items)
	}
	if l.Shares != nil {
		dup.Shares = make([]Share, len(l.Shares))
		copy(dup.Shares, l.Shares)
	}
	return dup
}

// ItemIndex returns the position of the item with id, or -1.
func (l List) ItemIndex(id ID) int {
	for i := range l.Items {
		if l.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Progress returns completed and total counts from the loaded items, falling
// back to the server-computed counters when items have not been fetched.
func (l List) Progress() (done, total int) {
	if len(l.Items) == 0 && !l.ItemsLoaded {
		return l.CompletedItems, l.TotalItems
	}
	for _, item := range l.Items {
		if item.Completed {
			done++
		}
	}
	return done, len(l.Items)
}

// ListPatch carries the fields an update touches. Nil fields are left alone.
type ListPatch struct {
	Name        *string
	Description *string
	IsDefault   *bool
	ShareID     *string
	SharedWith  *int
}

// Empty reports whether the patch changes nothing.
func (p ListPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.IsDefault == nil && p.ShareID == nil && p.SharedWith == nil
}

// Apply merges the patch into l.
func (p ListPatch) Apply(l List) List {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.IsDefault != nil {
		l.IsDefault = *p.IsDefault
	}
	if p.ShareID != nil {
		l.ShareID = *p.ShareID
	}
	if p.SharedWith != nil {
		l.SharedWith = *p.SharedWith
	}
	return l
}

// ItemPatch carries the fields an item update touches.
type ItemPatch struct {
	Name      *string
	Completed *bool
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Completed == nil
}

// Apply merges the patch into item.
func (p ItemPatch) Apply(item Item) Item {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Completed != nil {
		item.Completed = *p.Completed
	}
	return item
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}

var pendingSeq atomic.Int64

// NextPendingID returns a fresh negative id for a record awaiting
// confirmation. Ids are unique for the life of the process.
func NextPendingID() ID {
	return ID(-pendingSeq.Add(1))
}
