package fakeapi

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/tote/internal/listapi"
)

// User is an account the fake service knows about.
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

type itemRow struct {
	id        int64
	name      string
	completed bool
	createdAt time.Time
}

type shareRow struct {
	id        int64
	userID    int64
	createdAt time.Time
}

type listRow struct {
	id          int64
	name        string
	description string
	ownerID     int64
	isDefault   bool
	shareID     string
	createdAt   time.Time
	updatedAt   time.Time
	items       []*itemRow
	shares      []*shareRow
}

// db is the in-memory dataset. Callers hold Server.mu.
type db struct {
	lists      []*listRow
	users      map[int64]User
	nextList   int64
	nextItem   int64
	nextShare  int64
	now        func() time.Time
	legacyDone bool
}

func newDB(users []User, now func() time.Time) *db {
	d := &db{users: make(map[int64]User), now: now}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

func (d *db) userByName(username string) (User, bool) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	for _, u := range d.users {
		if strings.EqualFold(u.Username, username) {
			return u, true
		}
	}
	return User{}, false
}

func (d *db) visible(l *listRow, userID int64) bool {
	if l.ownerID == userID {
		return true
	}
	for _, s := range l.shares {
		if s.userID == userID {
			return true
		}
	}
	return false
}

func (d *db) list(id, userID int64) *listRow {
	for _, l := range d.lists {
		if l.id == id && d.visible(l, userID) {
			return l
		}
	}
	return nil
}

func (d *db) createList(name string, ownerID int64) *listRow {
	d.nextList++
	now := d.now()
	l := &listRow{id: d.nextList, name: name, ownerID: ownerID, createdAt: now, updatedAt: now}
	d.lists = append([]*listRow{l}, d.lists...)
	return l
}

func (d *db) deleteList(id int64) {
	for i, l := range d.lists {
		if l.id == id {
			d.lists = append(d.lists[:i], d.lists[i+1:]...)
			return
		}
	}
}

// setDefault marks l as the caller's only default list, or clears it.
func (d *db) setDefault(l *listRow, on bool, userID int64) {
	if on {
		for _, other := range d.lists {
			if other != l && other.ownerID == userID {
				other.isDefault = false
			}
		}
	}
	l.isDefault = on
	l.updatedAt = d.now()
}

func (d *db) addItem(l *listRow, name string) *itemRow {
	d.nextItem++
	item := &itemRow{id: d.nextItem, name: name, createdAt: d.now()}
	l.items = append(l.items, item)
	l.updatedAt = d.now()
	return item
}

func (l *listRow) item(id int64) (*itemRow, int) {
	for i, item := range l.items {
		if item.id == id {
			return item, i
		}
	}
	return nil, -1
}

func (d *db) share(l *listRow, u User) *shareRow {
	d.nextShare++
	s := &shareRow{id: d.nextShare, userID: u.ID, createdAt: d.now()}
	l.shares = append(l.shares, s)
	if l.shareID == "" {
		l.shareID = uuid.NewString()
	}
	return s
}

func (l *listRow) shareFor(userID int64) (*shareRow, int) {
	for i, s := range l.shares {
		if s.userID == userID {
			return s, i
		}
	}
	return nil, -1
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func (d *db) listRecord(l *listRow, userID int64, withItems bool) listapi.ListRecord {
	rec := listapi.ListRecord{
		ID:         listapi.WireID(l.id),
		Name:       l.name,
		CreatedAt:  formatTime(l.createdAt),
		UpdatedAt:  formatTime(l.updatedAt),
		ShareID:    l.shareID,
		IsDefault:  l.isDefault && l.ownerID == userID,
		OwnerID:    listapi.WireID(l.ownerID),
		IsOwner:    l.ownerID == userID,
		SharedWith: len(l.shares),
		TotalItems: len(l.items),
	}
	if l.description != "" {
		desc := l.description
		rec.Description = &desc
	}
	for _, item := range l.items {
		if item.completed {
			rec.CompletedItems++
		}
	}
	if withItems {
		rec.Items = make([]listapi.ItemRecord, 0, len(l.items))
		for _, item := range l.items {
			rec.Items = append(rec.Items, d.itemRecord(item))
		}
	}
	return rec
}

func (d *db) itemRecord(item *itemRow) listapi.ItemRecord {
	done := item.completed
	rec := listapi.ItemRecord{
		ID:        listapi.WireID(item.id),
		Name:      item.name,
		CreatedAt: formatTime(item.createdAt),
	}
	if d.legacyDone {
		rec.IsDone = &done
	} else {
		rec.Completed = &done
	}
	return rec
}

func (d *db) shareRecord(l *listRow, s *shareRow) listapi.ShareRecord {
	u := d.users[s.userID]
	return listapi.ShareRecord{
		ID:                  listapi.WireID(s.id),
		ListID:              listapi.WireID(l.id),
		OwnerID:             listapi.WireID(l.ownerID),
		SharedWithUserID:    listapi.WireID(s.userID),
		SharedWithUsername:  u.Username,
		SharedWithFirstName: u.FirstName,
		SharedWithLastName:  u.LastName,
		CreatedAt:           formatTime(s.createdAt),
	}
}
