package state

import (
	"time"

	"github.com/five82/tote/internal/shopping"
)

// State is the single source of truth for the UI.
type State struct {
	Lists   []shopping.List
	Loading bool
	Error   string
}

// Find returns the list with id and its position.
func (s State) Find(id shopping.ID) (shopping.List, int, bool) {
	for i, l := range s.Lists {
		if l.ID == id {
			return l, i, true
		}
	}
	return shopping.List{}, -1, false
}

// FindItem returns an item, its position within the list, and the list.
func (s State) FindItem(listID, itemID shopping.ID) (shopping.Item, int, shopping.List, bool) {
	l, _, ok := s.Find(listID)
	if !ok {
		return shopping.Item{}, -1, shopping.List{}, false
	}
	idx := l.ItemIndex(itemID)
	if idx < 0 {
		return shopping.Item{}, -1, l, false
	}
	return l.Items[idx], idx, l, true
}

// DefaultID returns the id of the default list, or zero.
func (s State) DefaultID() shopping.ID {
	for _, l := range s.Lists {
		if l.IsDefault {
			return l.ID
		}
	}
	return 0
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	dup := s
	if s.Lists != nil {
		dup.Lists = make([]shopping.List, len(s.Lists))
		for i, l := range s.Lists {
			dup.Lists[i] = l.Clone()
		}
	}
	return dup
}

// Reduce applies a to s and returns the next state. It never mutates s; now
// stamps UpdatedAt on local mutations. Actions that reference missing records
// return s unchanged.
func Reduce(s State, a Action, now time.Time) State {
	switch a := a.(type) {
	case SetAllLists:
		s.Lists = cloneLists(a.Lists)

	case AddList:
		l := a.List.Clone()
		lists := make([]shopping.List, 0, len(s.Lists)+1)
		lists = append(lists, l)
		for _, existing := range s.Lists {
			if existing.ID == l.ID {
				continue
			}
			if l.IsDefault {
				existing.IsDefault = false
			}
			lists = append(lists, existing)
		}
		s.Lists = lists

	case UpdateList:
		if _, _, ok := s.Find(a.ID); !ok {
			return s
		}
		exclusive := a.Patch.IsDefault != nil && *a.Patch.IsDefault
		s.Lists = mapLists(s.Lists, func(l shopping.List) shopping.List {
			if l.ID != a.ID {
				if exclusive {
					l.IsDefault = false
				}
				return l
			}
			l = a.Patch.Apply(l)
			l.UpdatedAt = now
			if !a.UpdatedAt.IsZero() {
				l.UpdatedAt = a.UpdatedAt
			}
			return l
		})

	case DeleteList:
		if _, _, ok := s.Find(a.ID); !ok {
			return s
		}
		lists := make([]shopping.List, 0, len(s.Lists)-1)
		for _, l := range s.Lists {
			if l.ID != a.ID {
				lists = append(lists, l)
			}
		}
		s.Lists = lists

	case ToggleDefault:
		if _, _, ok := s.Find(a.ID); !ok {
			return s
		}
		s.Lists = mapLists(s.Lists, func(l shopping.List) shopping.List {
			if l.ID == a.ID {
				l.IsDefault = !l.IsDefault
			} else {
				l.IsDefault = false
			}
			return l
		})

	case RestoreDefault:
		s.Lists = mapLists(s.Lists, func(l shopping.List) shopping.List {
			l.IsDefault = a.ID != 0 && l.ID == a.ID
			return l
		})

	case SetListItems:
		s.Lists = updateList(s.Lists, a.ListID, func(l shopping.List) shopping.List {
			l.Items = cloneItems(a.Items)
			if l.Items == nil {
				l.Items = []shopping.Item{}
			}
			l.ItemsLoaded = true
			return l
		})

	case AddItem:
		s.Lists = updateList(s.Lists, a.ListID, func(l shopping.List) shopping.List {
			if l.ItemIndex(a.Item.ID) >= 0 {
				return l
			}
			items := make([]shopping.Item, 0, len(l.Items)+1)
			items = append(items, l.Items...)
			l.Items = append(items, a.Item)
			l.UpdatedAt = now
			return l
		})

	case UpdateItem:
		s.Lists = updateList(s.Lists, a.ListID, func(l shopping.List) shopping.List {
			idx := l.ItemIndex(a.ItemID)
			if idx < 0 {
				return l
			}
			l.Items = cloneItems(l.Items)
			l.Items[idx] = a.Patch.Apply(l.Items[idx])
			l.UpdatedAt = now
			return l
		})

	case DeleteItem:
		s.Lists = updateList(s.Lists, a.ListID, func(l shopping.List) shopping.List {
			if l.ItemIndex(a.ItemID) < 0 {
				return l
			}
			l.Items = removeItem(l.Items, a.ItemID)
			l.UpdatedAt = now
			return l
		})

	case SetLoading:
		s.Loading = a.Loading

	case SetError:
		s.Error = a.Message

	case ReplaceList:
		s.Lists = replaceList(s.Lists, a.ID, a.List)

	case ReplaceItem:
		s.Lists = updateList(s.Lists, a.ListID, func(l shopping.List) shopping.List {
			items := cloneItems(l.Items)
			idx := l.ItemIndex(a.ItemID)
			if dup := l.ItemIndex(a.Item.ID); dup >= 0 && dup != idx {
				if idx >= 0 {
					items = removeItem(items, a.ItemID)
				}
				l.Items = items
				l.Items[l.ItemIndex(a.Item.ID)] = a.Item
				return l
			}
			if idx < 0 {
				l.Items = append(items, a.Item)
				return l
			}
			items[idx] = a.Item
			l.Items = items
			return l
		})

	case RestoreList:
		l := a.List.Clone()
		if _, idx, ok := s.Find(l.ID); ok {
			lists := cloneShallow(s.Lists)
			lists[idx] = l
			s.Lists = lists
		} else {
			s.Lists = insertList(s.Lists, a.Index, l)
		}
		if l.IsDefault {
			s.Lists = mapLists(s.Lists, func(other shopping.List) shopping.List {
				if other.ID != l.ID {
					other.IsDefault = false
				}
				return other
			})
		}

	case RestoreItem:
		s.Lists = updateList(s.Lists, a.ListID, func(l shopping.List) shopping.List {
			items := cloneItems(l.Items)
			if idx := l.ItemIndex(a.Item.ID); idx >= 0 {
				items[idx] = a.Item
			} else {
				items = insertItem(items, a.Index, a.Item)
			}
			l.Items = items
			if !a.ListUpdatedAt.IsZero() {
				l.UpdatedAt = a.ListUpdatedAt
			}
			return l
		})

	case DiscardItem:
		s.Lists = updateList(s.Lists, a.ListID, func(l shopping.List) shopping.List {
			if l.ItemIndex(a.ItemID) < 0 {
				return l
			}
			l.Items = removeItem(l.Items, a.ItemID)
			if !a.ListUpdatedAt.IsZero() {
				l.UpdatedAt = a.ListUpdatedAt
			}
			return l
		})

	case SetListShares:
		s.Lists = updateList(s.Lists, a.ListID, func(l shopping.List) shopping.List {
			l.Shares = make([]shopping.Share, len(a.Shares))
			copy(l.Shares, a.Shares)
			l.SharedWith = len(a.Shares)
			return l
		})
	}
	return s
}

// replaceList swaps the record with id for next, carrying already fetched
// items over when next arrived without them.
func replaceList(lists []shopping.List, id shopping.ID, next shopping.List) []shopping.List {
	next = next.Clone()
	target := -1
	for i, l := range lists {
		if l.ID == id {
			target = i
			break
		}
	}
	if target < 0 {
		for i, l := range lists {
			if l.ID == next.ID {
				target = i
				break
			}
		}
	}

	out := make([]shopping.List, 0, len(lists)+1)
	if target < 0 {
		out = append(out, next)
	}
	for i, l := range lists {
		switch {
		case i == target:
			if !next.ItemsLoaded && l.ItemsLoaded {
				next.Items = cloneItems(l.Items)
				next.ItemsLoaded = true
			}
			out = append(out, next)
		case l.ID == next.ID || l.ID == id:
			// drop duplicates of the confirmed record
		default:
			if next.IsDefault {
				l.IsDefault = false
			}
			out = append(out, l)
		}
	}
	return out
}

func updateList(lists []shopping.List, id shopping.ID, fn func(shopping.List) shopping.List) []shopping.List {
	for i, l := range lists {
		if l.ID == id {
			out := cloneShallow(lists)
			out[i] = fn(l)
			return out
		}
	}
	return lists
}

func mapLists(lists []shopping.List, fn func(shopping.List) shopping.List) []shopping.List {
	out := make([]shopping.List, len(lists))
	for i, l := range lists {
		out[i] = fn(l)
	}
	return out
}

func insertList(lists []shopping.List, index int, l shopping.List) []shopping.List {
	index = clamp(index, len(lists))
	out := make([]shopping.List, 0, len(lists)+1)
	out = append(out, lists[:index]...)
	out = append(out, l)
	return append(out, lists[index:]...)
}

func insertItem(items []shopping.Item, index int, item shopping.Item) []shopping.Item {
	index = clamp(index, len(items))
	out := make([]shopping.Item, 0, len(items)+1)
	out = append(out, items[:index]...)
	out = append(out, item)
	return append(out, items[index:]...)
}

func removeItem(items []shopping.Item, id shopping.ID) []shopping.Item {
	out := make([]shopping.Item, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

func clamp(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n {
		return n
	}
	return index
}

func cloneShallow(lists []shopping.List) []shopping.List {
	out := make([]shopping.List, len(lists))
	copy(out, lists)
	return out
}

func cloneLists(lists []shopping.List) []shopping.List {
	if lists == nil {
		return nil
	}
	out := make([]shopping.List, len(lists))
	for i, l := range lists {
		out[i] = l.Clone()
	}
	return out
}

func cloneItems(items []shopping.Item) []shopping.Item {
	if items == nil {
		return nil
	}
	out := make([]shopping.Item, len(items))
	copy(out, items)
	return out
}
