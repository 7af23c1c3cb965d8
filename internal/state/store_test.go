package state

import (
	"sync"
	"testing"
	"time"

	"github.com/five82/tote/internal/shopping"
)

func TestStore_DispatchAndStateClone(t *testing.T) {
	var s Store

	s.Dispatch(SetAllLists{Lists: []shopping.List{{ID: 1, Name: "Groceries", Items: []shopping.Item{{ID: 1, Name: "Milk"}}}}})

	st := s.State()
	if len(st.Lists) != 1 || st.Lists[0].Items[0].Name != "Milk" {
		t.Fatalf("State = %#v, want one list with Milk", st)
	}

	// Returned state should be independent of the stored one.
	st.Lists[0].Items[0].Name = "Bread"
	st.Lists[0].Name = "Changed"
	again := s.State()
	if again.Lists[0].Items[0].Name != "Milk" || again.Lists[0].Name != "Groceries" {
		t.Fatalf("State should clone lists; got %#v", again.Lists[0])
	}
	if s.Version() != 1 {
		t.Fatalf("Version = %d, want 1", s.Version())
	}
}

func TestStore_UsesInjectedClock(t *testing.T) {
	fixed := time.Date(2030, 5, 6, 7, 8, 9, 0, time.UTC)
	s := NewStore(State{Lists: []shopping.List{{ID: 1}}}, func() time.Time { return fixed })

	s.Dispatch(UpdateList{ID: 1, Patch: shopping.ListPatch{Name: shopping.Ptr("x")}})
	if got := s.State().Lists[0].UpdatedAt; !got.Equal(fixed) {
		t.Fatalf("UpdatedAt = %v, want %v", got, fixed)
	}
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	var s Store
	var got []State
	unsubscribe := s.Subscribe(func(st State) { got = append(got, st) })

	s.Dispatch(SetLoading{Loading: true})
	s.Dispatch(SetError{Message: "boom"})
	unsubscribe()
	s.Dispatch(SetLoading{Loading: false})

	if len(got) != 2 {
		t.Fatalf("subscriber saw %d states, want 2", len(got))
	}
	if !got[1].Loading || got[1].Error != "boom" {
		t.Fatalf("second notification = %#v, want loading with error", got[1])
	}
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	var s Store
	s.Dispatch(SetAllLists{Lists: []shopping.List{{ID: 1}}})

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			s.Dispatch(AddItem{ListID: 1, Item: shopping.Item{ID: shopping.ID(id)}})
			_ = s.State()
		}(i)
	}
	wg.Wait()

	if n := len(s.State().Lists[0].Items); n != 50 {
		t.Fatalf("items = %d, want 50", n)
	}
}

func TestSelection_SelectNotifiesOnChange(t *testing.T) {
	var sel Selection
	var seen []shopping.ID
	sel.Subscribe(func(id shopping.ID) { seen = append(seen, id) })

	sel.Select(3)
	sel.Select(3)
	sel.Clear()

	if len(seen) != 2 || seen[0] != 3 || seen[1] != 0 {
		t.Fatalf("notifications = %v, want [3 0]", seen)
	}
	if sel.Active() != 0 {
		t.Fatalf("Active = %d, want 0", sel.Active())
	}
}

func TestSelection_FollowClearsDeletedList(t *testing.T) {
	var store Store
	var sel Selection
	stop := sel.Follow(&store)
	defer stop()

	sel.Select(1)
	store.Dispatch(SetLoading{Loading: true})
	store.Dispatch(SetAllLists{Lists: []shopping.List{{ID: 1}, {ID: 2}}})
	store.Dispatch(SetLoading{Loading: false})
	if sel.Active() != 1 {
		t.Fatalf("Active = %d, want 1 after load", sel.Active())
	}

	store.Dispatch(DeleteList{ID: 1})
	if sel.Active() != 0 {
		t.Fatalf("Active = %d, want cleared after delete", sel.Active())
	}
}
