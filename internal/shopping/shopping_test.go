package shopping

import "testing"

func TestNextPendingID_NegativeAndUnique(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		id := NextPendingID()
		if !id.Pending() {
			t.Fatalf("NextPendingID() = %d, want negative", id)
		}
		if seen[id] {
			t.Fatalf("NextPendingID() returned %d twice", id)
		}
		seen[id] = true
	}
	if ID(42).Pending() {
		t.Fatalf("ID(42).Pending() = true, want false")
	}
}

func TestListClone_IsIndependent(t *testing.T) {
	l := List{ID: 1, Items: []Item{{ID: 1, Name: "Milk"}}, Shares: []Share{{ID: 3}}}
	dup := l.Clone()
	dup.Items[0].Name = "Bread"
	dup.Shares[0].ID = 9
	if l.Items[0].Name != "Milk" || l.Shares[0].ID != 3 {
		t.Fatalf("Clone shares backing arrays: %#v", l)
	}
}

func TestListPatchApply(t *testing.T) {
	l := List{Name: "Old", ShareID: "a"}
	got := ListPatch{Name: Ptr("New"), IsDefault: Ptr(true)}.Apply(l)
	if got.Name != "New" || !got.IsDefault || got.ShareID != "a" {
		t.Fatalf("Apply = %#v, want name=New default=true share=a", got)
	}
	if !(ListPatch{}).Empty() {
		t.Fatalf("zero ListPatch should be empty")
	}
}

func TestItemPatchApply(t *testing.T) {
	item := Item{Name: "Milk"}
	got := ItemPatch{Completed: Ptr(true)}.Apply(item)
	if got.Name != "Milk" || !got.Completed {
		t.Fatalf("Apply = %#v, want Milk completed", got)
	}
}

func TestListProgress(t *testing.T) {
	l := List{TotalItems: 4, CompletedItems: 1}
	if done, total := l.Progress(); done != 1 || total != 4 {
		t.Fatalf("Progress() = %d/%d, want server counters 1/4", done, total)
	}
	l.ItemsLoaded = true
	l.Items = []Item{{Completed: true}, {}, {Completed: true}}
	if done, total := l.Progress(); done != 2 || total != 3 {
		t.Fatalf("Progress() = %d/%d, want 2/3", done, total)
	}
}

func TestShareDisplayName(t *testing.T) {
	tests := []struct {
		share Share
		want  string
	}{
		{Share{SharedWithUsername: "ann"}, "@ann"},
		{Share{SharedWithFirstName: "Ann", SharedWithLastName: "Lee"}, "Ann Lee"},
		{Share{SharedWithUserID: 7}, "user 7"},
	}
	for _, tt := range tests {
		if got := tt.share.DisplayName(); got != tt.want {
			t.Errorf("DisplayName() = %q, want %q", got, tt.want)
		}
	}
}
