package listapi

import (
	"encoding/json"
	"testing"
	"time"
)

func TestWireID_AcceptsNumbersAndStrings(t *testing.T) {
	tests := []struct {
		in      string
		want    WireID
		wantErr bool
	}{
		{`42`, 42, false},
		{`"42"`, 42, false},
		{`" 7 "`, 7, false},
		{`null`, 0, false},
		{`""`, 0, false},
		{`"abc"`, 0, true},
		{`1.5`, 0, true},
	}
	for _, tt := range tests {
		var got WireID
		err := json.Unmarshal([]byte(tt.in), &got)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Unmarshal(%s) returned nil error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unmarshal(%s) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Unmarshal(%s) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestItemRecord_CompletionFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"isDone only", `{"id":1,"name":"Milk","isDone":true}`, true},
		{"completed only", `{"id":1,"name":"Milk","completed":true}`, true},
		{"completed wins", `{"id":1,"name":"Milk","completed":false,"isDone":true}`, false},
		{"neither", `{"id":1,"name":"Milk"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec ItemRecord
			if err := json.Unmarshal([]byte(tt.raw), &rec); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got := rec.ToItem().Completed; got != tt.want {
				t.Fatalf("Completed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestItemRecord_TimestampIsSameInstant(t *testing.T) {
	var rec ItemRecord
	if err := json.Unmarshal([]byte(`{"id":"5","name":"Eggs","createdAt":"2024-01-01T00:00:00.000Z"}`), &rec); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	item := rec.ToItem()
	want := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !item.CreatedAt.Equal(want) {
		t.Fatalf("CreatedAt = %v, want %v", item.CreatedAt, want)
	}
	if item.ID != 5 {
		t.Fatalf("ID = %d, want 5", item.ID)
	}
}

func TestListRecord_ItemsPresenceAndDefaults(t *testing.T) {
	var withItems, without ListRecord
	if err := json.Unmarshal([]byte(`{"id":1,"name":"A","items":[],"createdAt":"2024-02-03T04:05:06Z"}`), &withItems); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"id":"2","name":"B","description":"weekly","ownerId":"9","isOwner":true}`), &without); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	a := withItems.ToList()
	if !a.ItemsLoaded || a.Items == nil {
		t.Fatalf("list with items array should be marked loaded: %#v", a)
	}
	if !a.UpdatedAt.Equal(a.CreatedAt) {
		t.Fatalf("UpdatedAt = %v, want CreatedAt fallback %v", a.UpdatedAt, a.CreatedAt)
	}

	b := without.ToList()
	if b.ItemsLoaded || b.Items != nil {
		t.Fatalf("list without items should not be marked loaded: %#v", b)
	}
	if b.Description != "weekly" || b.OwnerID != 9 || !b.IsOwner || b.ID != 2 {
		t.Fatalf("ToList = %#v", b)
	}
}

func TestParseTimeAcceptsRFC3339Only(t *testing.T) {
	if parseTime("2025-12-13T10:11:12Z").IsZero() {
		t.Fatalf("parseTime should parse RFC3339")
	}
	got := parseTime("2025-12-13T10:11:12.345Z")
	if got.Year() != 2025 || got.Month() != time.December || got.Nanosecond() != 345000000 {
		t.Fatalf("parseTime = %v, want 2025-12-13 with milliseconds", got)
	}
	for _, value := range []string{"2025-12-13 10:11:12", "yesterday", ""} {
		if !parseTime(value).IsZero() {
			t.Fatalf("parseTime(%q) should return zero", value)
		}
	}
}
