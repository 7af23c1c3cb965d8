package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || lines != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", lines, err)
	}
}

func TestParse(t *testing.T) {
	line := `{"level":"warn","ts":"2025-03-04T05:06:07.000Z","logger":"lists","msg":"operation rolled back","operation":"delete_item","status":500,"error":"database is down"}`
	e := Parse(line)

	if e.Raw {
		t.Fatal("Parse marked a JSON line as raw")
	}
	if e.Level != "WARN" || e.Logger != "lists" || e.Message != "operation rolled back" {
		t.Fatalf("Parse = %+v", e)
	}
	if want := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC); !e.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", e.Time, want)
	}
	wantFields := []Field{
		{Key: "error", Value: "database is down"},
		{Key: "operation", Value: "delete_item"},
		{Key: "status", Value: "500"},
	}
	if !reflect.DeepEqual(e.Fields, wantFields) {
		t.Fatalf("Fields = %+v, want %+v", e.Fields, wantFields)
	}
	if v, ok := e.Field("status"); !ok || v != "500" {
		t.Fatalf("Field(status) = %q, %v", v, ok)
	}
}

func TestParse_EpochTimestampAndNested(t *testing.T) {
	e := Parse(`{"level":"info","ts":1700000000.5,"msg":"x","ids":[1,2],"ok":true}`)
	if e.Time.Unix() != 1700000000 {
		t.Fatalf("Time = %v", e.Time)
	}
	if v, _ := e.Field("ids"); v != "[1,2]" {
		t.Fatalf("ids = %q", v)
	}
	if v, _ := e.Field("ok"); v != "true" {
		t.Fatalf("ok = %q", v)
	}
}

func TestParse_RawLines(t *testing.T) {
	for _, line := range []string{"plain text", "{not json"} {
		e := Parse(line)
		if !e.Raw || e.Message != line || e.String() != line {
			t.Fatalf("Parse(%q) = %+v", line, e)
		}
	}
}

func TestEntryString(t *testing.T) {
	e := Entry{
		Level:   "INFO",
		Logger:  "lists",
		Message: "operation committed",
		Fields: []Field{
			{Key: "name", Value: "Oat milk"},
			{Key: "operation", Value: "create_item"},
		},
	}
	want := `INFO  lists: operation committed name="Oat milk" operation=create_item`
	if got := e.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestParseLines_SkipsBlank(t *testing.T) {
	got := ParseLines([]string{"", `{"msg":"a"}`, "   ", "b"})
	if len(got) != 2 || got[0].Message != "a" || got[1].Message != "b" {
		t.Fatalf("ParseLines = %+v", got)
	}
}
