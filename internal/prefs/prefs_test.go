package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func writePrefs(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme || p.LastListID != 0 || p.HideCompleted {
		t.Fatalf("Load = %+v, want defaults", p)
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "tote")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	body := "theme = \"Slate\"\nlast_list_id = 12\nhide_completed = true\n"
	if err := os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Slate" || p.LastListID != 12 || !p.HideCompleted {
		t.Fatalf("Load = %+v", p)
	}
}

func TestSave_RoundTripCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	if err := Save(path, Prefs{Theme: "Slate", LastListID: 4}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Theme != "Slate" || loaded.LastListID != 4 {
		t.Fatalf("Load = %+v", loaded)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestUpdate_PreservesOtherFields(t *testing.T) {
	path := writePrefs(t, "theme = \"Slate\"\n")

	if err := Update(path, func(p *Prefs) { p.LastListID = 9 }); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	p, _ := Load(path)
	if p.Theme != "Slate" || p.LastListID != 9 {
		t.Fatalf("Load = %+v", p)
	}
}

func TestLoad_FallsBackOnBadValues(t *testing.T) {
	tests := map[string]string{
		"empty theme":  "theme = \"\"\n",
		"invalid toml": "not valid toml {{{\n",
		"negative id":  "last_list_id = -3\n",
	}
	for name, body := range tests {
		p, err := Load(writePrefs(t, body))
		if err != nil {
			t.Fatalf("%s: Load returned error: %v", name, err)
		}
		if p.Theme != defaultTheme || p.LastListID != 0 {
			t.Fatalf("%s: Load = %+v, want defaults", name, p)
		}
	}
}
