package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCommentPreservation(t *testing.T) {
	testDir := t.TempDir()
	sourcesPath := filepath.Join(testDir, "sources")

	initialContent := `# This is a comment
# Another comment with some context
onet

# Radio
rmf24 RMF FM news
# Science
naukawpolsce Nauka w Polsce

# End of sources
`

	if err := os.WriteFile(sourcesPath, []byte(initialContent), 0644); err != nil {
		t.Fatalf("Failed to write initial file: %v", err)
	}

	lines, err := ReadAllLinesFromPath(sourcesPath)
	if err != nil {
		t.Fatalf("Failed to read lines: %v", err)
	}

	if len(lines) != 10 {
		t.Errorf("Expected 10 lines, got %d", len(lines))
	}
	if lines[0].IsEntry || lines[0].Raw != "# This is a comment" {
		t.Errorf("First line should be a comment, got: %+v", lines[0])
	}
	if !lines[5].IsEntry || lines[5].Entry.Name != "rmf24" || lines[5].Entry.Label != "RMF FM news" {
		t.Errorf("Line 6 should be the rmf24 entry with a label, got: %+v", lines[5])
	}

	lines = append(lines, Line{
		Entry:   &SourceEntry{Name: "focuspl"},
		IsEntry: true,
	})

	if err := WriteAllLines(sourcesPath, lines); err != nil {
		t.Fatalf("Failed to write lines: %v", err)
	}

	content, err := os.ReadFile(sourcesPath)
	if err != nil {
		t.Fatalf("Failed to read final file: %v", err)
	}

	expectedContent := initialContent + "focuspl\n"
	if string(content) != expectedContent {
		t.Errorf("Content mismatch.\nExpected:\n%s\n\nGot:\n%s", expectedContent, string(content))
	}
}

func TestAddSourcePreservesComments(t *testing.T) {
	testDir := t.TempDir()
	sourcesPath := filepath.Join(testDir, "sources")

	initialContent := `# This is a comment
onet
# Another comment
rmf24
`
	if err := os.WriteFile(sourcesPath, []byte(initialContent), 0644); err != nil {
		t.Fatalf("Failed to write initial file: %v", err)
	}

	added, err := AddSourceToPath(sourcesPath, SourceEntry{Name: "focuspl", Label: "Focus.pl"})
	if err != nil {
		t.Fatalf("AddSourceToPath: %v", err)
	}
	if !added {
		t.Fatal("expected focuspl to be added")
	}

	added, err = AddSourceToPath(sourcesPath, SourceEntry{Name: "onet"})
	if err != nil {
		t.Fatalf("AddSourceToPath duplicate: %v", err)
	}
	if added {
		t.Error("duplicate source should not be added")
	}

	content, err := os.ReadFile(sourcesPath)
	if err != nil {
		t.Fatalf("Failed to read final file: %v", err)
	}

	expectedContent := initialContent + "focuspl Focus.pl\n"
	if string(content) != expectedContent {
		t.Errorf("Content mismatch after AddSource.\nExpected:\n%s\n\nGot:\n%s", expectedContent, string(content))
	}
}

func TestRemoveSourcePreservesComments(t *testing.T) {
	testDir := t.TempDir()
	sourcesPath := filepath.Join(testDir, "sources")

	initialContent := `# This is a comment
onet
# Another comment
rmf24   RMF24
focuspl
`
	if err := os.WriteFile(sourcesPath, []byte(initialContent), 0644); err != nil {
		t.Fatalf("Failed to write initial file: %v", err)
	}

	removed, err := RemoveSourceFromPath(sourcesPath, "rmf24")
	if err != nil {
		t.Fatalf("RemoveSourceFromPath: %v", err)
	}
	if !removed {
		t.Fatal("expected rmf24 to be removed")
	}

	content, err := os.ReadFile(sourcesPath)
	if err != nil {
		t.Fatalf("Failed to read final file: %v", err)
	}

	expectedContent := `# This is a comment
onet
# Another comment
focuspl
`
	if string(content) != expectedContent {
		t.Errorf("Content mismatch after RemoveSource.\nExpected:\n%s\n\nGot:\n%s", expectedContent, string(content))
	}

	removed, err = RemoveSourceFromPath(sourcesPath, "missing")
	if err != nil {
		t.Fatalf("RemoveSourceFromPath missing: %v", err)
	}
	if removed {
		t.Error("removing an unknown source should report false")
	}
}

func TestReadSourcesFileMissing(t *testing.T) {
	entries, err := ReadSourcesFileFromPath(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %v", entries)
	}
}

func TestCreateDefaultSourcesFile(t *testing.T) {
	sourcesPath := filepath.Join(t.TempDir(), "nested", "sources")

	if err := CreateDefaultSourcesFile(sourcesPath); err != nil {
		t.Fatalf("CreateDefaultSourcesFile: %v", err)
	}

	entries, err := ReadSourcesFileFromPath(sourcesPath)
	if err != nil {
		t.Fatalf("ReadSourcesFileFromPath: %v", err)
	}
	if len(entries) != len(DefaultSources) {
		t.Fatalf("expected %d entries, got %d", len(DefaultSources), len(entries))
	}
	for i, entry := range entries {
		if entry != DefaultSources[i] {
			t.Errorf("entry %d: expected %+v, got %+v", i, DefaultSources[i], entry)
		}
	}

	// An existing file is left alone.
	if err := os.WriteFile(sourcesPath, []byte("onet\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := CreateDefaultSourcesFile(sourcesPath); err != nil {
		t.Fatalf("CreateDefaultSourcesFile on existing file: %v", err)
	}
	entries, _ = ReadSourcesFileFromPath(sourcesPath)
	if len(entries) != 1 {
		t.Errorf("existing file was overwritten: %v", entries)
	}
}

func TestValidateSourceName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"onet", false},
		{"", true},
		{"#onet", true},
		{"two words", true},
	}
	for _, tt := range tests {
		err := ValidateSourceName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSourceName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := (SourceEntry{Name: "onet"}).DisplayName(); got != "onet" {
		t.Errorf("expected onet, got %q", got)
	}
	if got := (SourceEntry{Name: "rmf24", Label: "RMF24"}).DisplayName(); got != "RMF24" {
		t.Errorf("expected RMF24, got %q", got)
	}
}
