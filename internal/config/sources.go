package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSources are the outlets the verifier backend scrapes out of the box.
var DefaultSources = []SourceEntry{
	{Name: "onet", Label: "Onet"},
	{Name: "rmf24", Label: "RMF24"},
	{Name: "focuspl", Label: "Focus.pl"},
	{Name: "naukawpolsce", Label: "Nauka w Polsce"},
}

// SourceEntry is one source name with an optional display label
type SourceEntry struct {
	Name  string
	Label string
}

// DisplayName returns the label, or the name when no label is set.
func (e SourceEntry) DisplayName() string {
	if e.Label != "" {
		return e.Label
	}
	return e.Name
}

func (e SourceEntry) String() string {
	if e.Label != "" {
		return e.Name + " " + e.Label
	}
	return e.Name
}

// Line is a single line of the sources file. Comments and blank lines keep
// their raw text so a rewrite reproduces them exactly.
type Line struct {
	Raw     string
	Entry   *SourceEntry
	IsEntry bool
}

func (l Line) text() string {
	if !l.IsEntry || l.Entry == nil {
		return l.Raw
	}
	if l.Raw != "" {
		return l.Raw
	}
	return l.Entry.String()
}

func GetSourcesFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "baitwatch", "sources"), nil
}

func parseEntry(line string) (SourceEntry, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return SourceEntry{}, false
	}

	parts := strings.Fields(trimmed)
	entry := SourceEntry{Name: parts[0]}
	if len(parts) > 1 {
		entry.Label = strings.Join(parts[1:], " ")
	}
	return entry, true
}

// ReadSourcesFileFromPath returns the entries of the file, skipping comments.
// A missing file yields no entries.
func ReadSourcesFileFromPath(sourcesPath string) ([]SourceEntry, error) {
	lines, err := ReadAllLinesFromPath(sourcesPath)
	if err != nil {
		return nil, err
	}

	entries := []SourceEntry{}
	for _, line := range lines {
		if line.IsEntry {
			entries = append(entries, *line.Entry)
		}
	}
	return entries, nil
}

func ReadAllLinesFromPath(sourcesPath string) ([]Line, error) {
	file, err := os.Open(sourcesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []Line{}, nil
		}
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	var lines []Line
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		raw := scanner.Text()
		if entry, ok := parseEntry(raw); ok {
			lines = append(lines, Line{Raw: raw, Entry: &entry, IsEntry: true})
			continue
		}
		lines = append(lines, Line{Raw: raw})
	}

	return lines, scanner.Err()
}

func WriteAllLines(sourcesPath string, lines []Line) error {
	dir := filepath.Dir(sourcesPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file, err := os.Create(sourcesPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	writer := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := writer.WriteString(line.text() + "\n"); err != nil {
			return err
		}
	}

	return writer.Flush()
}

// ValidateSourceName rejects names the backend could never match.
func ValidateSourceName(name string) error {
	if name == "" {
		return fmt.Errorf("source name is empty")
	}
	if strings.HasPrefix(name, "#") {
		return fmt.Errorf("source name %q starts with a comment marker", name)
	}
	if strings.ContainsAny(name, " \t\r\n") {
		return fmt.Errorf("source name %q contains whitespace", name)
	}
	return nil
}

// AddSourceToPath appends a source unless one with the same name already
// exists. It reports whether the file changed.
func AddSourceToPath(sourcesPath string, entry SourceEntry) (bool, error) {
	if err := ValidateSourceName(entry.Name); err != nil {
		return false, err
	}

	lines, err := ReadAllLinesFromPath(sourcesPath)
	if err != nil {
		return false, fmt.Errorf("failed to read sources file: %w", err)
	}

	for _, line := range lines {
		if line.IsEntry && line.Entry.Name == entry.Name {
			return false, nil
		}
	}

	lines = append(lines, Line{Entry: &entry, IsEntry: true})
	if err := WriteAllLines(sourcesPath, lines); err != nil {
		return false, fmt.Errorf("failed to write sources file: %w", err)
	}
	return true, nil
}

// RemoveSourceFromPath drops every entry named name. It reports whether
// anything was removed.
func RemoveSourceFromPath(sourcesPath, name string) (bool, error) {
	lines, err := ReadAllLinesFromPath(sourcesPath)
	if err != nil {
		return false, fmt.Errorf("failed to read sources file: %w", err)
	}

	var kept []Line
	removed := false
	for _, line := range lines {
		if line.IsEntry && line.Entry.Name == name {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return false, nil
	}

	if err := WriteAllLines(sourcesPath, kept); err != nil {
		return false, fmt.Errorf("failed to write sources file: %w", err)
	}
	return true, nil
}

// CreateDefaultSourcesFile writes the default sources when no file exists yet.
func CreateDefaultSourcesFile(sourcesPath string) error {
	if _, err := os.Stat(sourcesPath); err == nil {
		return nil
	}

	lines := []Line{
		{Raw: "# Sources shown in the source picker, one per line."},
		{Raw: "# An optional display label may follow the name."},
	}
	for _, entry := range DefaultSources {
		e := entry
		lines = append(lines, Line{Entry: &e, IsEntry: true})
	}

	return WriteAllLines(sourcesPath, lines)
}
