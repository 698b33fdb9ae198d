package configscan

import (
	"os"
	"strings"
	"testing"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/services"
)

func TestExtractAccountData(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "state.json",
		`{"username": "alice_dev", "email": "alice@example.com", "backup": "alice@example.com", "port": "8080"}`)

	s := newTestScanner()
	data, err := s.ExtractAccountData(path)
	if err != nil {
		t.Fatalf("ExtractAccountData: %v", err)
	}

	if len(data.Emails) != 1 || data.Emails[0] != "alice@example.com" {
		t.Errorf("Emails = %v, want the single de-duplicated address", data.Emails)
	}
	if len(data.Usernames) != 1 || data.Usernames[0] != "alice_dev" {
		t.Errorf("Usernames = %v, want [alice_dev]", data.Usernames)
	}
}

func TestExtractAccountData_FiltersNoise(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "state.json",
		`{"username": "ab", "user": "12345", "login": "real_user"}`)

	s := newTestScanner()
	data, err := s.ExtractAccountData(path)
	if err != nil {
		t.Fatalf("ExtractAccountData: %v", err)
	}

	if len(data.Usernames) != 1 || data.Usernames[0] != "real_user" {
		t.Errorf("Usernames = %v, want only real_user", data.Usernames)
	}
}

func TestCleanAccountFile_Targeted(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "accounts.json",
		`{"primary": "alice@example.com", "secondary": "bob@example.com", "alias": "alice"}`)

	s := newTestScanner()
	data, err := s.ExtractAccountData(path)
	if err != nil {
		t.Fatal(err)
	}

	changed, err := s.CleanAccountFile(path, data, "alice@example.com", false)
	if err != nil {
		t.Fatalf("CleanAccountFile: %v", err)
	}
	if !changed {
		t.Fatal("changed = false, want true")
	}

	raw, _ := os.ReadFile(path)
	content := string(raw)
	if strings.Contains(content, "alice@example.com") {
		t.Error("target email survived targeted cleanup")
	}
	if !strings.Contains(content, "bob@example.com") {
		t.Error("other account was redacted during targeted cleanup")
	}
	if strings.Contains(content, `"alice"`) {
		t.Error("standalone local part survived targeted cleanup")
	}
}

func TestCleanAccountFile_RemoveAll(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "accounts.json",
		`{"username": "alice_dev", "email": "alice@example.com", "other": "bob@example.com"}`)

	s := newTestScanner()
	data, err := s.ExtractAccountData(path)
	if err != nil {
		t.Fatal(err)
	}

	changed, err := s.CleanAccountFile(path, data, "", true)
	if err != nil {
		t.Fatalf("CleanAccountFile: %v", err)
	}
	if !changed {
		t.Fatal("changed = false, want true")
	}

	raw, _ := os.ReadFile(path)
	content := string(raw)
	for _, gone := range []string{"alice@example.com", "bob@example.com", "alice_dev"} {
		if strings.Contains(content, gone) {
			t.Errorf("%q survived exhaustive cleanup", gone)
		}
	}
	if !strings.Contains(content, services.RedactionToken) {
		t.Error("redaction token missing from cleaned file")
	}
}

func TestCleanAccountFile_NoChange(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plain.json", `{"setting": "value"}`)

	s := newTestScanner()
	changed, err := s.CleanAccountFile(path, entities.AccountFile{Path: path}, "nobody@example.com", false)
	if err != nil {
		t.Fatalf("CleanAccountFile: %v", err)
	}
	if changed {
		t.Error("changed = true for a file with no account data")
	}
}
