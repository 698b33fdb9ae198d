package configscan

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

func newTestScanner() *Scanner {
	return NewScanner(&interfaces.NoOpLogger{})
}

func TestScanner_DiscoverIdentityFields_AllFormats(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "storage.json",
		`{"telemetry": {"deviceId": "abc123", "fontSize": 14}, "machineId": "m-1"}`)
	iniPath := writeFile(t, dir, "settings.ini",
		"[telemetry]\ndevice_id = ini-dev\ntheme = dark\n")
	xmlPath := writeFile(t, dir, "config.xml",
		`<config><deviceId>xml-dev</deviceId><window>800</window></config>`)
	logPath := writeFile(t, dir, "app.log",
		"startup ok\ndevice_id=log-dev more text\n")

	recs := newTestScanner().DiscoverIdentityFields([]string{jsonPath, iniPath, xmlPath, logPath})

	byValue := map[string]entities.IdentityRecord{}
	for _, rec := range recs {
		byValue[rec.Value] = rec
	}

	for _, want := range []struct {
		value  string
		format entities.RecordFormat
	}{
		{"abc123", entities.FormatJSON},
		{"m-1", entities.FormatJSON},
		{"ini-dev", entities.FormatINI},
		{"xml-dev", entities.FormatXML},
		{"log-dev", entities.FormatText},
	} {
		rec, ok := byValue[want.value]
		if !ok {
			t.Errorf("value %q not discovered", want.value)
			continue
		}
		if rec.Format != want.format {
			t.Errorf("value %q format = %v, want %v", want.value, rec.Format, want.format)
		}
		if rec.Kind != entities.KindTelemetryID {
			t.Errorf("value %q kind = %v, want telemetry id", want.value, rec.Kind)
		}
	}

	for _, noise := range []string{"14", "dark", "800"} {
		if _, ok := byValue[noise]; ok {
			t.Errorf("non-identity value %q was discovered", noise)
		}
	}
}

func TestScanner_DiscoverIdentityFields_SkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "broken.json", `{"deviceId": `)
	good := writeFile(t, dir, "good.json", `{"deviceId": "ok"}`)

	recs := newTestScanner().DiscoverIdentityFields([]string{bad, good})

	if len(recs) != 1 || recs[0].Value != "ok" {
		t.Fatalf("got %d records, want only the one from the readable file", len(recs))
	}
}

func TestScanner_DiscoverAccountFields_EmailValues(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "account.json",
		`{"lastSync": "alice@example.com", "username": "alice"}`)

	recs := newTestScanner().DiscoverAccountFields([]string{jsonPath})

	var sawEmail, sawUsername bool
	for _, rec := range recs {
		if rec.Kind == entities.KindEmail && rec.Value == "alice@example.com" {
			sawEmail = true
		}
		if rec.Kind == entities.KindAccountField && rec.Key == "username" {
			sawUsername = true
		}
	}
	if !sawEmail {
		t.Error("email value under a non-account key was not discovered")
	}
	if !sawUsername {
		t.Error("username key was not discovered")
	}
}

func TestScanner_RewriteField_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "storage.json",
		`{"telemetry": {"deviceId": "old-dev", "machineId": "old-mach"}}`)

	s := newTestScanner()
	recs := s.DiscoverIdentityFields([]string{path})

	var target entities.IdentityRecord
	for _, rec := range recs {
		if rec.Key == "deviceId" {
			target = rec
		}
	}
	if target.File == "" {
		t.Fatal("deviceId record not discovered")
	}

	if err := s.RewriteField(target, "new-dev"); err != nil {
		t.Fatalf("RewriteField: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]map[string]string
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("rewritten file is not valid JSON: %v", err)
	}
	if doc["telemetry"]["deviceId"] != "new-dev" {
		t.Errorf("deviceId = %q, want new-dev", doc["telemetry"]["deviceId"])
	}
	if doc["telemetry"]["machineId"] != "old-mach" {
		t.Errorf("machineId = %q, want untouched old-mach", doc["telemetry"]["machineId"])
	}
}

func TestScanner_RewriteField_INI(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "settings.ini",
		"[telemetry]\ndevice_id = old\nkeep = yes\n")

	s := newTestScanner()
	recs := s.DiscoverIdentityFields([]string{path})
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}

	if err := s.RewriteField(recs[0], "fresh"); err != nil {
		t.Fatalf("RewriteField: %v", err)
	}

	data, _ := os.ReadFile(path)
	content := string(data)
	if !strings.Contains(content, "fresh") {
		t.Error("new value missing from rewritten INI")
	}
	if strings.Contains(content, "old") {
		t.Error("old value survived the rewrite")
	}
	if !strings.Contains(content, "keep") {
		t.Error("unrelated key lost in rewrite")
	}
}

// Two elements with the same tag and the same text must be addressable
// individually; the rewrite goes by element position, not value equality.
func TestScanner_RewriteField_XMLDuplicateValues(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ids.xml",
		`<ids><deviceId>same</deviceId><deviceId>same</deviceId></ids>`)

	s := newTestScanner()
	recs := s.DiscoverIdentityFields([]string{path})
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}

	second := recs[1]
	if err := s.RewriteField(second, "changed"); err != nil {
		t.Fatalf("RewriteField: %v", err)
	}

	data, _ := os.ReadFile(path)
	content := string(data)
	if strings.Count(content, "same") != 1 {
		t.Errorf("want exactly one untouched element, content: %s", content)
	}
	if strings.Count(content, "changed") != 1 {
		t.Errorf("want exactly one rewritten element, content: %s", content)
	}
	first := strings.Index(content, "same")
	changed := strings.Index(content, "changed")
	if first > changed {
		t.Error("rewrite touched the first element instead of the second")
	}
}

// Spaces around the separator must not push the rewrite onto the bare
// value fallback, which would also clobber an identical value sitting
// elsewhere on the same line.
func TestScanner_RewriteField_TextSpacedSeparator(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.log",
		"device_id = old123 backup_of=old123\n")

	s := newTestScanner()
	recs := s.DiscoverIdentityFields([]string{path})
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}

	if err := s.RewriteField(recs[0], "new456"); err != nil {
		t.Fatalf("RewriteField: %v", err)
	}

	data, _ := os.ReadFile(path)
	content := string(data)
	if !strings.Contains(content, "device_id = new456") {
		t.Errorf("content = %q, want the spaced assignment rewritten in place", content)
	}
	if !strings.Contains(content, "backup_of=old123") {
		t.Errorf("content = %q, want the unrelated occurrence untouched", content)
	}
}

func TestScanner_RewriteField_Text(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.log",
		"line one\ndevice_id=old123\ndevice_id=old123\n")

	s := newTestScanner()
	recs := s.DiscoverIdentityFields([]string{path})
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}

	if err := s.RewriteField(recs[0], "new456"); err != nil {
		t.Fatalf("RewriteField: %v", err)
	}

	data, _ := os.ReadFile(path)
	lines := strings.Split(string(data), "\n")
	if !strings.Contains(lines[1], "new456") {
		t.Errorf("line 2 = %q, want rewritten value", lines[1])
	}
	if !strings.Contains(lines[2], "old123") {
		t.Errorf("line 3 = %q, want untouched value", lines[2])
	}
}
