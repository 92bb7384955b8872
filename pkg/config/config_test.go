package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".jrnl_config")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadInstallsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "jrnl")
	var notices []string
	cfg, err := Load(path, func(s string) { notices = append(notices, s) })
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(notices) != 1 || !strings.Contains(notices[0], path) {
		t.Fatalf("expected install notice, got %v", notices)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	j, err := cfg.Journal("")
	if err != nil {
		t.Fatalf("Journal: %v", err)
	}
	if j.Name != DefaultJournal || !strings.HasSuffix(j.Path, "journal.txt") || strings.HasPrefix(j.Path, "~") {
		t.Fatalf("unexpected default journal %+v", j)
	}
	if j.TagSymbols != "@" || j.TimeFormat != "2006-01-02 15:04" || j.DefaultHour != 9 || j.Encrypt {
		t.Fatalf("unexpected defaults %+v", j)
	}

	// A second load finds the installed file and stays quiet.
	notices = nil
	if _, err := Load(path, func(s string) { notices = append(notices, s) }); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(notices) != 0 {
		t.Fatalf("unexpected notices %v", notices)
	}
}

func TestJournalOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `{
  "journals": {
    "default": "`+filepath.Join(dir, "default.txt")+`",
    "work": {"journal": "`+filepath.Join(dir, "work.txt")+`", "encrypt": true, "tagsymbols": "#", "default_hour": 14}
  },
  "timeformat": "2006-01-02",
  "linewrap": 60
}`)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := cfg.Journals(); len(got) != 2 || got[0] != "default" || got[1] != "work" {
		t.Fatalf("Journals() = %v", got)
	}

	def, err := cfg.Journal("default")
	if err != nil {
		t.Fatalf("Journal(default): %v", err)
	}
	if def.Scoped || def.Encrypt || def.TagSymbols != "@" || def.TimeFormat != "2006-01-02" || def.LineWrap != 60 {
		t.Fatalf("unexpected default journal %+v", def)
	}

	work, err := cfg.Journal("work")
	if err != nil {
		t.Fatalf("Journal(work): %v", err)
	}
	if !work.Scoped || !work.Encrypt || work.TagSymbols != "#" || work.DefaultHour != 14 {
		t.Fatalf("overrides not applied %+v", work)
	}
	if work.TimeFormat != "2006-01-02" || work.LineWrap != 60 {
		t.Fatalf("top level settings should be inherited %+v", work)
	}
}

func TestJournalUnknown(t *testing.T) {
	path := writeConfig(t, `{"journals": {"default": "/tmp/j.txt"}}`)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := cfg.Journal("missing"); err == nil {
		t.Fatal("expected error for unknown journal")
	}
}

func TestPasswordFromEnvironment(t *testing.T) {
	path := writeConfig(t, `{"journals": {"default": "/tmp/j.txt"}}`)
	t.Setenv("JRNL_PASSWORD", "hunter2")
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	j, err := cfg.Journal("")
	if err != nil {
		t.Fatalf("Journal: %v", err)
	}
	if j.Password != "hunter2" {
		t.Fatalf("password = %q", j.Password)
	}

	if err := cfg.SetEncrypt("", true); err != nil {
		t.Fatalf("SetEncrypt: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if strings.Contains(string(data), "hunter2") {
		t.Fatalf("password persisted: %s", data)
	}
}

func TestSetEncrypt(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `{
  "journals": {
    "default": "`+filepath.Join(dir, "default.txt")+`",
    "work": {"journal": "`+filepath.Join(dir, "work.txt")+`"}
  }
}`)
	t.Setenv("JRNL_LINEWRAP", "20")
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := cfg.SetEncrypt("work", true); err != nil {
		t.Fatalf("SetEncrypt(work): %v", err)
	}
	if err := cfg.SetEncrypt("default", true); err != nil {
		t.Fatalf("SetEncrypt(default): %v", err)
	}

	var raw map[string]any
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("config is not JSON: %v\n%s", err, data)
	}
	if raw["encrypt"] != true {
		t.Fatalf("top level encrypt not written: %s", data)
	}
	if _, ok := raw["linewrap"]; ok {
		t.Fatalf("environment override leaked into file: %s", data)
	}
	work := raw["journals"].(map[string]any)["work"].(map[string]any)
	if work["encrypt"] != true {
		t.Fatalf("scoped encrypt not written: %s", data)
	}

	reloaded, err := Load(path, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	j, err := reloaded.Journal("work")
	if err != nil {
		t.Fatalf("Journal(work): %v", err)
	}
	if !j.Encrypt {
		t.Fatal("encrypt flag not persisted")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected config mode 0600, got %v", info.Mode().Perm())
	}
	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".*.tmp-*"))
	if err != nil || len(leftovers) != 0 {
		t.Fatalf("temporary files left behind: %v %v", leftovers, err)
	}
}
