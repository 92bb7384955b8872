package commands

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"tableflip.dev/jrnl/pkg/commands/options"
)

func TestReadMode(t *testing.T) {
	tests := []struct {
		name    string
		co      options.ComposeOptions
		qo      options.QueryOptions
		ro      options.ReadOptions
		args    []string
		symbols string
		reads   bool
	}{
		{name: "no args composes", reads: false},
		{name: "text composes", args: []string{"hello", "@world"}, reads: false},
		{name: "only tags reads", args: []string{"@work", "@gym"}, reads: true},
		{name: "tags in one arg", args: []string{"@work @gym"}, reads: true},
		{name: "date forces compose", co: options.ComposeOptions{Date: "today"}, args: []string{"@work"}, reads: false},
		{name: "limit reads", qo: options.QueryOptions{Limit: 3}, reads: true},
		{name: "from reads", qo: options.QueryOptions{From: "yesterday"}, args: []string{"@x"}, reads: true},
		{name: "short reads", ro: options.ReadOptions{Short: true}, reads: true},
		{name: "multibyte symbol reads", args: []string{"§work", "#gym"}, symbols: "§#", reads: true},
		{name: "multibyte symbol text composes", args: []string{"§work", "done"}, symbols: "§#", reads: false},
		{name: "shared lead byte composes", args: []string{"¶work"}, symbols: "§", reads: false},
	}
	for _, tt := range tests {
		symbols := tt.symbols
		if symbols == "" {
			symbols = "@"
		}
		if got := readMode(&tt.co, &tt.qo, &tt.ro, tt.args, symbols); got != tt.reads {
			t.Fatalf("%s: readMode = %v, want %v", tt.name, got, tt.reads)
		}
	}
}

func writeTestConfig(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	def := filepath.Join(dir, "default.txt")
	work := filepath.Join(dir, "work.txt")
	cfg := filepath.Join(dir, "config.json")
	body := `{"journals": {"default": "` + def + `", "work": "` + work + `"}, "highlight": false}`
	if err := os.WriteFile(cfg, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfg, def, work
}

func TestRootComposes(t *testing.T) {
	cfg, def, _ := writeTestConfig(t)
	cmd := New()
	cmd.SetArgs([]string{"--config", cfg, "--date", "2024-03-01 10:00", "Hello", "@world"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	data, err := os.ReadFile(def)
	if err != nil {
		t.Fatalf("read journal: %v", err)
	}
	if string(data) != "2024-03-01 10:00 Hello @world\n" {
		t.Fatalf("unexpected journal %q", data)
	}
}

func TestRootPicksJournalFromFirstWord(t *testing.T) {
	cfg, def, work := writeTestConfig(t)
	cmd := New()
	cmd.SetArgs([]string{"--config", cfg, "work", "Finished", "the", "report"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	data, err := os.ReadFile(work)
	if err != nil {
		t.Fatalf("read work journal: %v", err)
	}
	if !regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2} Finished the report\n$`).Match(data) {
		t.Fatalf("unexpected work journal %q", data)
	}
	if _, err := os.Stat(def); !os.IsNotExist(err) {
		t.Fatalf("default journal should be untouched, stat err %v", err)
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	cmd := New()
	for _, name := range []string{"compose", "read", "tags", "calendar", "export", "encrypt", "decrypt", "delete-last", "info", "version", "mcp", "completion"} {
		found, _, err := cmd.Find([]string{name})
		if err != nil || found.Name() != name {
			t.Fatalf("subcommand %q not registered", name)
		}
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	cfg, _, _ := writeTestConfig(t)
	cmd := New()
	cmd.SetArgs([]string{"--config", cfg, "export", "xml"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unknown export format")
	}
}
