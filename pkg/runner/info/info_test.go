package info

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/jrnl/pkg/config"
)

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	existing := filepath.Join(dir, "default.txt")
	if err := os.WriteFile(existing, nil, 0o600); err != nil {
		t.Fatalf("write journal: %v", err)
	}
	path := filepath.Join(dir, "config.json")
	body := `{"journals": {"default": "` + existing + `", "work": {"journal": "` + filepath.Join(dir, "work.txt") + `", "encrypt": true}}}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cfg
}

func TestCollect(t *testing.T) {
	n := &Info{Config: loadConfig(t)}
	r, err := n.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(r.Journals) != 2 {
		t.Fatalf("expected 2 journals, got %+v", r.Journals)
	}
	def, work := r.Journals[0], r.Journals[1]
	if def.Name != "default" || !def.Exists || def.Encrypted || def.Format != "text" {
		t.Fatalf("unexpected default journal %+v", def)
	}
	if work.Name != "work" || work.Exists || !work.Encrypted {
		t.Fatalf("unexpected work journal %+v", work)
	}
}

func TestDoText(t *testing.T) {
	var buf bytes.Buffer
	n := &Info{Config: loadConfig(t), Out: &buf}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Journals:", "default", "work", "(missing)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDoJSON(t *testing.T) {
	var buf bytes.Buffer
	n := &Info{Config: loadConfig(t), Out: &buf, JSON: true}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	var r Report
	if err := json.Unmarshal(buf.Bytes(), &r); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if len(r.Journals) != 2 {
		t.Fatalf("unexpected report %+v", r)
	}
}

func TestNoConfig(t *testing.T) {
	if err := (&Info{}).Do(context.Background()); err == nil {
		t.Fatal("expected error without configuration")
	}
}
