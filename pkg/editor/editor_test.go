package editor

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func script(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-editor")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestCompose(t *testing.T) {
	ed := &Editor{
		Command: script(t, `printf 'Title @tag\nbody line\n' >> "$1"`),
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	got, err := ed.Compose(context.Background(), "")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got != "Title @tag\nbody line\n" {
		t.Fatalf("Compose = %q", got)
	}
}

func TestComposeKeepsInitial(t *testing.T) {
	ed := &Editor{Command: script(t, `echo more >> "$1"`), Stdout: io.Discard, Stderr: io.Discard}
	got, err := ed.Compose(context.Background(), "start\n")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got != "start\nmore\n" {
		t.Fatalf("Compose = %q", got)
	}
}

func TestComposeFileRemoved(t *testing.T) {
	ed := &Editor{Command: script(t, `rm "$1"`), Stdout: io.Discard, Stderr: io.Discard}
	got, err := ed.Compose(context.Background(), "")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got != "" {
		t.Fatalf("expected nothing, got %q", got)
	}
}

func TestComposeFailure(t *testing.T) {
	ed := &Editor{Command: script(t, `exit 3`), Stdout: io.Discard, Stderr: io.Discard}
	if _, err := ed.Compose(context.Background(), ""); err == nil {
		t.Fatal("expected error from failing editor")
	}
}

func TestComposeNoEditor(t *testing.T) {
	ed := &Editor{}
	if _, err := ed.Compose(context.Background(), ""); err == nil {
		t.Fatal("expected error without editor")
	}
}
