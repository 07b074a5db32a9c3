package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/spriteedit/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func captureSends(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	prev := send
	send = func(title, body string, opts platform.Options) error {
		got = append(got, sent{title, body, opts})
		return nil
	}
	t.Cleanup(func() { send = prev })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := captureSends(t)
	n := New(DefaultPreferences())
	n.Open("a.png")
	n.Save("a.png")
	n.Copy("")
	var nilNotifier *Notifier
	nilNotifier.Save("a.png")
	if len(*got) != 0 {
		t.Fatalf("unexpected notifications %v", *got)
	}
}

func TestSaveUsesAbsolutePathAndIcon(t *testing.T) {
	got := captureSends(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "hero.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save(path)
	if len(*got) != 1 {
		t.Fatalf("got %d notifications", len(*got))
	}
	s := (*got)[0]
	if s.title != "SpriteEdit" || s.body != "Saved "+path || s.opts.IconPath != path {
		t.Fatalf("unexpected notification %+v", s)
	}
}

func TestCopyDefaultsDetail(t *testing.T) {
	got := captureSends(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy(" ")
	if len(*got) != 1 || (*got)[0].body != "Copied image to clipboard" {
		t.Fatalf("unexpected notifications %+v", *got)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("SPRITEEDIT_NOTIFY_TITLE", "Pixels")
	t.Setenv("SPRITEEDIT_NOTIFY_OPEN_TEXT", "Now editing %s")
	prefs := LoadPreferences()
	if prefs.Title != "Pixels" {
		t.Fatalf("title = %q", prefs.Title)
	}
	if prefs.Events[EventOpen].Template != "Now editing %s" {
		t.Fatalf("open template = %q", prefs.Events[EventOpen].Template)
	}
	if prefs.Events[EventSave].Template != "Saved %s" {
		t.Fatalf("save template changed: %q", prefs.Events[EventSave].Template)
	}
}
