package cookie

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestJarAddReplacesSameIdentity(t *testing.T) {
	u := mustParseURL(t, "http://example.com/")
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var j Jar
	j.AddFromResponse(u, now, []string{"session=first"})
	j.AddFromResponse(u, now, []string{"session=second"})

	var got []string
	j.EnumerateFor(u, now, func(c *Cookie) { got = append(got, c.Value) })
	if len(got) != 1 || got[0] != "second" {
		t.Errorf("got %v, want a single cookie with value %q", got, "second")
	}
}

func TestJarRemove(t *testing.T) {
	u := mustParseURL(t, "http://example.com/")
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var j Jar
	j.AddFromResponse(u, now, []string{"a=1", "b=2"})
	j.Remove(&Cookie{Host: "example.com", Path: "/", Name: "a"})

	var names []string
	j.EnumerateFor(u, now, func(c *Cookie) { names = append(names, c.Name) })
	if len(names) != 1 || names[0] != "b" {
		t.Errorf("got %v, want only %q remaining", names, "b")
	}
}

func TestJarEnumerateForSkipsExpiredAndMismatched(t *testing.T) {
	u := mustParseURL(t, "http://example.com/")
	other := mustParseURL(t, "http://other.example/")
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var j Jar
	j.AddFromResponse(u, now, []string{
		"live=1",
		"dead=1; Max-Age=1",
	})
	later := now.Add(10 * time.Second)

	var got []string
	j.EnumerateFor(u, later, func(c *Cookie) { got = append(got, c.Name) })
	if len(got) != 1 || got[0] != "live" {
		t.Errorf("got %v, want only the unexpired cookie", got)
	}

	got = nil
	j.EnumerateFor(other, now, func(c *Cookie) { got = append(got, c.Name) })
	if len(got) != 0 {
		t.Errorf("got %v, want no cookies for a non-matching host", got)
	}
}

func TestJarSaveLoadRoundTrip(t *testing.T) {
	u := mustParseURL(t, "http://example.com/")
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var j Jar
	j.AddFromResponse(u, now, []string{"a=1", "b=2; Max-Age=3600"})

	var buf bytes.Buffer
	if err := j.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var j2 Jar
	if err := j2.Load(strings.NewReader(buf.String())); err != nil {
		t.Fatalf("Load: %v", err)
	}

	var names []string
	j2.EnumerateFor(u, now, func(c *Cookie) { names = append(names, c.Name) })
	if len(names) != 2 {
		t.Errorf("got %d cookies after round-trip, want 2 (%v)", len(names), names)
	}
}

func TestJarLoadSkipsMalformedLines(t *testing.T) {
	var j Jar
	input := "# a comment\nnot\tenough\tfields\nexample.com\tFALSE\t/\tFALSE\t0\tname\tvalue\n"
	if err := j.Load(strings.NewReader(input)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	u := mustParseURL(t, "http://example.com/")
	var names []string
	j.EnumerateFor(u, time.Now(), func(c *Cookie) { names = append(names, c.Name) })
	if len(names) != 1 || names[0] != "name" {
		t.Errorf("got %v, want only the well-formed line", names)
	}
}
