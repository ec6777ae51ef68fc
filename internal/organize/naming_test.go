package organize_test

import (
	"testing"

	"lrsort/internal/config"
	"lrsort/internal/organize"
)

func TestNaturalNamerDeduplicates(t *testing.T) {
	namer := organize.NewNamer(config.NamingNatural)

	if got := namer.Next("/out", "a.jpg"); got != "a.jpg" {
		t.Fatalf("first = %q", got)
	}
	if got := namer.Next("/out", "a.jpg"); got != "a-2.jpg" {
		t.Fatalf("second = %q", got)
	}
	if got := namer.Next("/out", "a.jpg"); got != "a-3.jpg" {
		t.Fatalf("third = %q", got)
	}
	// Different directory, fresh namespace.
	if got := namer.Next("/other", "a.jpg"); got != "a.jpg" {
		t.Fatalf("other dir = %q", got)
	}
}

func TestNaturalNamerSkipIsNoop(t *testing.T) {
	namer := organize.NewNamer(config.NamingNatural)
	namer.Skip("/out")
	if got := namer.Next("/out", "a.jpg"); got != "a.jpg" {
		t.Fatalf("after skip = %q", got)
	}
}

func TestIndexedNamerCountsPerDirectory(t *testing.T) {
	namer := organize.NewNamer(config.NamingIndexed)

	if got := namer.Next("/out", "aaa.jpg"); got != "1.aaa.jpg" {
		t.Fatalf("first = %q", got)
	}
	if got := namer.Next("/out", "bbb.jpg"); got != "2.bbb.jpg" {
		t.Fatalf("second = %q", got)
	}
	if got := namer.Next("/other", "ccc.jpg"); got != "1.ccc.jpg" {
		t.Fatalf("other dir = %q", got)
	}
}

func TestIndexedNamerSkipReservesIndex(t *testing.T) {
	namer := organize.NewNamer(config.NamingIndexed)

	namer.Next("/out", "aaa.jpg")
	namer.Skip("/out")
	if got := namer.Next("/out", "ccc.jpg"); got != "3.ccc.jpg" {
		t.Fatalf("after skip = %q", got)
	}
}

func TestNewNamerDefaultsToNatural(t *testing.T) {
	namer := organize.NewNamer("")
	if got := namer.Next("/out", "a.jpg"); got != "a.jpg" {
		t.Fatalf("default namer = %q", got)
	}
}
