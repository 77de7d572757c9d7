package glossary

import (
	"reflect"
	"testing"

	"github.com/termtip/termtip/internal/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestStoreImportAndDictionary(t *testing.T) {
	s := newTestStore(t)
	src := New([]Term{
		{Key: "SLA", FullName: "Service Level Agreement", ShortDefinition: "Uptime promise."},
		{Key: "Quorum", FullName: "Quorum", ShortDefinition: "Minimum votes."},
	})

	if err := s.Import(src, "glossary.yml"); err != nil {
		t.Fatalf("Import: %v", err)
	}

	dict, err := s.Dictionary()
	if err != nil {
		t.Fatalf("Dictionary: %v", err)
	}
	if got, want := dict.Keys(), []string{"SLA", "Quorum"}; !reflect.DeepEqual(got, want) {
		t.Errorf("stored order %v, want %v", got, want)
	}

	term, err := s.Get("SLA")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if term.ShortDefinition != "Uptime promise." {
		t.Errorf("unexpected term: %+v", term)
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestStoreImportReplaces(t *testing.T) {
	s := newTestStore(t)
	if err := s.Import(New([]Term{{Key: "Old", FullName: "Old"}}), "a"); err != nil {
		t.Fatal(err)
	}
	if err := s.Import(New([]Term{{Key: "New", FullName: "New"}}), "b"); err != nil {
		t.Fatal(err)
	}

	dict, err := s.Dictionary()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := dict.Lookup("Old"); ok {
		t.Error("previous vocabulary survived re-import")
	}
	if _, ok := dict.Lookup("New"); !ok {
		t.Error("re-imported term missing")
	}
}

func TestStoreGetMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get("nope"); err == nil {
		t.Error("expected error for missing term")
	}
}

func TestStoreEmptyDictionary(t *testing.T) {
	s := newTestStore(t)
	dict, err := s.Dictionary()
	if err != nil {
		t.Fatalf("Dictionary on empty store: %v", err)
	}
	if dict.Len() != 0 {
		t.Errorf("Len = %d, want 0", dict.Len())
	}
}
