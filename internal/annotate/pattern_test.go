package annotate

import (
	"reflect"
	"testing"

	"github.com/termtip/termtip/internal/glossary"
)

func dict(terms ...glossary.Term) *glossary.Dictionary {
	return glossary.New(terms)
}

func term(key string) glossary.Term {
	return glossary.Term{Key: key, FullName: key + " (full)", ShortDefinition: "definition of " + key}
}

func TestCompileEmptyDictionary(t *testing.T) {
	p := Compile(dict())
	if !p.Empty() {
		t.Fatal("expected empty pattern for empty dictionary")
	}
	if got := p.FindAll("anything at all"); got != nil {
		t.Fatalf("empty pattern matched: %v", got)
	}
}

func TestLongestMatchPrecedence(t *testing.T) {
	p := Compile(dict(term("SLA"), term("SLA Credit")))
	matches := p.FindAll("the SLA Credit applies")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d: %v", len(matches), matches)
	}
	if matches[0].Key != "SLA Credit" {
		t.Errorf("expected longest key %q, got %q", "SLA Credit", matches[0].Key)
	}
}

func TestWordBoundaryRespected(t *testing.T) {
	p := Compile(dict(term("API")))
	if matches := p.FindAll("APIs are great"); len(matches) != 0 {
		t.Errorf("expected no matches inside a longer word, got %v", matches)
	}
	if matches := p.FindAll("the API, used well"); len(matches) != 1 {
		t.Errorf("expected match at punctuation boundary, got %v", matches)
	}
}

func TestCaseSensitiveMatching(t *testing.T) {
	p := Compile(dict(term("API")))
	if matches := p.FindAll("the api is lowercase"); len(matches) != 0 {
		t.Errorf("matching must be case-sensitive, got %v", matches)
	}
}

func TestMetacharactersEscaped(t *testing.T) {
	p := Compile(dict(term("v1.2")))
	if matches := p.FindAll("release v1x2 notes"); len(matches) != 0 {
		t.Errorf("dot must be literal, got %v", matches)
	}
	matches := p.FindAll("release v1.2 notes")
	if len(matches) != 1 || matches[0].Key != "v1.2" {
		t.Errorf("expected literal match of v1.2, got %v", matches)
	}
}

func TestMatchesOrderedAndNonOverlapping(t *testing.T) {
	p := Compile(dict(term("Foo"), term("Bar")))
	matches := p.FindAll("Foo Bar baz Foo")

	want := []Match{
		{Key: "Foo", Start: 0, End: 3},
		{Key: "Bar", Start: 4, End: 7},
		{Key: "Foo", Start: 12, End: 15},
	}
	if !reflect.DeepEqual(matches, want) {
		t.Errorf("got %v, want %v", matches, want)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Start < matches[i-1].End {
			t.Errorf("matches overlap: %v and %v", matches[i-1], matches[i])
		}
	}
}

func TestNoOccurrencesYieldsEmpty(t *testing.T) {
	p := Compile(dict(term("Quorum")))
	if matches := p.FindAll("nothing relevant here"); len(matches) != 0 {
		t.Errorf("expected empty result, got %v", matches)
	}
}

func TestEqualLengthTieBreaksOnDictionaryOrder(t *testing.T) {
	// Same length keys: compiled order must follow source order.
	p := Compile(dict(term("abc"), term("xyz"), term("def")))
	keys := p.Keys()
	want := []string{"abc", "xyz", "def"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("compiled key order %v, want %v", keys, want)
	}
}
