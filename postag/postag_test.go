package postag

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestTag_String(t *testing.T) {
	tests := []struct {
		tag  Tag
		want string
	}{
		{Unknown, "unknown"},
		{ForeignWord, "foreign"},
		{MixedOrOther, "mixed"},
		{Address, "address"},
		{Noun | PersonName, "noun|person"},
		{Tag(1 << 30), "0x40000000"},
	}

	for _, tc := range tests {
		if got := tc.tag.String(); got != tc.want {
			t.Errorf("Tag(%d).String() = %q, want %q", uint32(tc.tag), got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	for _, n := range names {
		got, err := Parse(n.name)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", n.name, err)
		}
		if got != n.tag {
			t.Errorf("Parse(%q) = %v, want %v", n.name, got, n.tag)
		}
	}

	got, err := Parse("Noun|person")
	if err != nil {
		t.Fatalf("Parse combined failed: %v", err)
	}
	if got != Noun|PersonName {
		t.Errorf("Parse combined = %v, want %v", got, Noun|PersonName)
	}

	if got, err := Parse(""); err != nil || got != Unknown {
		t.Errorf("Parse(\"\") = %v, %v; want unknown, nil", got, err)
	}
}

func TestParse_Unknown(t *testing.T) {
	_, err := Parse("adjective|bogus")
	if !errors.Is(err, ErrUnknownTag) {
		t.Errorf("expected ErrUnknownTag, got: %v", err)
	}
}

func TestTag_Has(t *testing.T) {
	tag := Noun | Organization
	if !tag.Has(Noun) {
		t.Error("expected Has(Noun)")
	}
	if tag.Has(Verb) {
		t.Error("unexpected Has(Verb)")
	}
	if tag.Has(Unknown) {
		t.Error("Has(Unknown) should always be false")
	}
}

func TestTag_JSON(t *testing.T) {
	type wrapper struct {
		P Tag `json:"p"`
	}

	data, err := json.Marshal(wrapper{P: ForeignWord})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"p":"foreign"}` {
		t.Errorf("Marshal = %s", data)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"p":"address"}`), &w); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if w.P != Address {
		t.Errorf("Unmarshal = %v, want address", w.P)
	}

	if err := json.Unmarshal([]byte(`{"p":"nope"}`), &w); !errors.Is(err, ErrUnknownTag) {
		t.Errorf("expected ErrUnknownTag, got: %v", err)
	}
}
