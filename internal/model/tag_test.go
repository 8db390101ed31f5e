package model

import (
	"math/rand"
	"testing"
)

func TestPickTagColor_WithinPalette(t *testing.T) {
	palette := make(map[string]bool, len(TagPalette))
	for _, c := range TagPalette {
		palette[c] = true
	}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		if c := PickTagColor(rng); !palette[c] {
			t.Fatalf("picked color %q is not in the palette", c)
		}
	}
}

func TestPickTagColor_SeedReproducible(t *testing.T) {
	a := rand.New(rand.NewSource(7))
	b := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		if ca, cb := PickTagColor(a), PickTagColor(b); ca != cb {
			t.Fatalf("same seed diverged at pick %d: %q vs %q", i, ca, cb)
		}
	}
}

func TestValidColor(t *testing.T) {
	valid := []string{"#abc", "#ABC", "#a1B2c3", "#FFFFFF", "#000"}
	for _, c := range valid {
		if !ValidColor(c) {
			t.Errorf("ValidColor(%q) = false, want true", c)
		}
	}
	invalid := []string{"", "abc", "#ab", "#abcd", "#GGGGGG", "#1234567", "red"}
	for _, c := range invalid {
		if ValidColor(c) {
			t.Errorf("ValidColor(%q) = true, want false", c)
		}
	}
}

func TestNormalizeTagName(t *testing.T) {
	if got := NormalizeTagName("  Urgent  "); got != "urgent" {
		t.Errorf("NormalizeTagName = %q, want %q", got, "urgent")
	}
	if got := NormalizeTagName("FrontEnd"); got != "frontend" {
		t.Errorf("NormalizeTagName = %q, want %q", got, "frontend")
	}
}
