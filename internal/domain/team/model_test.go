package team

import "testing"

func TestNewReference(t *testing.T) {
	t.Parallel()

	ref := NewReference("2015-2016", 2015, "https://www.proballers.com/es/baloncesto/equipo/2114/leyma-coruna/2015", "Leyma Coruña")
	if ref.ID != "https://www.proballers.com/es/baloncesto/equipo/2114/leyma-coruna" {
		t.Fatalf("season suffix not stripped: %q", ref.ID)
	}
	if ref.NormalizedName != "coruna" || ref.NormalizedSlug != "coruna" {
		t.Fatalf("unexpected normalized keys: %+v", ref)
	}
	if err := ref.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
}

func TestReference_ValidateRejectsSentinel(t *testing.T) {
	t.Parallel()

	ref := NewReference("2015-2016", 2015, UnknownID, "x")
	if err := ref.Validate(); err == nil {
		t.Fatalf("expected sentinel id to be rejected")
	}
	if err := (Reference{ID: "x"}).Validate(); err == nil {
		t.Fatalf("expected missing season to be rejected")
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"https://site/equipo/146/real-valladolid":  "real-valladolid",
		"https://site/equipo/146/real-valladolid/": "real-valladolid",
		"plain": "plain",
		"":      "",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Fatalf("Slug(%q)=%q, want %q", in, got, want)
		}
	}
}
