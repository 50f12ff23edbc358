package player

import "testing"

func TestKeyFromURL(t *testing.T) {
	t.Parallel()

	key, ok := KeyFromURL("https://www.proballers.com/es/baloncesto/jugador/12345/juan-perez")
	if !ok || key != "12345" {
		t.Fatalf("KeyFromURL=(%q,%v)", key, ok)
	}
	if _, ok := KeyFromURL("https://example.com/equipo/1/x"); ok {
		t.Fatalf("expected no key for non-player url")
	}
}

func TestDirectory(t *testing.T) {
	t.Parallel()

	dir := NewDirectory([]Identity{
		{ID: "https://site/jugador/7/ana", Name: "Ana"},
		{ID: "https://site/jugador/7/ana-dup", Name: "Duplicate"},
		{ID: "", Name: "ignored"},
	})

	if got := dir.ResolveKey("7"); got != "https://site/jugador/7/ana" {
		t.Fatalf("ResolveKey=%q", got)
	}
	if got := dir.ResolveKey("99"); got != "desconocido_99" {
		t.Fatalf("ResolveKey unknown=%q", got)
	}
	if got := dir.Name("https://site/jugador/7/ana"); got != "Ana" {
		t.Fatalf("Name=%q", got)
	}
	if got := dir.Name("missing"); got != "" {
		t.Fatalf("Name missing=%q", got)
	}
	if dir.Len() != 2 {
		t.Fatalf("Len=%d", dir.Len())
	}
}

func TestKeyFromFilename(t *testing.T) {
	t.Parallel()

	if got := KeyFromFilename("12345_Juan_Perez.csv"); got != "12345" {
		t.Fatalf("KeyFromFilename=%q", got)
	}
}
