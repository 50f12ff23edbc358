package textnorm

import "testing"

func TestTeam(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{in: "Club Baloncesto Breogán", want: "breogan"},
		{in: "Leyma Coruña", want: "coruna"},
		{in: "Río Ourense Termal", want: "ourense termal"},
		{in: "Real Betis Baloncesto S.A.D.", want: "real betis"},
		{in: "fc-barcelona-ii", want: "fc barcelona ii"},
		{in: "  CB   Prat  ", want: "prat"},
		{in: "Movistar Estudiantes", want: "estudiantes"},
		{in: "", want: ""},
	}

	for _, tc := range cases {
		if got := Team(tc.in); got != tc.want {
			t.Fatalf("Team(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTeam_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Club Baloncesto Breogán",
		"Unicaja Málaga",
		"Bàsquet Girona 1",
		"Monbus Obradoiro CAB",
		"Río Breogán - Lugo",
		"sad sad club",
	}
	for _, in := range inputs {
		once := Team(in)
		if twice := Team(once); twice != once {
			t.Fatalf("Team not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestFolder(t *testing.T) {
	t.Parallel()

	if got := Folder("Leyma_Coruna"); got != "Leyma Coruna" {
		t.Fatalf("Folder=%q", got)
	}
	if got := Folder("_Real__Madrid_"); got != "Real Madrid" {
		t.Fatalf("Folder=%q", got)
	}
}
