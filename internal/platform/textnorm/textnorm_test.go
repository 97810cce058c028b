package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "acute accent", in: "José", want: "Jose"},
		{name: "keeps case", in: "ÁNGEL Núñez", want: "ANGEL Nunez"},
		{name: "decomposed input", in: "Jose\u0301", want: "Jose"},
		{name: "label with team", in: "Agustín Giay (San Lorenzo)", want: "Agustin Giay (San Lorenzo)"},
		{name: "no decomposition passes through", in: "Łukasz Øberg", want: "Łukasz Øberg"},
		{name: "plain ascii", in: "Kevin Mac Allister", want: "Kevin Mac Allister"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q)=%q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"Gonzalo Montiel", "Nicolás Tagliafico", "Ñandú"} {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalize_AccentVariantsCollide(t *testing.T) {
	t.Parallel()

	if Normalize("José") != Normalize("Jose") {
		t.Fatalf("expected accent variants to normalize identically")
	}
	if Normalize("Jose") == Normalize("Josue") {
		t.Fatalf("distinct base letters must stay distinct")
	}
}
