package normalize

import "testing"

func TestName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  central ballester ", "CENTRAL BALLESTER"},
		{"LUJÁN", "LUJAN"},
		{"Ctro  Español", "CTRO ESPANOL"},
		{"CAÑUELAS", "CANUELAS"},
	}

	for _, tc := range cases {
		if got := Name(tc.in); got != tc.want {
			t.Fatalf("Name(%q): got %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestCompactKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"CTRAL. BALLESTER", "CTRALBALLESTER"},
		{"Ctral Ballester", "CTRALBALLESTER"},
		{"ARG. DE QUILMES", "ARGDEQUILMES"},
		{"SP. BARRACAS ", "SPBARRACAS"},
		{"LUJÁN", "LUJAN"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := CompactKey(tc.in); got != tc.want {
			t.Fatalf("CompactKey(%q): got %q want %q", tc.in, got, tc.want)
		}
	}
}
