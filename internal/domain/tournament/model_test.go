package tournament

import "testing"

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		in      Tournament
		wantErr bool
	}{
		{"complete", Tournament{Name: "CLAUSURA", Season: "2019"}, false},
		{"missing name", Tournament{Season: "2019"}, true},
		{"missing season", Tournament{Name: "CLAUSURA"}, true},
		{"blank season", Tournament{Name: "CLAUSURA", Season: "   "}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSeasonContains(t *testing.T) {
	cases := []struct {
		name   string
		season string
		year   string
		want   bool
	}{
		{"single year", "2019", "2019", true},
		{"split season first half", "2018/2019", "2018", true},
		{"split season second half", "2018/2019", "2019", true},
		{"other year", "2018/2019", "2020", false},
		{"blank year", "2019", "  ", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tournament{Season: tc.season}.SeasonContains(tc.year)
			if got != tc.want {
				t.Fatalf("SeasonContains(%q) on %q = %v, want %v", tc.year, tc.season, got, tc.want)
			}
		})
	}
}
