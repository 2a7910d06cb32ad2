package coerce

import "testing"

func TestIntCell(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"7", "7"},
		{" 7 ", "7"},
		{"13.0", "13"},
		{"32768", "32768"},
		{"N/A", ""},
		{"", ""},
		{"abc", ""},
		{"1.5", ""},
		{"-3", "-3"},
	}
	for _, c := range cases {
		if got := IntCell(c.in); got != c.want {
			t.Errorf("IntCell(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFloatCell(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"21.5", "21.5"},
		{" 0.0 ", "0"},
		{"1e3", "1000"},
		{"N/A", ""},
		{"", ""},
		{"fast", ""},
	}
	for _, c := range cases {
		if got := FloatCell(c.in); got != c.want {
			t.Errorf("FloatCell(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTimeCell(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-03-02T15:04:05Z", "2024-03-02T15:04:05Z"},
		{"2024-03-02 15:04:05", "2024-03-02T15:04:05Z"},
		{"2024-03-02", "2024-03-02T00:00:00Z"},
		{"not a time", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := TimeCell(c.in); got != c.want {
			t.Errorf("TimeCell(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMillisecondsSkipsGarbage(t *testing.T) {
	if _, ok := Milliseconds("104233"); !ok {
		t.Fatal("expected 104233 to parse")
	}
	if _, ok := Milliseconds("1:44.233"); ok {
		t.Fatal("expected formatted lap string to fail")
	}
}
