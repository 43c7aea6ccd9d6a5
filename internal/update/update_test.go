package update

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"v1.2.3": "1.2.3",
		"1.2.3":  "1.2.3",
		" v0.9 ": "0.9",
		"":       "",
	}
	for in, want := range cases {
		if got := normalize(in); got != want {
			t.Fatalf("normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.1", "1.0.0", 1},
		{"1.0.0", "1.0.1", -1},
		{"2.0", "1.9.9", 1},
		{"1.10.0", "1.9.0", 1},
		{"1.0", "1.0.0", 0},
		{"0.1.0-rc1", "0.1.0", 0}, // pre-release suffix ignored
	}
	for _, c := range cases {
		if got := compare(c.a, c.b); got != c.want {
			t.Fatalf("compare(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestCheckSkipsInCI(t *testing.T) {
	t.Setenv("CI", "true")
	latest, newer, err := Check("1.0.0", false)
	if err != nil || newer || latest != "" {
		t.Fatalf("CI check must be a no-op, got (%q, %v, %v)", latest, newer, err)
	}
}

func TestCheckNoNetworkUsesCache(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	latest, newer, err := Check("1.0.0", true)
	if err != nil || newer || latest != "" {
		t.Fatalf("noNetwork check must be a no-op, got (%q, %v, %v)", latest, newer, err)
	}
}
