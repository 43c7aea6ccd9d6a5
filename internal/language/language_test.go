package language

import "testing"

func TestClassify(t *testing.T) {
	cases := map[string]string{
		"main.go":            "go",
		"src/app.PY":         "python",
		"web/index.html":     "html",
		"deploy.ps1":         "powershell",
		"query.sql":          "sql",
		"conf/settings.yml":  "yaml",
		"script":             Unknown,
		"archive.xyz":        Unknown,
		"nested/dir/util.ts": "typescript",
	}
	for path, want := range cases {
		if got := Classify(path); got != want {
			t.Fatalf("Classify(%q)=%q want %q", path, got, want)
		}
	}
}

func TestKnownExtension(t *testing.T) {
	if !KnownExtension("a.go") {
		t.Fatal("expected .go to be known")
	}
	if KnownExtension("a.xyz") {
		t.Fatal("expected .xyz to be unknown")
	}
	if KnownExtension("noext") {
		t.Fatal("expected extension-less path to be unknown")
	}
}

func TestFromGlob(t *testing.T) {
	cases := []struct {
		glob string
		lang string
		ok   bool
	}{
		{"*.py", "python", true},
		{".rb", "ruby", true},
		{"sh", "shell", true},
		{"*.PS1", "powershell", true},
		{"*.nope", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		lang, ok := FromGlob(c.glob)
		if ok != c.ok || lang != c.lang {
			t.Fatalf("FromGlob(%q)=(%q,%v) want (%q,%v)", c.glob, lang, ok, c.lang, c.ok)
		}
	}
}

func TestExtensionsSorted(t *testing.T) {
	exts := Extensions()
	if len(exts) == 0 {
		t.Fatal("expected non-empty extension table")
	}
	for i := 1; i < len(exts); i++ {
		if exts[i-1] >= exts[i] {
			t.Fatalf("extensions not sorted at %d: %q >= %q", i, exts[i-1], exts[i])
		}
	}
}
