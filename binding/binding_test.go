package binding

import "testing"

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"name":  "my-zine",
		"pages": 8,
		"meta":  map[string]any{"author": "ann"},
		"tags":  []any{"print", "diy"},
	}
	cases := []struct {
		in, want string
	}{
		{"${name}-zine.pdf", "my-zine-zine.pdf"},
		{"${ name } (${pages}p)", "my-zine (8p)"},
		{"${meta.author}", "ann"},
		{"${tags[1]}", "diy"},
		{"${tags[5]}", "${tags[5]}"},
		{"${missing}", "${missing}"},
		{"${meta.author.x}", "${meta.author.x}"},
		{"plain", "plain"},
	}
	for _, tc := range cases {
		if got := Interpolate(tc.in, data); got != tc.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := Interpolate("${name}", nil); got != "${name}" {
		t.Fatalf("nil data should keep placeholders, got %q", got)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"manuscript.pdf", "manuscript"},
		{`C:\Users\me\zine final.PDF`, "zine final"},
		{"../../etc/passwd", "passwd"},
		{"a<b>c?.pdf", "a_b_c_"},
		{"ｚｉｎｅ.pdf", "zine"},
		{"...pdf", DefaultName},
		{"", DefaultName},
		{"  .pdf", DefaultName},
	}
	for _, tc := range cases {
		if got := SanitizeName(tc.in); got != tc.want {
			t.Fatalf("SanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
