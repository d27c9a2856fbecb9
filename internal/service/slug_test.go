package service

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"already lower", "hello", "hello"},
		{"surrounding whitespace", "  Spaced Out  ", "spaced-out"},
		{"turkish lowercase letters", "çilek reçeli ğ ı ö ş ü", "cilek-receli-g-i-o-s-u"},
		{"turkish uppercase letters", "ÇĞİÖŞÜ", "cgiosu"},
		// 'İ' must transliterate before lower-casing: strings.ToLower turns
		// it into "i" plus a combining dot otherwise.
		{"dotted capital I", "İstanbul Günlüğü", "istanbul-gunlugu"},
		{"multiple words", "Yeni Ürün Duyurusu", "yeni-urun-duyurusu"},
		{"numbers kept", "Top 10 Products", "top-10-products"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Slugify(tc.title)
			if got != tc.want {
				t.Errorf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}
