package pointermask

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		want       Format
	}{
		{"png", "sprite.png", Format{Extension: "png", Alpha: AlphaFull, Support: "universal", Known: true}},
		{"jpeg has no alpha", "photo.jpeg", Format{Extension: "jpeg", Alpha: AlphaNone, Support: "universal", Known: true}},
		{"gif alpha is one-bit", "anim.gif", Format{Extension: "gif", Alpha: AlphaLimited, Support: "universal", Known: true}},
		{"case insensitive", "BANNER.PNG", Format{Extension: "png", Alpha: AlphaFull, Support: "universal", Known: true}},
		{"query string stripped", "https://cdn.example.com/a/b/img.webp?v=2", Format{Extension: "webp", Alpha: AlphaFull, Support: "modern", Known: true}},
		{"fragment stripped", "img.png#frag", Format{Extension: "png", Alpha: AlphaFull, Support: "universal", Known: true}},
		{"unknown extension", "texture.xyz", Format{Extension: "xyz"}},
		{"no extension", "textures/hero", Format{}},
		{"dot in directory does not count", "assets.v2/hero", Format{}},
		{"trailing dot", "broken.", Format{}},
		{"empty identifier", "", Format{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.identifier); got != tt.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tt.identifier, got, tt.want)
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	a := Classify("a/b/c.png?q=1")
	b := Classify("a/b/c.png?q=1")
	if a != b {
		t.Errorf("Classify not deterministic: %+v vs %+v", a, b)
	}
}
