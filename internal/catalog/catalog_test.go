package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParsePrice(t *testing.T) {
	cases := map[string]float64{
		"$9.50":           9.5,
		"9":               9,
		" € 12.30 ":       12.3,
		"USD 4.5.6":       4.5,
		"free":            0,
		"":                0,
		"$.75":            0.75,
		"Price: 1,299.99": 1299.99,
	}
	for in, want := range cases {
		if got := ParsePrice(in); got != want {
			t.Errorf("ParsePrice(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestItemID(t *testing.T) {
	if got := ItemID("  Margherita Pizza "); got != "Margherita Pizza" {
		t.Fatalf("unexpected id %q", got)
	}
	if got := ItemID("   "); got != "Item" {
		t.Fatalf("expected fallback id, got %q", got)
	}
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
items:
  - title: " Pizza "
    price: "$9.50"
  - id: soup-1
    title: Soup
    price: "4"
  - title: Pizza
    price: "$1"
`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected duplicate id dropped, got %d items", len(items))
	}
	if items[0].ID != "Pizza" || items[0].Price != 9.5 {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	soup, ok := c.Lookup("soup-1")
	if !ok || soup.Price != 4 {
		t.Fatalf("expected soup-1 lookup, got %+v %v", soup, ok)
	}
	if _, ok := c.Lookup("missing"); ok {
		t.Fatalf("expected missing lookup to fail")
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse([]byte("  ")); err == nil {
		t.Fatalf("expected error for empty menu")
	}
	if _, err := Parse([]byte("items: [")); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := Parse([]byte("items: []")); err == nil {
		t.Fatalf("expected error for menu without items")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.yaml")
	if err := os.WriteFile(path, []byte("items:\n  - title: Tea\n    price: \"$1.20\"\n"), 0o644); err != nil {
		t.Fatalf("write menu: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if tea, ok := c.Lookup("Tea"); !ok || tea.Price != 1.2 {
		t.Fatalf("unexpected tea: %+v", tea)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	def, err := Load("")
	if err != nil || len(def.Items()) == 0 {
		t.Fatalf("expected default menu, got %v", err)
	}
}
