// Package catalog holds the menu the bridges offer for "add to cart".
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const fallbackTitle = "Item"

var nonPriceChars = regexp.MustCompile(`[^0-9.]`)

// Item is one dish on the menu.
type Item struct {
	ID       string  `yaml:"id,omitempty" json:"id"`
	Title    string  `yaml:"title" json:"title"`
	Category string  `yaml:"category,omitempty" json:"category,omitempty"`
	Price    float64 `yaml:"-" json:"price"`
	// PriceText is the price as displayed, e.g. "$9.50".
	PriceText string `yaml:"price" json:"price_text"`
}

type menuFile struct {
	Items []Item `yaml:"items"`
}

// Catalog is an ordered, read-only menu.
type Catalog struct {
	items []Item
	byID  map[string]int
}

// ItemID derives the stable cart id of a dish from its display title.
func ItemID(title string) string {
	t := strings.TrimSpace(title)
	if t == "" {
		return fallbackTitle
	}
	return t
}

// ParsePrice reads a displayed price, ignoring currency symbols and other
// noise. Text that does not yield a number is priced at 0.
func ParsePrice(text string) float64 {
	cleaned := nonPriceChars.ReplaceAllString(text, "")
	// Keep the longest leading numeric prefix, like a lenient float parser.
	for end := len(cleaned); end > 0; end-- {
		if v, err := strconv.ParseFloat(cleaned[:end], 64); err == nil {
			return v
		}
	}
	return 0
}

// New builds a catalog, deriving ids and numeric prices. Later duplicates of
// an id are dropped.
func New(items []Item) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(items))}
	for _, it := range items {
		it.Title = strings.TrimSpace(it.Title)
		if it.Title == "" {
			it.Title = fallbackTitle
		}
		if it.ID == "" {
			it.ID = ItemID(it.Title)
		}
		it.Price = ParsePrice(it.PriceText)
		if _, dup := c.byID[it.ID]; dup {
			continue
		}
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c
}

// Parse decodes a YAML menu document.
func Parse(data []byte) (*Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("catalog: menu is empty")
	}
	var mf menuFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("catalog: decode menu: %w", err)
	}
	if len(mf.Items) == 0 {
		return nil, errors.New("catalog: menu has no items")
	}
	return New(mf.Items), nil
}

// Load reads a YAML menu from path. An empty path yields the default menu.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return c, nil
}

// Items returns the menu in display order.
func (c *Catalog) Items() []Item {
	return append([]Item(nil), c.items...)
}

// Lookup finds a dish by id.
func (c *Catalog) Lookup(id string) (Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}
