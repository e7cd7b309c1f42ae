package catalog

import _ "embed"

//go:embed menu.yaml
var defaultMenu []byte

// Default returns the built-in menu.
func Default() *Catalog {
	c, err := Parse(defaultMenu)
	if err != nil {
		panic(err)
	}
	return c
}
