package optimizer

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/tidwall/gjson"
)

//go:embed catalog.json
var embeddedCatalog []byte

// Catalog is the immutable ingredient table: names, virtue coefficients,
// the always-available set and the game's unlock order. It is safe for
// concurrent use once loaded.
type Catalog struct {
	names  []string
	labels []string
	coeff  [NumVirtues][]float64
	index  map[string]int

	alwaysAvailable []int
	unlockOrder     []int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// DefaultCatalog returns the embedded 32-ingredient catalog. It is parsed
// once per process.
func DefaultCatalog() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = LoadCatalog(embeddedCatalog)
	})
	return defaultCatalog, defaultErr
}

// MustDefaultCatalog is like DefaultCatalog but panics on a malformed
// embedded document.
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalog parses a catalog document of the form
//
//	{"ingredients": [{"name", "label", "taste", "color", "strength", "foam"}...],
//	 "alwaysAvailable": [name...], "unlockOrder": [name...]}
func LoadCatalog(doc []byte) (*Catalog, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("catalog: invalid JSON")
	}
	root := gjson.ParseBytes(doc)

	c := &Catalog{index: make(map[string]int)}
	var parseErr error
	root.Get("ingredients").ForEach(func(_, v gjson.Result) bool {
		name := v.Get("name").String()
		if name == "" {
			parseErr = fmt.Errorf("catalog: ingredient %d has no name", len(c.names))
			return false
		}
		if _, dup := c.index[name]; dup {
			parseErr = fmt.Errorf("catalog: duplicate ingredient %q", name)
			return false
		}
		for _, vt := range Virtues {
			f := v.Get(vt.String())
			if !f.Exists() {
				parseErr = fmt.Errorf("catalog: ingredient %q missing %s coefficient", name, vt)
				return false
			}
			c.coeff[vt] = append(c.coeff[vt], f.Float())
		}
		label := v.Get("label").String()
		if label == "" {
			label = name
		}
		c.index[name] = len(c.names)
		c.names = append(c.names, name)
		c.labels = append(c.labels, label)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(c.names) == 0 {
		return nil, fmt.Errorf("catalog: no ingredients")
	}

	var err error
	if c.alwaysAvailable, err = c.readNameList(root.Get("alwaysAvailable")); err != nil {
		return nil, fmt.Errorf("catalog: alwaysAvailable: %w", err)
	}
	if c.unlockOrder, err = c.readNameList(root.Get("unlockOrder")); err != nil {
		return nil, fmt.Errorf("catalog: unlockOrder: %w", err)
	}
	if len(c.unlockOrder) == 0 {
		// no explicit order: catalog order
		c.unlockOrder = make([]int, len(c.names))
		for i := range c.unlockOrder {
			c.unlockOrder[i] = i
		}
	}
	return c, nil
}

func (c *Catalog) readNameList(v gjson.Result) ([]int, error) {
	var out []int
	seen := make(map[int]bool)
	var err error
	v.ForEach(func(_, item gjson.Result) bool {
		idx, lerr := c.IndexOf(item.String())
		if lerr != nil {
			err = lerr
			return false
		}
		if !seen[idx] {
			seen[idx] = true
			out = append(out, idx)
		}
		return true
	})
	return out, err
}

// IngredientCount returns N, the catalog size.
func (c *Catalog) IngredientCount() int { return len(c.names) }

// Coefficient returns the contribution of one unit of ingredient i to v.
func (c *Catalog) Coefficient(v Virtue, i int) float64 { return c.coeff[v][i] }

// Name returns the identifier of ingredient i.
func (c *Catalog) Name(i int) string { return c.names[i] }

// Label returns the display label of ingredient i.
func (c *Catalog) Label(i int) string { return c.labels[i] }

// IndexOf looks an ingredient up by name.
func (c *Catalog) IndexOf(name string) (int, error) {
	if i, ok := c.index[name]; ok {
		return i, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// AlwaysAvailable returns the indices usable without unlocking.
func (c *Catalog) AlwaysAvailable() []int {
	return append([]int(nil), c.alwaysAvailable...)
}

// IsAlwaysAvailable reports whether ingredient i needs no unlock.
func (c *Catalog) IsAlwaysAvailable(i int) bool {
	for _, a := range c.alwaysAvailable {
		if a == i {
			return true
		}
	}
	return false
}

// UnlockOrder returns every ingredient index in the order the game unlocks them.
func (c *Catalog) UnlockOrder() []int {
	return append([]int(nil), c.unlockOrder...)
}

// UnlockedThrough returns the first n unlockable ingredients in unlock order,
// skipping the always-available ones. n is clamped to the number of
// unlockable ingredients.
func (c *Catalog) UnlockedThrough(n int) []int {
	var out []int
	for _, idx := range c.unlockOrder {
		if len(out) >= n {
			break
		}
		if c.IsAlwaysAvailable(idx) {
			continue
		}
		out = append(out, idx)
	}
	return out
}

// Validate checks that every index lies inside the catalog.
func (c *Catalog) Validate(indices []int) error {
	for _, i := range indices {
		if i < 0 || i >= len(c.names) {
			return fmt.Errorf("%w: index %d outside [0,%d)", ErrUnknownIngredient, i, len(c.names))
		}
	}
	return nil
}
