package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/netrunnerdb/cardlint/internal/card"
)

// Catalog is a read-only view of a card data repository
type Catalog struct {
	Path     string
	PackPath string

	Packs []card.Pack

	// Printings in pack order, then file order
	Printings []Printing

	// Translated titles by locale, then card code
	titles map[string]map[string]string
}

// Printing is one appearance of a card in a pack
type Printing struct {
	Pack card.Pack
	Card card.Card
}

// LoadCatalog loads packs.json and every pack file it lists
func LoadCatalog(basePath, packPath string) (*Catalog, error) {
	if packPath == "" {
		packPath = filepath.Join(basePath, "pack")
	}

	packsPath := filepath.Join(basePath, "packs.json")
	raw, err := os.ReadFile(packsPath)
	if err != nil {
		return nil, fmt.Errorf("packs.json not found in %s", basePath)
	}
	packs, err := card.Decode[[]card.Pack](raw)
	if err != nil {
		return nil, fmt.Errorf("error parsing packs.json: %w", err)
	}

	c := &Catalog{
		Path:     basePath,
		PackPath: packPath,
		Packs:    packs,
		titles:   make(map[string]map[string]string),
	}
	if err := c.loadPrintings(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) loadPrintings() error {
	for _, p := range c.Packs {
		raw, err := os.ReadFile(filepath.Join(c.PackPath, p.Code+".json"))
		if err != nil {
			return fmt.Errorf("error reading pack %s: %w", p.Code, err)
		}
		cards, err := card.DecodeCards(raw)
		if err != nil {
			return fmt.Errorf("error parsing pack %s: %w", p.Code, err)
		}
		for _, cd := range cards {
			c.Printings = append(c.Printings, Printing{Pack: p, Card: cd})
		}
	}
	return nil
}

// Lookup finds every printing whose code equals query or whose title or
// stripped title matches it, ignoring case
func (c *Catalog) Lookup(query string) ([]Printing, error) {
	var found []Printing
	for _, p := range c.Printings {
		if p.Card.Code == query {
			return []Printing{p}, nil
		}
	}
	for _, p := range c.Printings {
		if strings.EqualFold(p.Card.Title, query) || strings.EqualFold(p.Card.StrippedTitle, query) {
			found = append(found, p)
		}
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("card not found: %s", query)
	}
	return found, nil
}

// LoadTranslations reads the translated titles of a locale from
// translations/<locale>/pack. A missing locale is an error.
func (c *Catalog) LoadTranslations(locale string) error {
	dir := filepath.Join(c.Path, "translations", locale, "pack")
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("no translations for locale %s", locale)
	}

	files, err := doublestar.Glob(os.DirFS(dir), "*.json", doublestar.WithFilesOnly())
	if err != nil {
		return err
	}
	sort.Strings(files)

	titles := make(map[string]string)
	for _, name := range files {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		cards, err := card.DecodeCards(raw)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", name, err)
		}
		for _, cd := range cards {
			if cd.Title != "" {
				titles[cd.Code] = cd.Title
			}
		}
	}
	c.titles[locale] = titles
	return nil
}

// Title returns the card's title in locale, or its printed title when no
// translation was loaded
func (c *Catalog) Title(locale string, cd card.Card) string {
	if t, ok := c.titles[locale][cd.Code]; ok {
		return t
	}
	return cd.Title
}
