// Package catalog holds the country list the flag quiz draws from.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

//go:embed countries.json
var defaultCountries []byte

// Country is one catalog entry.
type Country struct {
	Name string `json:"name"`
	Code string `json:"code"` // ISO 3166-1 alpha-2
	Flag string `json:"flag"` // local image file name
}

// Emoji renders the code as a regional indicator pair, e.g. "JP" → 🇯🇵.
func (c Country) Emoji() string {
	if len(c.Code) != 2 {
		return ""
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(c.Code) {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(0x1F1E6 + (r - 'A'))
	}
	return b.String()
}

// Catalog is an immutable, validated list of countries.
type Catalog struct {
	countries []Country
	byCode    map[string]Country
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog. It is parsed and validated once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(defaultCountries)
	})
	return defaultCatalog, defaultErr
}

// Load reads and validates a catalog from r.
func Load(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// LoadFile reads and validates a catalog file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Parse validates raw against the catalog schema and decodes it.
func Parse(raw []byte) (*Catalog, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}

	var countries []Country
	if err := json.Unmarshal(raw, &countries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		countries: countries,
		byCode:    make(map[string]Country, len(countries)),
	}
	names := make(map[string]bool, len(countries))
	for _, country := range countries {
		code := strings.ToUpper(country.Code)
		if _, dup := c.byCode[code]; dup {
			return nil, &ValidationError{Err: fmt.Errorf("duplicate code %q", country.Code)}
		}
		if names[country.Name] {
			return nil, &ValidationError{Err: fmt.Errorf("duplicate name %q", country.Name)}
		}
		c.byCode[code] = country
		names[country.Name] = true
	}
	return c, nil
}

// Countries returns a copy of every entry in catalog order.
func (c *Catalog) Countries() []Country {
	return append([]Country(nil), c.countries...)
}

// Names returns the country names, used as the option pool.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.countries))
	for i, country := range c.countries {
		names[i] = country.Name
	}
	return names
}

// Lookup finds a country by code, case-insensitively.
func (c *Catalog) Lookup(code string) (Country, bool) {
	country, ok := c.byCode[strings.ToUpper(code)]
	return country, ok
}

// Len is the number of countries.
func (c *Catalog) Len() int { return len(c.countries) }
