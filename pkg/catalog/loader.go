package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// catalogFile is the on-disk layout of a catalog document.
type catalogFile struct {
	Brands     []string         `yaml:"brands"`
	Categories []categoryRecord `yaml:"categories"`
	Products   []productRecord  `yaml:"products"`
}

type categoryRecord struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	NameVi string `yaml:"name_vi"`
	Image  string `yaml:"image"`
}

// productRecord keeps prices as strings so they are parsed exactly.
type productRecord struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	Brand         string            `yaml:"brand"`
	Price         string            `yaml:"price"`
	OriginalPrice string            `yaml:"original_price"`
	Image         string            `yaml:"image"`
	Rating        float64           `yaml:"rating"`
	Reviews       int               `yaml:"reviews"`
	Colors        []string          `yaml:"colors"`
	Storage       []string          `yaml:"storage"`
	InStock       bool              `yaml:"in_stock"`
	Category      string            `yaml:"category"`
	Description   string            `yaml:"description"`
	Specs         map[string]string `yaml:"specs"`
	Featured      bool              `yaml:"featured"`
	IsNew         bool              `yaml:"is_new"`
	IsDeal        bool              `yaml:"is_deal"`
}

func (r productRecord) toProduct() (Product, error) {
	if r.ID == "" {
		return Product{}, fmt.Errorf("product %q: id is empty", r.Name)
	}
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return Product{}, fmt.Errorf("product %s: invalid price: %w", r.ID, err)
	}
	if price.IsNegative() {
		return Product{}, fmt.Errorf("product %s: price must be non-negative", r.ID)
	}
	var original decimal.NullDecimal
	if r.OriginalPrice != "" {
		d, err := decimal.NewFromString(r.OriginalPrice)
		if err != nil {
			return Product{}, fmt.Errorf("product %s: invalid original price: %w", r.ID, err)
		}
		if !d.GreaterThan(price) {
			return Product{}, fmt.Errorf("product %s: original price %s must exceed price %s", r.ID, d, price)
		}
		original = decimal.NewNullDecimal(d)
	}
	if r.Rating < 0 || r.Rating > 5 {
		return Product{}, fmt.Errorf("product %s: rating must be between 0 and 5", r.ID)
	}
	if r.Reviews < 0 {
		return Product{}, fmt.Errorf("product %s: reviews must be non-negative", r.ID)
	}

	colors := r.Colors
	if colors == nil {
		colors = []string{}
	}
	storage := r.Storage
	if storage == nil {
		storage = []string{}
	}
	specs := r.Specs
	if specs == nil {
		specs = map[string]string{}
	}

	return Product{
		ID:             r.ID,
		Name:           r.Name,
		Brand:          r.Brand,
		Price:          price,
		OriginalPrice:  original,
		Image:          r.Image,
		Rating:         r.Rating,
		Reviews:        r.Reviews,
		Colors:         colors,
		StorageOptions: storage,
		InStock:        r.InStock,
		Category:       r.Category,
		Description:    r.Description,
		Specs:          specs,
		Featured:       r.Featured,
		IsNew:          r.IsNew,
		IsDeal:         r.IsDeal,
	}, nil
}

// Load decodes a YAML catalog document and builds a Store.
//
// Parameters:
//   - r: Reader providing the YAML document
//
// Returns:
//   - *Store: The loaded catalog
//   - error: An error if decoding or validation fails
func Load(r io.Reader) (*Store, error) {
	var doc catalogFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	products := make([]Product, 0, len(doc.Products))
	for _, rec := range doc.Products {
		p, err := rec.toProduct()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	categories := make([]Category, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		categories = append(categories, Category(c))
	}

	return New(products, categories, doc.Brands)
}

// LoadFile loads a catalog from a YAML file on disk.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the built-in storefront catalog.
func Default() *Store {
	s, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", err))
	}
	return s
}
