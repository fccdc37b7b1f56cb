package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"stylehub/internal/domain"
)

type ProductWriter interface {
	UpsertProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products. A row
// with a slug starts a new product; rows with an empty slug add further
// variants and images to the product above them.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts products grouped by slug.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		current  *domain.Product
		imported int
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		slug := pick(record, index, "slug")
		if slug != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			p := parseProduct(record, index)
			current = &p
		}

		if current == nil {
			continue
		}

		// Variant columns appear on both the product row and its
		// continuation rows.
		if v, ok := parseVariant(record, index); ok {
			current.Variants = append(current.Variants, v)
		}
		if img := pick(record, index, "image"); img != "" {
			current.Images = append(current.Images, img)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, p *domain.Product) error {
	if p.Name == "" || p.Category == "" || len(p.Variants) == 0 {
		return fmt.Errorf("invalid product row (missing required fields) for slug %q", p.Slug)
	}
	if _, err := i.productRepo.UpsertProduct(ctx, *p); err != nil {
		return fmt.Errorf("upsert product %q: %w", p.Slug, err)
	}
	return nil
}

func parseProduct(record []string, index map[string]int) domain.Product {
	var tags []string
	if raw := pick(record, index, "tags"); raw != "" {
		for _, t := range strings.Split(raw, ";") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	return domain.Product{
		Name:        pick(record, index, "name"),
		Slug:        pick(record, index, "slug"),
		Description: pick(record, index, "description"),
		Category:    pick(record, index, "category"),
		SubCategory: pick(record, index, "sub_category"),
		Tags:        tags,
		Featured:    pickBool(record, index, "featured"),
		Trending:    pickBool(record, index, "trending"),
		NewArrival:  pickBool(record, index, "new_arrival"),
	}
}

func parseVariant(record []string, index map[string]int) (domain.Variant, bool) {
	sku := pick(record, index, "variant.sku")
	if sku == "" {
		return domain.Variant{}, false
	}

	price, err := decimal.NewFromString(pick(record, index, "variant.price"))
	if err != nil {
		return domain.Variant{}, false
	}

	v := domain.Variant{
		SKU:      sku,
		Color:    pick(record, index, "variant.color"),
		ColorHex: pick(record, index, "variant.color_hex"),
		Size:     pick(record, index, "variant.size"),
		Price:    price,
		Image:    pick(record, index, "variant.image"),
	}
	if raw := pick(record, index, "variant.original_price"); raw != "" {
		if op, err := decimal.NewFromString(raw); err == nil {
			v.OriginalPrice = &op
		}
	}
	if raw := pick(record, index, "variant.stock"); raw != "" {
		v.Stock, _ = strconv.Atoi(raw)
	}
	return v, true
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[h] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func pickBool(record []string, index map[string]int, key string) bool {
	b, _ := strconv.ParseBool(pick(record, index, key))
	return b
}
