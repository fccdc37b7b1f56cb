package httpserver

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stylehub/internal/catalog"
	"stylehub/internal/domain"
)

// Products are looked up by id first, then by slug, so storefront URLs work
// with either form.
func getProductHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("id")
		p, ok := cat.ProductByID(key)
		if !ok {
			p, ok = cat.ProductBySlug(key)
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

type productQuery struct {
	Category    string `form:"category"`
	SubCategory string `form:"subCategory"`
	Search      string `form:"search"`
	MinPrice    string `form:"minPrice"`
	MaxPrice    string `form:"maxPrice"`
	Sort        string `form:"sort"`
}

func listProductsHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q productQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		products := filterProducts(cat.Products(), q)
		sortProducts(products, q.Sort)
		c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
	}
}

func filterProducts(products []domain.Product, q productQuery) []domain.Product {
	minPrice, hasMin := parsePrice(q.MinPrice)
	maxPrice, hasMax := parsePrice(q.MaxPrice)
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	filtered := products[:0:0]
	for _, p := range products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.SubCategory != "" && p.SubCategory != q.SubCategory {
			continue
		}
		if needle != "" && !matchesSearch(p, needle) {
			continue
		}
		if hasMin || hasMax {
			price, ok := lowestPrice(p)
			if !ok {
				continue
			}
			if hasMin && price.LessThan(minPrice) {
				continue
			}
			if hasMax && price.GreaterThan(maxPrice) {
				continue
			}
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesSearch(p domain.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// lowestPrice is the cheapest variant price, which is what storefront filters
// compare against.
func lowestPrice(p domain.Product) (decimal.Decimal, bool) {
	if len(p.Variants) == 0 {
		return decimal.Decimal{}, false
	}
	lowest := p.Variants[0].Price
	for _, v := range p.Variants[1:] {
		if v.Price.LessThan(lowest) {
			lowest = v.Price
		}
	}
	return lowest, true
}

func sortProducts(products []domain.Product, key string) {
	switch key {
	case "price-asc", "price-desc":
		sort.SliceStable(products, func(i, j int) bool {
			pi, _ := lowestPrice(products[i])
			pj, _ := lowestPrice(products[j])
			if key == "price-desc" {
				return pi.GreaterThan(pj)
			}
			return pi.LessThan(pj)
		})
	case "newest":
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Name < products[j].Name
		})
	}
}

func parsePrice(raw string) (decimal.Decimal, bool) {
	if raw == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func listCategoriesHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": cat.Categories()})
	}
}
