// Package catalog loads storefront product exports. The commerce platform's
// CSV format repeats the handle across rows for extra images and variants;
// loading collapses those into one product per handle.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"contentforge/internal/domain/entity"
)

// column names in the storefront export header.
const (
	colHandle = "Handle"
	colTitle  = "Title"
	colBody   = "Body (HTML)"
	colVendor = "Vendor"
	colType   = "Type"
	colTags   = "Tags"
	colSKU    = "Variant SKU"
	colPrice  = "Variant Price"
	colImage  = "Image Src"
)

// Load reads a product export CSV from path and returns one product per
// handle, in file order.
func Load(path string) ([]*entity.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse reads a product export from r.
func Parse(r io.Reader) ([]*entity.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col[colHandle]; !ok {
		return nil, fmt.Errorf("catalog export is missing the %q column", colHandle)
	}

	byHandle := make(map[string]*entity.Product)
	order := make([]string, 0, 50)

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row %d: %w", line, err)
		}

		handle := field(row, col, colHandle)
		if handle == "" {
			continue
		}

		product, seen := byHandle[handle]
		if !seen {
			product = &entity.Product{
				Handle:      handle,
				Title:       field(row, col, colTitle),
				Description: field(row, col, colBody),
				Vendor:      field(row, col, colVendor),
				ProductType: field(row, col, colType),
				Tags:        splitTags(field(row, col, colTags)),
				SKU:         field(row, col, colSKU),
			}
			if priceStr := field(row, col, colPrice); priceStr != "" {
				price, err := strconv.ParseFloat(priceStr, 64)
				if err != nil {
					return nil, fmt.Errorf("catalog row %d: price %q: %w", line, priceStr, err)
				}
				product.Price = price
			}
			byHandle[handle] = product
			order = append(order, handle)
		}

		// Continuation rows carry additional images for the same handle.
		if img := field(row, col, colImage); img != "" {
			product.Images = append(product.Images, img)
		}
	}

	products := make([]*entity.Product, 0, len(order))
	for _, handle := range order {
		products = append(products, byHandle[handle])
	}
	return products, nil
}

func field(row []string, col map[string]int, name string) string {
	idx, ok := col[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
