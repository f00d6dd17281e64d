package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductData son los campos editables de un producto; todos opcionales.
type ProductData struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       decimal.NullDecimal `json:"price"`
}

// Product es un artículo del catálogo con su imagen destacada.
type Product struct {
	ID int64 `json:"id"`
	ProductData
	FeaturedImage             *string   `json:"featured_image"`
	FeaturedImageOriginalName *string   `json:"featured_image_original_name"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

func NewProduct(data ProductData, now time.Time) (*Product, error) {
	p := &Product{CreatedAt: now.UTC(), UpdatedAt: now.UTC()}
	if err := p.Apply(data, now); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply sustituye los campos editables; la imagen se gestiona aparte.
func (p *Product) Apply(data ProductData, now time.Time) error {
	data.Name = strings.TrimSpace(data.Name)
	if len(data.Name) > 255 {
		return fmt.Errorf("%w: the name must not be more than 255 characters", ErrInvalidProduct)
	}
	if data.Price.Valid {
		if data.Price.Decimal.IsNegative() {
			return fmt.Errorf("%w: the price must be at least 0", ErrInvalidProduct)
		}
		data.Price.Decimal = data.Price.Decimal.Round(2)
	}

	p.ProductData = data
	p.UpdatedAt = now.UTC()
	return nil
}

// SetImage asocia la imagen ya guardada y devuelve la ruta anterior, si la había.
func (p *Product) SetImage(path, originalName string) (previous string) {
	if p.FeaturedImage != nil {
		previous = *p.FeaturedImage
	}
	p.FeaturedImage = &path
	p.FeaturedImageOriginalName = &originalName
	return previous
}

func (p *Product) Field(name string) (any, bool) {
	switch name {
	case "id":
		return p.ID, true
	case "name":
		return p.Name, true
	case "description":
		return p.Description, true
	case "price":
		if !p.Price.Valid {
			return nil, true
		}
		return p.Price.Decimal.InexactFloat64(), true
	case "created_at":
		return p.CreatedAt, true
	case "updated_at":
		return p.UpdatedAt, true
	}
	return nil, false
}
