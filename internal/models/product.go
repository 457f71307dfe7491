package models

import "time"

type ProductImage struct {
	ImageURL string `json:"imageUrl" yaml:"imageUrl"`
}

// ProductInfo is a catalog item. The cpuType to connectType fields are optional
// device attributes; bateryCapacity keeps the spelling clients already send.
type ProductInfo struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name" validate:"required"`
	Price         float64        `json:"price" yaml:"price" validate:"gt=0"`
	Description   string         `json:"description" yaml:"description" validate:"required"`
	Quantity      int            `json:"quantity" yaml:"quantity" validate:"gte=0"`
	CategoryID    string         `json:"categoryId" yaml:"categoryId" validate:"required"`
	ProductImages []ProductImage `json:"productImages" yaml:"productImages" validate:"min=1"`

	CpuType         string `json:"cpuType,omitempty" yaml:"cpuType,omitempty"`
	RamType         string `json:"ramType,omitempty" yaml:"ramType,omitempty"`
	RomType         string `json:"romType,omitempty" yaml:"romType,omitempty"`
	ScreenSize      string `json:"screenSize,omitempty" yaml:"screenSize,omitempty"`
	BatteryCapacity string `json:"bateryCapacity,omitempty" yaml:"bateryCapacity,omitempty"`
	DetailsType     string `json:"detailsType,omitempty" yaml:"detailsType,omitempty"`
	ConnectType     string `json:"connectType,omitempty" yaml:"connectType,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"-"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" yaml:"-"`
}

// ImageURLs flattens ProductImages, skipping blank entries.
func (p ProductInfo) ImageURLs() []string {
	urls := make([]string, 0, len(p.ProductImages))
	for _, img := range p.ProductImages {
		if img.ImageURL != "" {
			urls = append(urls, img.ImageURL)
		}
	}
	return urls
}

// ImagesFromURLs is the inverse of ImageURLs.
func ImagesFromURLs(urls []string) []ProductImage {
	images := make([]ProductImage, 0, len(urls))
	for _, u := range urls {
		if u != "" {
			images = append(images, ProductImage{ImageURL: u})
		}
	}
	return images
}

// Normalize trims free-text fields and drops blank image entries before validation.
func (p *ProductInfo) Normalize() {
	p.Name = trim(p.Name)
	p.Description = trim(p.Description)
	p.CategoryID = trim(p.CategoryID)
	p.CpuType = trim(p.CpuType)
	p.RamType = trim(p.RamType)
	p.RomType = trim(p.RomType)
	p.ScreenSize = trim(p.ScreenSize)
	p.BatteryCapacity = trim(p.BatteryCapacity)
	p.DetailsType = trim(p.DetailsType)
	p.ConnectType = trim(p.ConnectType)

	urls := make([]string, 0, len(p.ProductImages))
	for _, img := range p.ProductImages {
		urls = append(urls, trim(img.ImageURL))
	}
	p.ProductImages = ImagesFromURLs(urls)
}
