package webui

import (
	"context"
	"fmt"
	"log"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/listview"
	"shop_backoffice/internal/models"
)

const maxUploadSize = 5 << 20

// viewProducts narrows by name and by id; a blank field matches everything.
func (s *Server) viewProducts(c *gin.Context) {
	ctx := c.Request.Context()
	products, err := s.api.GetProducts(ctx)
	if err != nil {
		s.fail(c, err, "load products", "Failed to load products. Please try again.")
	}
	categories, err := s.api.GetCategories(ctx)
	if err != nil {
		log.Printf("⚠️ load categories for product list: %v", err)
	}

	list := listview.New(products, ProductsPageSize)
	filter := productFilter{Name: strings.TrimSpace(c.Query("name")), ID: strings.TrimSpace(c.Query("id"))}
	if filter.Name != "" || filter.ID != "" {
		list.Filter(filter.match)
	}
	list.SetPage(pageParam(c, "page"))

	s.render(c, http.StatusOK, "products.html", gin.H{
		"Title":      "Product List",
		"Products":   list.Items(),
		"Offset":     list.Offset(),
		"Pager":      newPager(c.Request.URL, "page", list),
		"Categories": categories,
		"Filter":     filter,
	})
}

type productFilter struct {
	Name string
	ID   string
}

func (f productFilter) match(p models.ProductInfo) bool {
	return listview.ContainsFold(p.Name, f.Name) && listview.ContainsFold(p.ID, f.ID)
}

func (s *Server) addProductPage(c *gin.Context) {
	s.renderProductForm(c, http.StatusOK, models.ProductInfo{}, nil)
}

func (s *Server) addProduct(c *gin.Context) {
	p, errs := s.productFromForm(c)
	if len(errs) > 0 {
		s.renderProductForm(c, http.StatusBadRequest, p, errs)
		return
	}
	if _, err := s.api.CreateProduct(c.Request.Context(), p); err != nil {
		log.Printf("❌ create product: %v", err)
		s.renderProductForm(c, http.StatusBadRequest, p,
			messages(err, "Failed to save product. Please check your inputs or try again."))
		return
	}
	s.flash(c, flashSuccess, "Product added successfully!")
	c.Redirect(http.StatusSeeOther, homePath)
}

func (s *Server) editProductPage(c *gin.Context) {
	p, err := s.api.GetProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		if isNotFound(err) {
			s.notFound(c)
			return
		}
		s.fail(c, err, "load product", "Failed to load product. Please try again.")
		c.Redirect(http.StatusSeeOther, homePath)
		return
	}
	s.renderProductForm(c, http.StatusOK, p, nil)
}

func (s *Server) editProduct(c *gin.Context) {
	p, errs := s.productFromForm(c)
	p.ID = c.Param("productId")
	if len(errs) > 0 {
		s.renderProductForm(c, http.StatusBadRequest, p, errs)
		return
	}
	if _, err := s.api.UpdateProduct(c.Request.Context(), p); err != nil {
		log.Printf("❌ update product %s: %v", p.ID, err)
		s.renderProductForm(c, http.StatusBadRequest, p,
			messages(err, "Failed to update product. Please check your inputs or try again."))
		return
	}
	s.flash(c, flashSuccess, "Product updated successfully!")
	c.Redirect(http.StatusSeeOther, returnPath(c, homePath))
}

func (s *Server) deleteProduct(c *gin.Context) {
	id := c.Param("productId")
	if err := s.api.DeleteProduct(c.Request.Context(), id); err != nil {
		s.fail(c, err, "delete product "+id, "Failed to delete product. Please try again.")
	} else {
		s.flash(c, flashSuccess, "Product deleted successfully!")
	}
	c.Redirect(http.StatusSeeOther, returnPath(c, homePath))
}

func (s *Server) renderProductForm(c *gin.Context, status int, p models.ProductInfo, errs []string) {
	categories, err := s.api.GetCategories(c.Request.Context())
	if err != nil {
		log.Printf("❌ load categories for product form: %v", err)
		errs = append(errs, "Failed to load categories. Please try again.")
	}
	title := "Add Product"
	if p.ID != "" {
		title = "Edit Product"
	}
	s.render(c, status, "product_form.html", gin.H{
		"Title":      title,
		"Product":    p,
		"Categories": categories,
		"Errors":     errs,
		"Return":     c.DefaultPostForm("return", c.Query("return")),
	})
}

// productFromForm reads and validates the form. An attached picture is
// uploaded only once every other field is valid.
func (s *Server) productFromForm(c *gin.Context) (models.ProductInfo, []string) {
	p := models.ProductInfo{
		Name:            c.PostForm("name"),
		Description:     c.PostForm("description"),
		CategoryID:      c.PostForm("categoryId"),
		Price:           parseFloat(c.PostForm("price")),
		Quantity:        parseQuantity(c.PostForm("quantity")),
		ProductImages:   models.ImagesFromURLs(splitURLs(c.PostForm("imageUrls"))),
		CpuType:         c.PostForm("cpuType"),
		RamType:         c.PostForm("ramType"),
		RomType:         c.PostForm("romType"),
		ScreenSize:      c.PostForm("screenSize"),
		BatteryCapacity: c.PostForm("bateryCapacity"),
		DetailsType:     c.PostForm("detailsType"),
		ConnectType:     c.PostForm("connectType"),
	}
	p.Normalize()

	if file, err := c.FormFile("imageFile"); err == nil {
		if err := p.ValidateWithoutImages(); err != nil {
			return p, messages(err, err.Error())
		}
		url, err := s.uploadImage(c.Request.Context(), file)
		if err != nil {
			log.Printf("❌ upload product image: %v", err)
			return p, messages(err, "Failed to upload image. Please try again.")
		}
		p.ProductImages = append(p.ProductImages, models.ProductImage{ImageURL: url})
	}

	if err := p.Validate(); err != nil {
		return p, messages(err, err.Error())
	}
	return p, nil
}

func (s *Server) uploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > maxUploadSize {
		return "", fmt.Errorf("image %s is larger than 5 MB", file.Filename)
	}
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	uploaded, err := s.api.UploadImage(ctx, file.Filename, file.Header.Get("Content-Type"), f)
	if err != nil {
		return "", err
	}
	return uploaded.ImageURL, nil
}

// splitURLs accepts image URLs separated by commas or newlines.
func splitURLs(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' || r == '\r' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parseFloat maps blank, malformed or non-finite input to 0, which validation rejects.
func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// parseQuantity maps blank input to 0 and malformed input to -1 so it fails validation.
func parseQuantity(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}
