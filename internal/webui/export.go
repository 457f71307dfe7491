package webui

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"shop_backoffice/internal/models"
)

var exportHeaders = []string{
	"ID", "Name", "Category", "Price", "Quantity", "Description", "Images",
	"CPU", "RAM", "ROM", "Screen", "Battery", "Details", "Connectivity",
}

// exportProducts downloads the whole catalog as products.xlsx.
func (s *Server) exportProducts(c *gin.Context) {
	ctx := c.Request.Context()
	products, err := s.api.GetProducts(ctx)
	if err != nil {
		s.fail(c, err, "export products", "Failed to export products. Please try again.")
		c.Redirect(http.StatusSeeOther, homePath)
		return
	}
	categories, err := s.api.GetCategories(ctx)
	if err != nil {
		log.Printf("⚠️ load categories for export: %v", err)
	}

	file, err := productWorkbook(products, categories)
	if err != nil {
		s.fail(c, err, "build product workbook", "Failed to export products. Please try again.")
		c.Redirect(http.StatusSeeOther, homePath)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")
	if err := file.Write(c.Writer); err != nil {
		log.Printf("❌ write product workbook: %v", err)
	}
}

func productWorkbook(products []models.ProductInfo, categories []models.Category) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(models.CategoryName(categories, p.CategoryID))
		row.AddCell().SetFloat(p.Price)
		row.AddCell().SetInt(p.Quantity)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(strings.Join(p.ImageURLs(), ", "))
		row.AddCell().SetValue(p.CpuType)
		row.AddCell().SetValue(p.RamType)
		row.AddCell().SetValue(p.RomType)
		row.AddCell().SetValue(p.ScreenSize)
		row.AddCell().SetValue(p.BatteryCapacity)
		row.AddCell().SetValue(p.DetailsType)
		row.AddCell().SetValue(p.ConnectType)
	}
	return file, nil
}
