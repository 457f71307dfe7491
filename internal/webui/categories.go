package webui

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/listview"
	"shop_backoffice/internal/models"
)

const categoriesPath = "/categories/viewCategories"

// viewCategories searches on the server; the list only paginates.
func (s *Server) viewCategories(c *gin.Context) {
	ctx := c.Request.Context()
	categories, err := s.api.GetCategories(ctx)
	if err != nil {
		s.fail(c, err, "load categories", "Failed to load categories. Please try again.")
	}

	list := listview.New(categories, CategoriesPageSize)
	query := strings.TrimSpace(c.Query("q"))
	if query != "" {
		found, err := s.api.SearchCategories(ctx, query)
		if err != nil {
			s.fail(c, err, "search categories", "Failed to search categories. Please try again.")
		} else {
			list.Replace(found)
		}
	}
	list.SetPage(pageParam(c, "page"))

	s.render(c, http.StatusOK, "categories.html", gin.H{
		"Title":      "Category List",
		"Categories": list.Items(),
		"Offset":     list.Offset(),
		"Pager":      newPager(c.Request.URL, "page", list),
		"Query":      query,
	})
}

func (s *Server) addCategoryPage(c *gin.Context) {
	s.renderCategoryForm(c, http.StatusOK, models.Category{}, nil)
}

func (s *Server) addCategory(c *gin.Context) {
	cat, errs := categoryFromForm(c)
	if len(errs) > 0 {
		s.renderCategoryForm(c, http.StatusBadRequest, cat, errs)
		return
	}
	if _, err := s.api.CreateCategory(c.Request.Context(), cat); err != nil {
		log.Printf("❌ create category: %v", err)
		s.renderCategoryForm(c, http.StatusBadRequest, cat,
			messages(err, "Failed to save category. Please check your inputs or try again."))
		return
	}
	s.flash(c, flashSuccess, "Category added successfully!")
	c.Redirect(http.StatusSeeOther, categoriesPath)
}

func (s *Server) editCategoryPage(c *gin.Context) {
	cat, err := s.api.GetCategory(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		if isNotFound(err) {
			s.notFound(c)
			return
		}
		s.fail(c, err, "load category", "Failed to load category. Please try again.")
		c.Redirect(http.StatusSeeOther, categoriesPath)
		return
	}
	s.renderCategoryForm(c, http.StatusOK, cat, nil)
}

func (s *Server) editCategory(c *gin.Context) {
	cat, errs := categoryFromForm(c)
	cat.ID = c.Param("categoryId")
	if len(errs) > 0 {
		s.renderCategoryForm(c, http.StatusBadRequest, cat, errs)
		return
	}
	if _, err := s.api.UpdateCategory(c.Request.Context(), cat); err != nil {
		log.Printf("❌ update category %s: %v", cat.ID, err)
		s.renderCategoryForm(c, http.StatusBadRequest, cat,
			messages(err, "Failed to update category. Please check your inputs or try again."))
		return
	}
	s.flash(c, flashSuccess, "Category updated successfully!")
	c.Redirect(http.StatusSeeOther, categoriesPath)
}

// deleteCategory surfaces the API's refusal when products still use the category.
func (s *Server) deleteCategory(c *gin.Context) {
	id := c.Param("categoryId")
	if err := s.api.DeleteCategory(c.Request.Context(), id); err != nil {
		s.fail(c, err, "delete category "+id, "Failed to delete category. Please try again.")
	} else {
		s.flash(c, flashSuccess, "Category deleted successfully!")
	}
	c.Redirect(http.StatusSeeOther, returnPath(c, categoriesPath))
}

// renderCategoryForm also lists the category's products when editing.
func (s *Server) renderCategoryForm(c *gin.Context, status int, cat models.Category, errs []string) {
	data := gin.H{"Title": "Add Category", "Category": cat}
	if cat.ID != "" {
		data["Title"] = "Edit Category"
		products, err := s.api.GetProductsByCategory(c.Request.Context(), cat.ID)
		if err != nil {
			log.Printf("❌ load products of category %s: %v", cat.ID, err)
			errs = append(errs, "Failed to load products. Please try again.")
		}
		list := listview.New(products, CategoryProductsPageSize)
		list.SetPage(pageParam(c, "ppage"))
		data["Products"] = list.Items()
		data["ProductOffset"] = list.Offset()
		data["ProductPager"] = newPager(c.Request.URL, "ppage", list)
	}
	data["Errors"] = errs
	s.render(c, status, "category_form.html", data)
}

func categoryFromForm(c *gin.Context) (models.Category, []string) {
	cat := models.Category{
		CategoryName: c.PostForm("categoryName"),
		Description:  c.PostForm("description"),
		Image:        c.PostForm("image"),
	}
	cat.Normalize()
	if err := cat.Validate(); err != nil {
		return cat, messages(err, err.Error())
	}
	return cat, nil
}
