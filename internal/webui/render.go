package webui

import (
	"embed"
	"html/template"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"shop_backoffice/internal/listview"
	"shop_backoffice/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var vietnamese = message.NewPrinter(language.Vietnamese)

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"price":        FormatPrice,
		"shortID":      ShortID,
		"slug":         Slug,
		"categoryName": models.CategoryName,
		"rowNo":        func(offset, i int) int { return offset + i + 1 },
		"imageLines":   func(p models.ProductInfo) string { return strings.Join(p.ImageURLs(), "\n") },
		"firstImage":   firstImage,
		"lineTotal":    func(d models.CartDetailInfo) string { return FormatPrice(d.LineTotal()) },
		"join":         strings.Join,
		"hasPrefix":    strings.HasPrefix,
		"plainNumber":  func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	}
}

// FormatPrice renders an amount the vi-VN way, e.g. 1.500.000₫.
func FormatPrice(v float64) string {
	return vietnamese.Sprint(number.Decimal(v, number.MaxFractionDigits(3))) + "₫"
}

// ShortID shows the first 8 characters of an id behind a #.
func ShortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "#" + id
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases name and collapses everything outside [a-z0-9] into single dashes.
func Slug(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

func firstImage(images []models.ProductImage) string {
	for _, img := range images {
		if img.ImageURL != "" {
			return img.ImageURL
		}
	}
	return ""
}

// Breadcrumb turns /products/viewProducts into "Admin / Products / View Products".
func Breadcrumb(path string) string {
	parts := []string{"Admin"}
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg == "" || strings.ContainsAny(seg, ".0123456789") {
			continue
		}
		parts = append(parts, titleWords(seg))
	}
	return strings.Join(parts, " / ")
}

func titleWords(seg string) string {
	var b strings.Builder
	for i, r := range seg {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteRune(' ')
		}
		if r == '-' {
			r = ' '
		}
		b.WriteRune(r)
	}
	words := strings.Fields(b.String())
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// render adds the shell fields every page uses and writes the template.
func (s *Server) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	errs, infos := s.takeFlashes(c)
	if existing, ok := data["Errors"].([]string); ok {
		errs = append(errs, existing...)
	}
	data["Errors"] = errs
	data["Infos"] = infos

	loggedIn := s.loggedIn(c)
	data["ShowChrome"] = loggedIn && name != "login.html"
	data["SidebarOpen"] = s.sidebarOpen(c)
	data["Path"] = c.Request.URL.Path
	data["RequestURI"] = c.Request.URL.RequestURI()
	data["Breadcrumb"] = Breadcrumb(c.Request.URL.Path)
	c.HTML(status, name, data)
}

// pager is what the pagination partial renders.
type pager struct {
	Page       int
	TotalPages int
	From, To   int
	Total      int
	Links      []pageLink
	Prev, Next string
}

type pageLink struct {
	Number int
	URL    string
	Active bool
}

// newPager builds links that keep the current query and only change param.
func newPager[T any](u *url.URL, param string, l *listview.List[T]) pager {
	link := func(n int) string {
		q := u.Query()
		q.Set(param, strconv.Itoa(n))
		return u.Path + "?" + q.Encode()
	}

	p := pager{Page: l.Page(), TotalPages: l.TotalPages(), Total: l.Len()}
	if n := len(l.Items()); n > 0 {
		p.From = l.Offset() + 1
		p.To = l.Offset() + n
	}
	for _, n := range l.Pages() {
		p.Links = append(p.Links, pageLink{Number: n, URL: link(n), Active: n == p.Page})
	}
	if p.Page > 1 {
		p.Prev = link(p.Page - 1)
	}
	if p.Page < p.TotalPages {
		p.Next = link(p.Page + 1)
	}
	return p
}

// pageParam reads a 1-based page number, defaulting to 1.
func pageParam(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
