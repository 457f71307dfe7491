package webui

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/listview"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/utils"
)

const (
	ordersPath = "/carts/newOrders"
	// statusAll in the status query disables the status filter.
	statusAll = "all"
)

// orderFilter is the state of the orders page, carried in the query string.
type orderFilter struct {
	ID       string
	Customer string
	Status   string // "" means every status
}

func parseOrderFilter(c *gin.Context) orderFilter {
	f := orderFilter{
		ID:       strings.TrimSpace(c.Query("id")),
		Customer: strings.TrimSpace(c.Query("customer")),
	}
	switch status, ok := c.GetQuery("status"); {
	case !ok || status == "":
		f.Status = models.StatusNewOrder
	case status == statusAll || !models.ValidStatus(status):
		f.Status = ""
	default:
		f.Status = status
	}
	return f
}

func (f orderFilter) match(o models.CartInfo) bool {
	if !listview.ContainsFold(o.ID, f.ID) || !listview.ContainsFold(o.UserName, f.Customer) {
		return false
	}
	return f.Status == "" || o.Status == f.Status
}

// ShowActions reports whether the confirm/complete column is rendered.
func (f orderFilter) ShowActions() bool {
	return f.Status == "" || f.Status == models.StatusNewOrder
}

// applyOrderFilter sorts newest first, then narrows to the filter.
func applyOrderFilter(orders []models.CartInfo, f orderFilter, page int) *listview.List[models.CartInfo] {
	models.SortByDateDesc(orders)
	list := listview.New(orders, OrdersPageSize)
	list.Filter(f.match)
	list.SetPage(page)
	return list
}

func (s *Server) viewOrders(c *gin.Context) {
	orders, err := s.api.GetTransactions(c.Request.Context())
	if err != nil {
		s.fail(c, err, "load orders", "Failed to load orders. Please try again.")
	}

	filter := parseOrderFilter(c)
	list := applyOrderFilter(orders, filter, pageParam(c, "page"))

	s.render(c, http.StatusOK, "orders.html", gin.H{
		"Title":    "New Orders",
		"Orders":   list.Items(),
		"Offset":   list.Offset(),
		"Pager":    newPager(c.Request.URL, "page", list),
		"Filter":   filter,
		"Summary":  models.Summarize(list.All()),
		"Statuses": models.Statuses(),
	})
}

func (s *Server) orderDetail(c *gin.Context) {
	order, err := s.api.GetCart(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		if isNotFound(err) {
			s.notFound(c)
			return
		}
		s.fail(c, err, "load order", "Failed to load order. Please try again.")
		c.Redirect(http.StatusSeeOther, ordersPath)
		return
	}
	s.render(c, http.StatusOK, "order_detail.html", gin.H{
		"Title": "Order " + ShortID(order.ID),
		"Order": order,
	})
}

// orderQR serves the packing-slip QR code of an order.
func (s *Server) orderQR(c *gin.Context) {
	png, err := utils.OrderQRPNG(c.Param("orderId"))
	if err != nil {
		log.Printf("❌ order QR: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

func (s *Server) confirmOrder(c *gin.Context) {
	s.setOrderStatus(c, models.StatusDelivery, "Order confirmed!")
}

func (s *Server) completeOrder(c *gin.Context) {
	s.setOrderStatus(c, models.StatusCompleted, "Order completed!")
}

func (s *Server) setOrderStatus(c *gin.Context, status, done string) {
	id := c.Param("orderId")
	if _, err := s.api.UpdateCartStatus(c.Request.Context(), id, status); err != nil {
		s.fail(c, err, "update order "+id, "Failed to update order status. Please try again.")
	} else {
		s.flash(c, flashSuccess, done)
	}
	c.Redirect(http.StatusSeeOther, returnPath(c, ordersPath))
}

func (s *Server) deleteOrder(c *gin.Context) {
	id := c.Param("orderId")
	if err := s.api.DeleteCart(c.Request.Context(), id); err != nil {
		s.fail(c, err, "delete order "+id, "Failed to delete order. Please try again.")
	} else {
		s.flash(c, flashSuccess, "Order deleted successfully!")
	}
	c.Redirect(http.StatusSeeOther, returnPath(c, ordersPath))
}
