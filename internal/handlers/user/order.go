package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/cache"
	"shop_backoffice/internal/handlers"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/utils"
)

const notifyTimeout = 30 * time.Second

func (h *Handler) listCarts(ctx context.Context) ([]models.CartInfo, error) {
	return cache.Remember(ctx, h.Cache, cache.KeyCarts, h.Store.ListCarts)
}

func (h *Handler) GetCartInfos(c *gin.Context) {
	carts, err := h.listCarts(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err, "list carts")
		return
	}
	c.JSON(http.StatusOK, carts)
}

// GetAllTransactions lists every order, newest first.
func (h *Handler) GetAllTransactions(c *gin.Context) {
	carts, err := h.listCarts(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err, "list transactions")
		return
	}
	models.SortByDateDesc(carts)
	c.JSON(http.StatusOK, carts)
}

func (h *Handler) GetCartInfoByID(c *gin.Context) {
	cart, err := h.Store.GetCart(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err, "get cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

// GetCartSummary counts orders per status.
func (h *Handler) GetCartSummary(c *gin.Context) {
	carts, err := h.listCarts(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err, "summarize carts")
		return
	}
	c.JSON(http.StatusOK, models.Summarize(carts))
}

// PostCartInfo records an order. Status defaults to NewOrder, the date to now
// and the total to the sum of the lines.
func (h *Handler) PostCartInfo(c *gin.Context) {
	var cart models.CartInfo
	if err := c.ShouldBindJSON(&cart); err != nil {
		handlers.BadRequest(c, "invalid cart body: "+err.Error())
		return
	}
	if err := cart.Validate(); err != nil {
		handlers.RespondError(c, err, "validate cart")
		return
	}

	if cart.Status == "" {
		cart.Status = models.StatusNewOrder
	}
	if !models.ValidStatus(cart.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status", "valid_statuses": models.Statuses()})
		return
	}
	if cart.DateOrder == "" {
		cart.DateOrder = time.Now().Format(models.OrderDateLayout)
	}
	if cart.TotalPrice == 0 {
		cart.TotalPrice = cart.ComputeTotal()
	}

	ctx := c.Request.Context()
	created, err := h.Store.CreateCart(ctx, cart)
	if err != nil {
		handlers.RespondError(c, err, "create cart")
		return
	}
	h.Cache.Invalidate(ctx, cache.KeyCarts)

	c.Set(utils.CtxAuditResourceID, created.ID)
	c.JSON(http.StatusCreated, created)
}

// UpdateStatusCartInfo moves an order forward through NewOrder → Delivery → Completed
// and e-mails the customer when the status actually changed.
func (h *Handler) UpdateStatusCartInfo(c *gin.Context) {
	var req models.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, "id and status are required")
		return
	}
	c.Set(utils.CtxAuditResourceID, req.ID)

	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          "invalid status",
			"valid_statuses": models.Statuses(),
		})
		return
	}

	ctx := c.Request.Context()
	current, err := h.Store.GetCart(ctx, req.ID)
	if err != nil {
		handlers.RespondError(c, err, "get cart")
		return
	}
	if err := models.CheckTransition(current.Status, req.Status); err != nil {
		handlers.BadRequest(c, err.Error())
		return
	}

	updated, err := h.Store.UpdateCartStatus(ctx, req.ID, req.Status)
	if err != nil {
		handlers.RespondError(c, err, "update cart status")
		return
	}
	h.Cache.Invalidate(ctx, cache.KeyCarts)
	log.Printf("✅ Order %s: %s → %s", updated.ID, current.Status, updated.Status)

	if current.Status != updated.Status {
		h.notifyCustomer(updated)
	}
	c.JSON(http.StatusOK, updated)
}

// notifyCustomer e-mails the order's customer in the background when they have an address.
func (h *Handler) notifyCustomer(cart models.CartInfo) {
	if h.Mailer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		customer, err := h.Store.GetUserByName(ctx, cart.UserName)
		if err != nil || customer.UserEmail == "" {
			return
		}
		if err := h.Mailer.SendOrderStatusEmail(ctx, cart, customer.UserEmail); err != nil {
			log.Printf("❌ status e-mail for order %s: %v", cart.ID, err)
		}
	}()
}

func (h *Handler) DeleteCartInfo(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.Store.DeleteCart(ctx, c.Param("id")); err != nil {
		handlers.RespondError(c, err, "delete cart")
		return
	}
	h.Cache.Invalidate(ctx, cache.KeyCarts)
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}
