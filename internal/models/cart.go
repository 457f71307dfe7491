package models

import (
	"fmt"
	"sort"
	"time"
)

// Order statuses, in lifecycle order.
const (
	StatusNewOrder  = "NewOrder"
	StatusDelivery  = "Delivery"
	StatusCompleted = "Completed"
)

// OrderDateLayout is the dd/MM/yyyy HH:mm format the storefront writes.
const OrderDateLayout = "02/01/2006 15:04"

var statusRank = map[string]int{
	StatusNewOrder:  0,
	StatusDelivery:  1,
	StatusCompleted: 2,
}

// Statuses lists valid statuses in lifecycle order.
func Statuses() []string {
	return []string{StatusNewOrder, StatusDelivery, StatusCompleted}
}

func ValidStatus(status string) bool {
	_, ok := statusRank[status]
	return ok
}

// CheckTransition allows staying put or moving forward in the lifecycle.
func CheckTransition(from, to string) error {
	if !ValidStatus(to) {
		return fmt.Errorf("invalid status %q", to)
	}
	if ValidStatus(from) && statusRank[to] < statusRank[from] {
		return fmt.Errorf("cannot move order from %s back to %s", from, to)
	}
	return nil
}

type CartDetailInfo struct {
	ProductName   string         `json:"productName" yaml:"productName" validate:"required"`
	Price         float64        `json:"price" yaml:"price" validate:"gte=0"`
	Quantity      int            `json:"quantity" yaml:"quantity" validate:"gt=0"`
	ProductImages []ProductImage `json:"productImages" yaml:"productImages"`
}

func (d CartDetailInfo) LineTotal() float64 {
	return d.Price * float64(d.Quantity)
}

// CartInfo is an order as tracked by the back office.
type CartInfo struct {
	ID          string           `json:"id" yaml:"id"`
	Status      string           `json:"status" yaml:"status"`
	DateOrder   string           `json:"dateOrder" yaml:"dateOrder"`
	TotalPrice  float64          `json:"totalPrice" yaml:"totalPrice"`
	CartDetails []CartDetailInfo `json:"cartDetails" yaml:"cartDetails" validate:"min=1,dive"`
	UserName    string           `json:"userName" yaml:"userName" validate:"required"`
}

// OrderedAt parses DateOrder.
func (c CartInfo) OrderedAt() (time.Time, error) {
	return time.Parse(OrderDateLayout, c.DateOrder)
}

// DisplayDate renders DateOrder as MM/dd/yyyy.
func (c CartInfo) DisplayDate() string {
	t, err := c.OrderedAt()
	if err != nil {
		return "Unknown Date"
	}
	return t.Format("01/02/2006")
}

// ComputeTotal sums the line items.
func (c CartInfo) ComputeTotal() float64 {
	var total float64
	for _, d := range c.CartDetails {
		total += d.LineTotal()
	}
	return total
}

// SortByDateDesc orders carts newest first; unparseable dates go last.
func SortByDateDesc(carts []CartInfo) {
	sort.SliceStable(carts, func(i, j int) bool {
		ti, erri := carts[i].OrderedAt()
		tj, errj := carts[j].OrderedAt()
		switch {
		case erri != nil:
			return false
		case errj != nil:
			return true
		default:
			return ti.After(tj)
		}
	})
}

// StatusUpdate is the body of UpdateStatusCartInfo.
type StatusUpdate struct {
	ID     string `json:"id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// CartSummary counts orders per status.
type CartSummary struct {
	NewOrders int `json:"newOrders"`
	Delivery  int `json:"delivery"`
	Completed int `json:"completed"`
}

func Summarize(carts []CartInfo) CartSummary {
	var s CartSummary
	for _, c := range carts {
		switch c.Status {
		case StatusNewOrder:
			s.NewOrders++
		case StatusDelivery:
			s.Delivery++
		case StatusCompleted:
			s.Completed++
		}
	}
	return s
}
