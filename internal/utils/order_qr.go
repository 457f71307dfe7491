package utils

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const OrderQRSize = 256

// OrderQRPNG encodes an order reference for packing slips.
func OrderQRPNG(orderID string) ([]byte, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order id is empty")
	}
	png, err := qrcode.Encode("ORDER:"+orderID, qrcode.Medium, OrderQRSize)
	if err != nil {
		return nil, fmt.Errorf("encode order qr: %w", err)
	}
	return png, nil
}
