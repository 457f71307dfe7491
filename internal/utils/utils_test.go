package utils

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_backoffice/internal/config"
	"shop_backoffice/internal/models"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("changeme123")
	require.NoError(t, err)
	assert.True(t, IsArgon2Hash(hash))

	ok, err := VerifyPassword("changeme123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	other, err := HashPassword("changeme123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)

	_, err = VerifyPassword("x", "plain-text")
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestServiceToken(t *testing.T) {
	token, err := GenerateServiceToken("secret", "console")
	require.NoError(t, err)

	subject, err := ParseServiceToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "console", subject)

	_, err = ParseServiceToken("other", token)
	assert.Error(t, err)

	_, err = GenerateServiceToken("", "console")
	assert.Error(t, err)
}

func TestServiceTokenRejectsForeignIssuerAndExpiry(t *testing.T) {
	sign := func(claims jwt.RegisteredClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		return s
	}
	now := time.Now()

	_, err := ParseServiceToken("secret", sign(jwt.RegisteredClaims{
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}))
	assert.Error(t, err)

	_, err = ParseServiceToken("secret", sign(jwt.RegisteredClaims{
		Issuer:    ServiceTokenIssuer,
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
	}))
	assert.Error(t, err)

	_, err = ParseServiceToken("secret", sign(jwt.RegisteredClaims{Issuer: ServiceTokenIssuer}))
	assert.Error(t, err)
}

func TestOrderQRPNG(t *testing.T) {
	png, err := OrderQRPNG("order-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(png), "\x89PNG"))

	_, err = OrderQRPNG("")
	assert.Error(t, err)
}

func TestStatusEmail(t *testing.T) {
	cart := models.CartInfo{
		ID:        "0123456789abcdef",
		Status:    models.StatusDelivery,
		DateOrder: "15/03/2024 09:30",
		UserName:  "<script>alice</script>",
		CartDetails: []models.CartDetailInfo{
			{ProductName: "Pixel & Case", Price: 10000, Quantity: 2},
		},
		TotalPrice: 20000,
	}

	body := StatusEmailHTML(cart)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;alice")
	assert.Contains(t, body, "Pixel &amp; Case")
	assert.Contains(t, body, "#01234567")
	assert.Contains(t, body, "03/15/2024")
	assert.Contains(t, body, "#3b82f6")

	assert.Equal(t, "📦 Your order is on its way", StatusEmailSubject(models.StatusDelivery))
	assert.Equal(t, "🎉 Your order has been delivered", StatusEmailSubject(models.StatusCompleted))
	assert.Equal(t, "📋 Your order has been updated", StatusEmailSubject(models.StatusNewOrder))
}

func TestMailerDisabled(t *testing.T) {
	m := NewMailer(config.SMTP{})
	assert.Nil(t, m)
	assert.ErrorIs(t, m.Send(context.Background(), "a@b.c", "s", "b"), ErrMailDisabled)
	assert.ErrorIs(t, m.SendOrderStatusEmail(context.Background(), models.CartInfo{}, "a@b.c"), ErrMailDisabled)

	assert.NotNil(t, NewMailer(config.SMTP{Host: "smtp.local", From: "shop@example.com", Port: 25}))
}

func TestNilAuditorIsNoop(t *testing.T) {
	var a *Auditor
	assert.NotPanics(t, func() { a.LogAction(nil, "a", "r", "id") })
}
