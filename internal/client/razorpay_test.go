package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pixer-marketplace/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	var gotPath, gotUser, gotPass string
	var gotPayload map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(RazorpayOrder{
			ID:       "order_abc123",
			Amount:   3900,
			Currency: "INR",
			Status:   "created",
		})
	}))
	defer srv.Close()

	c := NewRazorpayClient(&config.Razorpay{BaseApiURL: srv.URL})

	order, err := c.CreateOrder(context.Background(), "rzp_key", "rzp_secret", 3900, "INR", "evt-1")
	require.NoError(t, err)

	assert.Equal(t, "/v1/orders", gotPath)
	assert.Equal(t, "rzp_key", gotUser)
	assert.Equal(t, "rzp_secret", gotPass)
	assert.Equal(t, float64(3900), gotPayload["amount"])
	assert.Equal(t, "INR", gotPayload["currency"])
	assert.Equal(t, "evt-1", gotPayload["receipt"])
	assert.Equal(t, float64(1), gotPayload["payment_capture"])

	assert.Equal(t, "order_abc123", order.ID)
	assert.Equal(t, int64(3900), order.Amount)
	assert.Equal(t, "created", order.Status)
}

func TestCreateOrderPropagatesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"description":"Authentication failed"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewRazorpayClient(&config.Razorpay{BaseApiURL: srv.URL})

	_, err := c.CreateOrder(context.Background(), "bad_key", "bad_secret", 100, "INR", "evt-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestVerifyPaymentSignature(t *testing.T) {
	secret := "rzp_secret"
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("order_abc123|pay_xyz789"))
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.NoError(t, VerifyPaymentSignature("order_abc123", "pay_xyz789", valid, secret))

	assert.Error(t, VerifyPaymentSignature("order_abc123", "pay_xyz789", valid, "other_secret"))
	assert.Error(t, VerifyPaymentSignature("order_abc123", "pay_other", valid, secret))
	assert.Error(t, VerifyPaymentSignature("order_abc123", "pay_xyz789", "forged", secret))
}
