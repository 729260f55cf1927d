package dto

type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type SelectGatewayRequest struct {
	Gateway string `json:"gateway"`
}

// CompleteRequest carries the card nonce for the braintree gateway; the
// razorpay flow needs no body here.
type CompleteRequest struct {
	PaymentNonce string `json:"payment_nonce,omitempty"`
}

// PaymentCallback is the outcome of the external razorpay collection flow,
// relayed by the frontend handler.
type PaymentCallback struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	Failed            bool   `json:"failed,omitempty"`
	FailureReason     string `json:"failure_reason,omitempty"`
}

type CartItemView struct {
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type CartView struct {
	Items    []CartItemView `json:"items"`
	Subtotal string         `json:"subtotal"`
}

type SessionView struct {
	AuthRequired bool           `json:"auth_required"`
	Steps        []string       `json:"steps"`
	StepIndex    int            `json:"step_index"`
	CurrentStep  string         `json:"current_step,omitempty"`
	Gateway      string         `json:"gateway,omitempty"`
	Completed    bool           `json:"completed"`
	GiftPending  bool           `json:"gift_pending"`
	Items        []CartItemView `json:"items"`
	Subtotal     string         `json:"subtotal"`
}

// RazorpayCheckout is what the frontend needs to open the external
// collection flow. Amount is in paise.
type RazorpayCheckout struct {
	KeyID           string `json:"key_id"`
	OrderID         string `json:"order_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	PrefillName     string `json:"prefill_name,omitempty"`
	PrefillEmail    string `json:"prefill_email,omitempty"`
	PurchaseEventID string `json:"purchase_event_id"`
}

type GiftView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// CompleteResult reflects the outcome of Complete or a payment callback.
// Items and Subtotal are captured before the cart is cleared, so the
// success and gift screens never render from an emptied cart.
type CompleteResult struct {
	Status           string            `json:"status"` // pending, completed
	Payment          *RazorpayCheckout `json:"payment,omitempty"`
	GiftInterstitial bool              `json:"gift_interstitial"`
	Gift             *GiftView         `json:"gift,omitempty"`
	Items            []CartItemView    `json:"items,omitempty"`
	Subtotal         string            `json:"subtotal,omitempty"`
	Warnings         []string          `json:"warnings,omitempty"`
}

type ProfileView struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	FullName          string `json:"full_name"`
	Username          string `json:"username"`
	Role              string `json:"role"`
	SubscriptionPlan  string `json:"subscription_plan"`
	HasMadeFirstOrder bool   `json:"has_made_first_order"`
}
