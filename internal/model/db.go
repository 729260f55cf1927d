package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type SubscriptionPlanName string

const (
	PlanNone     SubscriptionPlanName = "none"
	PlanStandard SubscriptionPlanName = "standard"
	PlanPremium  SubscriptionPlanName = "premium"
)

type Product struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Author      string          `gorm:"size:255" json:"author"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string          `gorm:"size:512" json:"image"`
	Category    string          `gorm:"size:64;index" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	DownloadURL string          `gorm:"size:512" json:"download_url"`
	IsNew       bool            `json:"is_new"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Profile is the app-side user record backing auth claims.
type Profile struct {
	ID                string               `gorm:"primaryKey;size:64" json:"id"`
	Email             string               `gorm:"size:255;index" json:"email"`
	FullName          string               `gorm:"size:255" json:"full_name"`
	Username          string               `gorm:"size:64" json:"username"`
	Role              string               `gorm:"size:16;not null;default:user" json:"role"` // admin, user
	SubscriptionPlan  SubscriptionPlanName `gorm:"size:16;not null;default:none" json:"subscription_plan"`
	HasMadeFirstOrder bool                 `gorm:"not null;default:false" json:"has_made_first_order"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

func (p *Profile) Subscribed() bool {
	return p.SubscriptionPlan != "" && p.SubscriptionPlan != PlanNone
}

// AcquiredProduct records that a user obtained rights to a product.
// Quantity is not modeled here; repeated purchases are independent rows.
type AcquiredProduct struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	UserID     string    `gorm:"size:64;index;not null" json:"user_id"`
	ProductID  int64     `gorm:"index;not null" json:"product_id"`
	AcquiredAt time.Time `gorm:"not null" json:"acquired_at"`
}

type Gift struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	UserID      string    `gorm:"size:64;index;not null" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"size:512" json:"image"`
	ReceivedAt  time.Time `gorm:"not null" json:"received_at"`
}

type Order struct {
	ID              string          `gorm:"primaryKey;size:64" json:"id"`
	UserID          string          `gorm:"size:64;index;not null" json:"user_id"`
	PurchaseEventID string          `gorm:"size:64;uniqueIndex" json:"purchase_event_id"`
	Gateway         string          `gorm:"size:32" json:"gateway"` // empty for subscriber zero-cost orders
	Total           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Currency        string          `gorm:"size:8;not null" json:"currency"`
	Status          string          `gorm:"size:32;index;not null" json:"status"` // COMPLETED, FAILED
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   string          `gorm:"size:64;index;not null" json:"order_id"`
	ProductID int64           `gorm:"index;not null" json:"product_id"`
	Title     string          `gorm:"size:255" json:"title"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
}

// PaymentGateway is the operator-managed gateway registry. Secrets live
// here, never in checkout state.
type PaymentGateway struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:32;uniqueIndex;not null" json:"name"`
	IsEnabled  bool      `gorm:"not null;default:false" json:"is_enabled"`
	KeyID      string    `gorm:"size:128" json:"-"`
	KeySecret  string    `gorm:"size:128" json:"-"`
	MerchantID string    `gorm:"size:128" json:"-"`
	SaltKey    string    `gorm:"size:128" json:"-"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type SubscriptionPlan struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:32;uniqueIndex;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	Features    string          `gorm:"type:text" json:"features"` // newline separated
	Popular     bool            `json:"popular"`
}
