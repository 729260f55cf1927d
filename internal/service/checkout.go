package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pixer-marketplace/internal/cart"
	"pixer-marketplace/internal/checkout"
	"pixer-marketplace/internal/client"
	"pixer-marketplace/internal/config"
	"pixer-marketplace/internal/dto"
	"pixer-marketplace/internal/model"
	"pixer-marketplace/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotAtConfirm         = errors.New("checkout is not at the confirmation step")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrGatewayNotConfigured = errors.New("payment gateway is not configured")
	ErrGatewayUnavailable   = errors.New("payment gateway is not yet available")
	ErrMissingPaymentNonce  = errors.New("missing payment nonce")
	ErrPurchaseNotPending   = errors.New("no matching pending purchase")
	ErrAlreadyCompleting    = errors.New("purchase is already being processed")
	ErrInvalidSignature     = errors.New("invalid payment signature")
)

// PaymentError is a declined or failed external collection. The session
// stays on Confirm and the cart is untouched; the user may retry.
type PaymentError struct {
	Reason string
}

func (e *PaymentError) Error() string {
	return "payment failed: " + e.Reason
}

// WelcomeGift is granted once per account, on the first completed order.
var WelcomeGift = dto.GiftView{
	Name:        "Exclusive Icon Pack",
	Description: "A set of 100 premium, handcrafted icons for your next project.",
	Image:       "https://picsum.photos/seed/gift1/200/200",
}

type CheckoutService interface {
	Open(ctx context.Context, userID string) (*dto.SessionView, error)
	View(ctx context.Context, userID string) (*dto.SessionView, error)
	SelectGateway(ctx context.Context, userID, gateway string) (*dto.SessionView, error)
	Advance(ctx context.Context, userID string) (*dto.SessionView, error)
	Back(ctx context.Context, userID string) (*dto.SessionView, error)
	Complete(ctx context.Context, userID string, req *dto.CompleteRequest) (*dto.CompleteResult, error)
	ConfirmPayment(ctx context.Context, userID string, cb *dto.PaymentCallback) (*dto.CompleteResult, error)
	AcknowledgeGift(ctx context.Context, userID string) (*dto.SessionView, error)
	Close(ctx context.Context, userID string) error
}

// pendingPurchase is an in-flight razorpay collection waiting for its
// success or failure callback. Exactly one callback may consume it.
type pendingPurchase struct {
	eventID         string
	providerOrderID string
	keySecret       string
	snapshot        cart.Snapshot
	subtotal        decimal.Decimal
	timer           *time.Timer
}

type sessionState struct {
	mu         sync.Mutex
	sess       *checkout.Session
	pending    *pendingPurchase
	completing bool
	autoClose  *time.Timer
	reset      *time.Timer
}

type checkoutServiceImpl struct {
	db        *gorm.DB
	cfg       config.Checkout
	siteName  string
	carts     *cart.Manager
	razorpay  client.RazorpayClient
	braintree client.BraintreeClient

	profileRepo     repository.ProfileRepository
	acquisitionRepo repository.AcquisitionRepository
	giftRepo        repository.GiftRepository
	orderRepo       repository.OrderRepository
	gatewayRepo     repository.GatewayRepository

	logger zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*sessionState
}

func NewCheckoutService(
	db *gorm.DB,
	cfg config.Checkout,
	siteName string,
	carts *cart.Manager,
	razorpay client.RazorpayClient,
	braintree client.BraintreeClient,
	profileRepo repository.ProfileRepository,
	acquisitionRepo repository.AcquisitionRepository,
	giftRepo repository.GiftRepository,
	orderRepo repository.OrderRepository,
	gatewayRepo repository.GatewayRepository,
	logger zerolog.Logger,
) CheckoutService {
	if siteName == "" {
		siteName = "Pixer Marketplace"
	}
	return &checkoutServiceImpl{
		db:              db,
		cfg:             cfg,
		siteName:        siteName,
		carts:           carts,
		razorpay:        razorpay,
		braintree:       braintree,
		profileRepo:     profileRepo,
		acquisitionRepo: acquisitionRepo,
		giftRepo:        giftRepo,
		orderRepo:       orderRepo,
		gatewayRepo:     gatewayRepo,
		logger:          logger.With().Str("component", "checkout").Logger(),
		sessions:        make(map[string]*sessionState),
	}
}

func (s *checkoutServiceImpl) Open(ctx context.Context, userID string) (*dto.SessionView, error) {
	if userID == "" {
		// Unauthenticated: no steps are reachable, the UI shows an auth
		// prompt instead.
		return &dto.SessionView{AuthRequired: true, Steps: []string{}}, nil
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	st := s.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	// Reuse a session that is mid-flight; otherwise start fresh so the
	// step sequence reflects the current subscription status.
	if st.sess == nil || (st.pending == nil && !st.completing && !st.sess.Completed() && !st.sess.GiftPending()) {
		st.sess = checkout.NewSession(user)
	}

	return s.viewLocked(userID, st), nil
}

func (s *checkoutServiceImpl) View(ctx context.Context, userID string) (*dto.SessionView, error) {
	st, err := s.openedState(userID)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return s.viewLocked(userID, st), nil
}

func (s *checkoutServiceImpl) SelectGateway(ctx context.Context, userID, gateway string) (*dto.SessionView, error) {
	st, err := s.openedState(userID)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := st.sess.SelectGateway(gateway); err != nil {
		return nil, err
	}
	return s.viewLocked(userID, st), nil
}

func (s *checkoutServiceImpl) Advance(ctx context.Context, userID string) (*dto.SessionView, error) {
	st, err := s.openedState(userID)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := st.sess.Advance(); err != nil {
		return nil, err
	}
	return s.viewLocked(userID, st), nil
}

func (s *checkoutServiceImpl) Back(ctx context.Context, userID string) (*dto.SessionView, error) {
	st, err := s.openedState(userID)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	st.sess.Back()
	return s.viewLocked(userID, st), nil
}

// Complete is only valid on the terminal step. Subscribers complete with no
// external call; card charges settle synchronously; razorpay leaves a
// pending purchase that the payment callback resolves.
func (s *checkoutServiceImpl) Complete(ctx context.Context, userID string, req *dto.CompleteRequest) (*dto.CompleteResult, error) {
	st, err := s.openedState(userID)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	if !st.sess.AtConfirm() {
		return nil, ErrNotAtConfirm
	}
	if st.completing || st.pending != nil {
		return nil, ErrAlreadyCompleting
	}

	user := st.sess.User()
	snapshot := s.carts.For(userID).Snapshot()
	if snapshot.Empty() {
		return nil, ErrEmptyCart
	}

	if user.Subscribed {
		return s.finalize(ctx, userID, st, uuid.NewString(), "", snapshot)
	}

	gatewayName := st.sess.Gateway()
	if gatewayName == "" {
		return nil, checkout.ErrNoGatewaySelected
	}

	row, err := s.gatewayRepo.FindByName(ctx, gatewayName)
	if err != nil {
		return nil, ErrGatewayNotConfigured
	}

	switch gatewayName {
	case "razorpay":
		return s.startRazorpayCollection(ctx, userID, st, row, snapshot)
	case "card":
		return s.chargeCard(ctx, userID, st, row, req, snapshot)
	case "phonepe":
		return nil, ErrGatewayUnavailable
	default:
		return nil, ErrGatewayNotConfigured
	}
}

func (s *checkoutServiceImpl) startRazorpayCollection(ctx context.Context, userID string, st *sessionState, row *model.PaymentGateway, snapshot cart.Snapshot) (*dto.CompleteResult, error) {
	// Misconfiguration is a blocking condition detected before any
	// external call.
	if !row.IsEnabled || row.KeyID == "" || row.KeySecret == "" {
		return nil, ErrGatewayNotConfigured
	}

	user := st.sess.User()
	subtotal := snapshot.Subtotal(false)
	paise := subtotal.Mul(decimal.NewFromInt(100)).IntPart()
	eventID := uuid.NewString()

	order, err := s.razorpay.CreateOrder(ctx, row.KeyID, row.KeySecret, paise, "INR", eventID)
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}

	pending := &pendingPurchase{
		eventID:         eventID,
		providerOrderID: order.ID,
		keySecret:       row.KeySecret,
		snapshot:        snapshot,
		subtotal:        subtotal,
	}
	pending.timer = time.AfterFunc(s.cfg.PaymentTimeout, func() {
		s.expirePending(userID, eventID)
	})
	st.pending = pending

	prefillName := user.FullName
	if prefillName == "" {
		prefillName = user.Email
	}

	return &dto.CompleteResult{
		Status: "pending",
		Payment: &dto.RazorpayCheckout{
			KeyID:           row.KeyID,
			OrderID:         order.ID,
			Amount:          paise,
			Currency:        "INR",
			Name:            s.siteName,
			Description:     "Digital Product Purchase",
			PrefillName:     prefillName,
			PrefillEmail:    user.Email,
			PurchaseEventID: eventID,
		},
	}, nil
}

func (s *checkoutServiceImpl) chargeCard(ctx context.Context, userID string, st *sessionState, row *model.PaymentGateway, req *dto.CompleteRequest, snapshot cart.Snapshot) (*dto.CompleteResult, error) {
	if !row.IsEnabled || row.MerchantID == "" {
		return nil, ErrGatewayNotConfigured
	}
	if req == nil || req.PaymentNonce == "" {
		return nil, ErrMissingPaymentNonce
	}

	subtotal := snapshot.Subtotal(false)
	txID, err := s.braintree.ChargeOneTime(ctx, req.PaymentNonce, subtotal.StringFixed(2))
	if err != nil {
		return nil, &PaymentError{Reason: err.Error()}
	}

	s.logger.Info().Str("user_id", userID).Str("transaction_id", txID).Msg("card charge settled")
	return s.finalize(ctx, userID, st, uuid.NewString(), "card", snapshot)
}

// ConfirmPayment resolves the pending razorpay purchase. Each pending
// purchase is consumed exactly once; duplicate, late or unknown callbacks
// are rejected without touching state.
func (s *checkoutServiceImpl) ConfirmPayment(ctx context.Context, userID string, cb *dto.PaymentCallback) (*dto.CompleteResult, error) {
	st, err := s.openedState(userID)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	pending := st.pending
	if pending == nil || pending.providerOrderID != cb.RazorpayOrderID {
		return nil, ErrPurchaseNotPending
	}

	if cb.Failed {
		pending.timer.Stop()
		st.pending = nil
		s.logger.Warn().Str("user_id", userID).Str("reason", cb.FailureReason).Msg("payment collection failed")
		return nil, &PaymentError{Reason: cb.FailureReason}
	}

	if err := client.VerifyPaymentSignature(cb.RazorpayOrderID, cb.RazorpayPaymentID, cb.RazorpaySignature, pending.keySecret); err != nil {
		// Leave the pending purchase in place; a forged callback must not
		// consume the real one.
		return nil, ErrInvalidSignature
	}

	pending.timer.Stop()
	st.pending = nil

	return s.finalize(ctx, userID, st, pending.eventID, "razorpay", pending.snapshot)
}

// finalize is the post-purchase coordinator: grant acquisitions, award the
// first-order gift at most once, record the order, clear the cart last.
// The returned result renders from the snapshot captured before clearing.
func (s *checkoutServiceImpl) finalize(ctx context.Context, userID string, st *sessionState, eventID, gatewayName string, snapshot cart.Snapshot) (*dto.CompleteResult, error) {
	if st.completing {
		return nil, ErrAlreadyCompleting
	}
	st.completing = true
	defer func() { st.completing = false }()

	user := st.sess.User()
	firstOrder := !user.HasMadeFirstOrder
	subtotal := snapshot.Subtotal(user.Subscribed)
	now := time.Now()

	// One acquisition row per unit; quantity is not modeled on the record.
	var acquisitions []*model.AcquiredProduct
	for _, item := range snapshot.Items {
		for i := 0; i < item.Quantity; i++ {
			acquisitions = append(acquisitions, &model.AcquiredProduct{
				ID:         uuid.NewString(),
				UserID:     userID,
				ProductID:  item.ID,
				AcquiredAt: now,
			})
		}
	}

	order := &model.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		PurchaseEventID: eventID,
		Gateway:         gatewayName,
		Total:           subtotal,
		Currency:        "INR",
		Status:          "COMPLETED",
	}
	var orderItems []*model.OrderItem
	for _, item := range snapshot.Items {
		orderItems = append(orderItems, &model.OrderItem{
			OrderID:   order.ID,
			ProductID: item.ID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}

	gift := &model.Gift{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        WelcomeGift.Name,
		Description: WelcomeGift.Description,
		Image:       WelcomeGift.Image,
		ReceivedAt:  now,
	}

	var warnings []string
	if s.cfg.GrantPolicy == "sequential" {
		warnings = s.grantSequential(ctx, userID, firstOrder, acquisitions, gift, order, orderItems)
	} else {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.acquisitionRepo.CreateMany(ctx, tx, acquisitions); err != nil {
				return fmt.Errorf("grant acquired products: %w", err)
			}
			if firstOrder {
				if err := s.giftRepo.Create(ctx, tx, gift); err != nil {
					return fmt.Errorf("award welcome gift: %w", err)
				}
				if err := s.profileRepo.SetFirstOrderFlag(ctx, tx, userID); err != nil {
					return fmt.Errorf("set first order flag: %w", err)
				}
			}
			if err := s.orderRepo.Create(ctx, tx, order); err != nil {
				return fmt.Errorf("record order: %w", err)
			}
			if err := s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
				return fmt.Errorf("record order items: %w", err)
			}
			return nil
		})
		if err != nil {
			// Atomic policy: nothing was written, keep the cart so the
			// user can retry.
			return nil, err
		}
	}

	// Cart clearing always runs last, after the snapshot was captured.
	s.carts.For(userID).Clear()
	user.HasMadeFirstOrder = true
	st.sess.MarkComplete(firstOrder)

	if firstOrder {
		s.logger.Info().Str("user_id", userID).Str("order_id", order.ID).Msg("first order completed, welcome gift awarded")
	} else {
		s.scheduleAutoCloseLocked(userID, st)
	}

	result := &dto.CompleteResult{
		Status:           "completed",
		GiftInterstitial: firstOrder,
		Items:            itemViews(snapshot),
		Subtotal:         subtotal.StringFixed(2),
		Warnings:         warnings,
	}
	if firstOrder {
		giftView := WelcomeGift
		result.Gift = &giftView
	}
	return result, nil
}

// grantSequential runs the write sequence best effort. Observed behavior of
// the product swallowed these failures; here they are logged and surfaced
// as warnings on the completion result.
func (s *checkoutServiceImpl) grantSequential(ctx context.Context, userID string, firstOrder bool, acquisitions []*model.AcquiredProduct, gift *model.Gift, order *model.Order, orderItems []*model.OrderItem) []string {
	var warnings []string
	warn := func(err error, what string) {
		s.logger.Error().Err(err).Str("user_id", userID).Msg(what)
		warnings = append(warnings, what)
	}

	if err := s.acquisitionRepo.CreateMany(ctx, s.db, acquisitions); err != nil {
		warn(err, "failed to grant acquired products")
	}
	if firstOrder {
		if err := s.giftRepo.Create(ctx, s.db, gift); err != nil {
			warn(err, "failed to award welcome gift")
		}
		if err := s.profileRepo.SetFirstOrderFlag(ctx, s.db, userID); err != nil {
			warn(err, "failed to set first order flag")
		}
	}
	if err := s.orderRepo.Create(ctx, s.db, order); err != nil {
		warn(err, "failed to record order")
	} else if err := s.orderRepo.CreateOrderItems(ctx, s.db, orderItems); err != nil {
		warn(err, "failed to record order items")
	}
	return warnings
}

func (s *checkoutServiceImpl) AcknowledgeGift(ctx context.Context, userID string) (*dto.SessionView, error) {
	st, err := s.openedState(userID)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	st.sess.AcknowledgeGift()
	if st.sess.Completed() {
		s.scheduleAutoCloseLocked(userID, st)
	}
	return s.viewLocked(userID, st), nil
}

// Close hides the checkout and resets the session after a short grace
// period, so an in-flight closing animation is not interrupted. After the
// reset the session is indistinguishable from a fresh one.
func (s *checkoutServiceImpl) Close(ctx context.Context, userID string) error {
	st, err := s.openedState(userID)
	if err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.autoClose != nil {
		st.autoClose.Stop()
		st.autoClose = nil
	}
	if st.reset != nil {
		st.reset.Stop()
	}
	st.reset = time.AfterFunc(s.cfg.ResetGraceDelay, func() {
		s.resetSession(userID)
	})
	return nil
}

func (s *checkoutServiceImpl) resetSession(userID string) {
	s.mu.Lock()
	st, ok := s.sessions[userID]
	s.mu.Unlock()
	if !ok {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.pending != nil {
		// A stale success callback must not mutate reset state.
		st.pending.timer.Stop()
		st.pending = nil
	}
	if st.sess != nil {
		st.sess.Reset()
	}
	st.reset = nil
}

func (s *checkoutServiceImpl) expirePending(userID, eventID string) {
	s.mu.Lock()
	st, ok := s.sessions[userID]
	s.mu.Unlock()
	if !ok {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.pending != nil && st.pending.eventID == eventID {
		st.pending = nil
		s.logger.Warn().Str("user_id", userID).Str("purchase_event_id", eventID).Msg("payment collection timed out")
	}
}

func (s *checkoutServiceImpl) scheduleAutoCloseLocked(userID string, st *sessionState) {
	if st.autoClose != nil {
		st.autoClose.Stop()
	}
	st.autoClose = time.AfterFunc(s.cfg.AutoCloseDelay, func() {
		_ = s.Close(context.Background(), userID)
	})
}

func (s *checkoutServiceImpl) loadUser(ctx context.Context, userID string) (*checkout.User, error) {
	profile, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &checkout.User{
		ID:                profile.ID,
		Email:             profile.Email,
		FullName:          profile.FullName,
		Subscribed:        profile.Subscribed(),
		HasMadeFirstOrder: profile.HasMadeFirstOrder,
	}, nil
}

func (s *checkoutServiceImpl) state(userID string) *sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[userID]
	if !ok {
		st = &sessionState{}
		s.sessions[userID] = st
	}
	return st
}

// openedState returns the session state for a user who has already opened
// checkout; the handlers treat the error as a validation refusal.
func (s *checkoutServiceImpl) openedState(userID string) (*sessionState, error) {
	if userID == "" {
		return nil, checkout.ErrAuthRequired
	}
	s.mu.Lock()
	st, ok := s.sessions[userID]
	s.mu.Unlock()
	if !ok || st.sess == nil {
		return nil, fmt.Errorf("checkout session not opened")
	}
	return st, nil
}

func (s *checkoutServiceImpl) viewLocked(userID string, st *sessionState) *dto.SessionView {
	sess := st.sess
	user := sess.User()
	snapshot := s.carts.For(userID).Snapshot()

	steps := make([]string, 0, len(sess.Steps()))
	for _, step := range sess.Steps() {
		steps = append(steps, string(step))
	}

	view := &dto.SessionView{
		Steps:       steps,
		StepIndex:   sess.StepIndex(),
		Gateway:     sess.Gateway(),
		Completed:   sess.Completed(),
		GiftPending: sess.GiftPending(),
		Items:       itemViews(snapshot),
		Subtotal:    snapshot.Subtotal(user.Subscribed).StringFixed(2),
	}
	if current, ok := sess.Current(); ok {
		view.CurrentStep = string(current)
	}
	return view
}

func itemViews(snapshot cart.Snapshot) []dto.CartItemView {
	views := make([]dto.CartItemView, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		views = append(views, dto.CartItemView{
			ProductID: item.ID,
			Title:     item.Title,
			Image:     item.Image,
			UnitPrice: item.Price.StringFixed(2),
			Quantity:  item.Quantity,
		})
	}
	return views
}
