package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/tijara-next/internal/cache"
	"github.com/tijara-next/internal/constants"
	"github.com/tijara-next/internal/logger"
	"github.com/tijara-next/internal/metrics"
	"github.com/tijara-next/internal/models"
	"github.com/tijara-next/internal/queue"
	"github.com/tijara-next/internal/repository"

	"gorm.io/gorm"
)

// OrderPolicy holds the consolidation knobs.
type OrderPolicy struct {
	// MergeWindow is how far back a repeat submission may reach to
	// fold into an existing open order.
	MergeWindow time.Duration
	// ShippingPolicy is "max" or "sum"; see ComputeTotals.
	ShippingPolicy string
}

// OrderService runs checkout: it matches repeat submissions against
// recent open orders and either merges into the match or creates a
// fresh order, atomically.
type OrderService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	fraud       *FraudChecker
	phoneLock   *cache.PhoneLock
	queueClient *queue.Client
	policy      OrderPolicy
}

// NewOrderService builds an order service.
func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, fraud *FraudChecker, phoneLock *cache.PhoneLock, queueClient *queue.Client, policy OrderPolicy) *OrderService {
	if policy.MergeWindow <= 0 {
		policy.MergeWindow = constants.DefaultMergeWindowHours * time.Hour
	}
	if policy.ShippingPolicy == "" {
		policy.ShippingPolicy = constants.ShippingPolicyMax
	}
	return &OrderService{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		fraud:       fraud,
		phoneLock:   phoneLock,
		queueClient: queueClient,
		policy:      policy,
	}
}

// CustomerInfo is the shipping/contact block of a checkout submission.
type CustomerInfo struct {
	FullName    string
	PhoneNumber string
	Governorate string
	Address     string
	Notes       string
}

// CheckoutItem is one requested product line. Prices are looked up
// from the catalog; the client only chooses product, quantity, color.
type CheckoutItem struct {
	ProductID     uint
	Qty           int
	SelectedColor string
}

// CheckoutInput is a checkout submission.
type CheckoutInput struct {
	Customer CustomerInfo
	UserID   *uint
	ClientIP string
}

// CheckoutResult reports where a submission landed.
type CheckoutResult struct {
	Order  *models.Order
	Merged bool
}

func (in CheckoutInput) validate() error {
	if strings.TrimSpace(in.Customer.FullName) == "" ||
		strings.TrimSpace(in.Customer.PhoneNumber) == "" ||
		strings.TrimSpace(in.Customer.Governorate) == "" ||
		strings.TrimSpace(in.Customer.Address) == "" {
		return ErrOrderCreateFailed
	}
	return nil
}

// CreateQuickOrder places a single-product order straight from a
// product page, merging into a recent open order when one exists.
func (s *OrderService) CreateQuickOrder(ctx context.Context, input CheckoutInput, item CheckoutItem) (*CheckoutResult, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if item.ProductID == 0 || item.Qty <= 0 {
		return nil, ErrInvalidOrderItem
	}
	return s.checkout(ctx, input, []CheckoutItem{item}, nil)
}

// CreateOrder checks out a cart, merging into a recent open order when
// one exists. The cart is cleared in the same transaction that commits
// the order.
func (s *OrderService) CreateOrder(ctx context.Context, input CheckoutInput, sessionCartID string) (*CheckoutResult, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	cart, err := s.cartRepo.GetBySessionID(strings.TrimSpace(sessionCartID))
	if err != nil {
		logger.Errorw("checkout_cart_fetch_failed", "error", err)
		return nil, ErrOrderCreateFailed
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	items := make([]CheckoutItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, CheckoutItem{
			ProductID:     line.ProductID,
			Qty:           line.Qty,
			SelectedColor: line.SelectedColor,
		})
	}
	return s.checkout(ctx, input, items, cart)
}

// checkout is the shared consolidation path. The matcher query and the
// merge/create writes run inside one transaction, and the whole section
// is serialized per phone number, so two near-simultaneous submissions
// from the same phone cannot both create an order.
func (s *OrderService) checkout(ctx context.Context, input CheckoutInput, items []CheckoutItem, cart *models.Cart) (*CheckoutResult, error) {
	merged, err := mergeCheckoutItems(items)
	if err != nil {
		return nil, err
	}

	// Best-effort stock gate before any write. Not a reservation:
	// concurrent checkouts against the same low-stock product can
	// both pass.
	for _, item := range merged {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			logger.Errorw("checkout_product_fetch_failed", "product_id", item.ProductID, "error", err)
			return nil, ErrOrderCreateFailed
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
		if item.Qty > product.Stock {
			return nil, ErrProductOutOfStock
		}
	}

	phone := strings.TrimSpace(input.Customer.PhoneNumber)
	suspicious := false
	if s.fraud != nil {
		suspicious, err = s.fraud.IsSuspicious(input.ClientIP, phone, input.Customer.Governorate)
		if err != nil {
			logger.Errorw("checkout_fraud_check_failed", "error", err)
			return nil, ErrOrderCreateFailed
		}
	}

	if s.phoneLock != nil {
		release, ok, err := s.phoneLock.Acquire(ctx, phone)
		if err != nil {
			logger.Errorw("checkout_phone_lock_failed", "error", err)
			return nil, ErrOrderCreateFailed
		}
		if !ok {
			return nil, ErrCheckoutBusy
		}
		defer release()
	}

	now := time.Now()
	result := &CheckoutResult{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		cutoff := now.Add(-s.policy.MergeWindow)
		candidate, err := orderRepo.FindMergeCandidate(phone, cutoff, constants.MergeOpenStatuses)
		if err != nil {
			return err
		}

		if candidate != nil {
			order, err := s.mergeInto(orderRepo, productRepo, candidate, merged, input, now)
			if err != nil {
				return err
			}
			result.Order = order
			result.Merged = true
		} else {
			order, err := s.createFresh(orderRepo, productRepo, merged, input, suspicious, now)
			if err != nil {
				return err
			}
			result.Order = order
		}

		if cart != nil {
			if err := cartRepo.Clear(cart.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isKnownCheckoutError(err) {
			return nil, err
		}
		logger.Errorw("checkout_failed", "phone_number", phone, "error", err)
		return nil, ErrOrderCreateFailed
	}

	s.publishCheckoutEvent(result)
	return result, nil
}

// mergeInto folds new line items into a matched open order: quantity
// increments on existing (order, product) rows, fresh product snapshots
// for products the order has not seen, then a full recompute of the
// totals from the post-merge rows. The latest submission wins for
// contact info.
func (s *OrderService) mergeInto(orderRepo *repository.GormOrderRepository, productRepo *repository.GormProductRepository, order *models.Order, items []CheckoutItem, input CheckoutInput, now time.Time) (*models.Order, error) {
	for _, item := range items {
		existing, err := orderRepo.GetItem(order.ID, item.ProductID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if err := orderRepo.IncrementItemQty(order.ID, item.ProductID, item.Qty, strings.TrimSpace(item.SelectedColor)); err != nil {
				return nil, err
			}
			continue
		}

		product, err := productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
		row := buildOrderItemSnapshot(order.ID, product, item, now)
		if err := orderRepo.CreateItem(&row); err != nil {
			return nil, err
		}
	}

	// Recompute, never increment: totals always come from a fresh read
	// of the post-merge item rows.
	rows, err := orderRepo.ListItems(order.ID)
	if err != nil {
		return nil, err
	}
	totals := ComputeTotals(orderItemLines(rows), s.policy.ShippingPolicy)

	updates := map[string]interface{}{
		"items_price":    models.NewMoneyFromDecimal(totals.ItemsPrice),
		"shipping_price": models.NewMoneyFromDecimal(totals.ShippingPrice),
		"total_price":    models.NewMoneyFromDecimal(totals.TotalPrice),
		"quantity":       sumQuantities(rows),
		"full_name":      strings.TrimSpace(input.Customer.FullName),
		"governorate":    strings.TrimSpace(input.Customer.Governorate),
		"address":        strings.TrimSpace(input.Customer.Address),
	}
	if order.UserID == nil && input.UserID != nil {
		updates["user_id"] = *input.UserID
	}
	if err := orderRepo.Update(order.ID, updates); err != nil {
		return nil, err
	}

	return orderRepo.GetByID(order.ID)
}

// createFresh creates a new order with one snapshot row per distinct
// product. The fraud flag decides the initial status; it never touches
// existing orders.
func (s *OrderService) createFresh(orderRepo *repository.GormOrderRepository, productRepo *repository.GormProductRepository, items []CheckoutItem, input CheckoutInput, suspicious bool, now time.Time) (*models.Order, error) {
	rows := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		product, err := productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
		rows = append(rows, buildOrderItemSnapshot(0, product, item, now))
	}

	totals := ComputeTotals(orderItemLines(rows), s.policy.ShippingPolicy)
	status := constants.OrderStatusHome
	if suspicious {
		status = constants.OrderStatusBanned
	}

	order := &models.Order{
		OrderNo:       generateOrderNo(),
		FullName:      strings.TrimSpace(input.Customer.FullName),
		PhoneNumber:   strings.TrimSpace(input.Customer.PhoneNumber),
		Governorate:   strings.TrimSpace(input.Customer.Governorate),
		Address:       strings.TrimSpace(input.Customer.Address),
		Notes:         strings.TrimSpace(input.Customer.Notes),
		UserID:        input.UserID,
		ClientIP:      strings.TrimSpace(input.ClientIP),
		ItemsPrice:    models.NewMoneyFromDecimal(totals.ItemsPrice),
		ShippingPrice: models.NewMoneyFromDecimal(totals.ShippingPrice),
		TotalPrice:    models.NewMoneyFromDecimal(totals.TotalPrice),
		Quantity:      sumQuantities(rows),
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := orderRepo.Create(order, rows); err != nil {
		return nil, err
	}
	return orderRepo.GetByID(order.ID)
}

func (s *OrderService) publishCheckoutEvent(result *CheckoutResult) {
	if result == nil || result.Order == nil {
		return
	}
	if result.Merged {
		metrics.OrderMerged()
	} else {
		metrics.OrderCreated()
	}
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	var err error
	if result.Merged {
		err = s.queueClient.EnqueueOrderMerged(queue.OrderMergedPayload{
			OrderID:     result.Order.ID,
			OrderNo:     result.Order.OrderNo,
			PhoneNumber: result.Order.PhoneNumber,
		})
	} else {
		err = s.queueClient.EnqueueOrderCreated(queue.OrderCreatedPayload{
			OrderID:     result.Order.ID,
			OrderNo:     result.Order.OrderNo,
			PhoneNumber: result.Order.PhoneNumber,
			Status:      result.Order.Status,
		})
	}
	if err != nil {
		logger.Warnw("checkout_event_enqueue_failed", "order_id", result.Order.ID, "error", err)
	}
}

func buildOrderItemSnapshot(orderID uint, product *models.Product, item CheckoutItem, now time.Time) models.OrderItem {
	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	return models.OrderItem{
		OrderID:       orderID,
		ProductID:     product.ID,
		Slug:          product.Slug,
		Name:          product.Name,
		Image:         image,
		Price:         product.Price,
		ShippingPrice: product.ShippingPrice,
		CostPrice:     product.CostPrice,
		Qty:           item.Qty,
		SelectedColor: strings.TrimSpace(item.SelectedColor),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// mergeCheckoutItems pre-aggregates duplicate product ids so the
// composite (order, product) key is never violated on insert.
func mergeCheckoutItems(items []CheckoutItem) ([]CheckoutItem, error) {
	if len(items) == 0 {
		return nil, ErrInvalidOrderItem
	}
	merged := make([]CheckoutItem, 0, len(items))
	indexMap := make(map[uint]int)
	for _, item := range items {
		if item.ProductID == 0 || item.Qty <= 0 {
			return nil, ErrInvalidOrderItem
		}
		if idx, ok := indexMap[item.ProductID]; ok {
			merged[idx].Qty += item.Qty
			if color := strings.TrimSpace(item.SelectedColor); color != "" {
				merged[idx].SelectedColor = color
			}
			continue
		}
		indexMap[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}

func isKnownCheckoutError(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrProductOutOfStock) ||
		errors.Is(err, ErrInvalidOrderItem) ||
		errors.Is(err, ErrCartEmpty)
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("TJ%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		fmt.Fprintf(&b, "%d", n.Int64())
	}
	return b.String()
}
