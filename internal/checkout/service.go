package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oskarlind/storefront-backend/internal/cart"
	"github.com/oskarlind/storefront-backend/internal/inventory"
	"github.com/oskarlind/storefront-backend/internal/orders"
	"github.com/oskarlind/storefront-backend/internal/shipping"
	"github.com/oskarlind/storefront-backend/pkg/db"
	"github.com/oskarlind/storefront-backend/pkg/db/models"
	"github.com/oskarlind/storefront-backend/pkg/enums"
	pkgerrors "github.com/oskarlind/storefront-backend/pkg/errors"
	"github.com/oskarlind/storefront-backend/pkg/logger"
	"github.com/oskarlind/storefront-backend/pkg/metrics"
	"github.com/oskarlind/storefront-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartStore interface {
	Get(ctx context.Context, sessionID string) (cart.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type stockGateway interface {
	GetStockBatch(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error
}

// PlaceOrderInput carries everything the shopper submits at checkout.
// The idempotency key is minted client-side so a resubmitted request
// lands on the same order.
type PlaceOrderInput struct {
	IdempotencyKey string
	DeliveryMode   enums.DeliveryMode
	Address        *types.Address
}

// Service executes order placement.
type Service interface {
	PlaceOrder(ctx context.Context, customerID uuid.UUID, sessionID string, input PlaceOrderInput) (*models.Order, error)
}

type service struct {
	tx         txRunner
	carts      cartStore
	stock      stockGateway
	ordersRepo orders.Repository
	rates      shipping.Rates
	pickup     types.Address
	logg       *logger.Logger
	metrics    *metrics.CheckoutMetrics
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	carts cartStore,
	stock stockGateway,
	ordersRepo orders.Repository,
	rates shipping.Rates,
	pickup types.Address,
	logg *logger.Logger,
	checkoutMetrics *metrics.CheckoutMetrics,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock gateway required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:         tx,
		carts:      carts,
		stock:      stock,
		ordersRepo: ordersRepo,
		rates:      rates,
		pickup:     pickup,
		logg:       logg,
		metrics:    checkoutMetrics,
	}, nil
}

func (s *service) PlaceOrder(ctx context.Context, customerID uuid.UUID, sessionID string, input PlaceOrderInput) (*models.Order, error) {
	started := time.Now()
	order, err := s.placeOrder(ctx, customerID, sessionID, input)
	if err != nil {
		// Running out the placement deadline leaves the commit unconfirmed,
		// which is the retryable case, not an internal fault.
		if errors.Is(err, context.DeadlineExceeded) {
			err = pkgerrors.Wrap(pkgerrors.CodeTransaction, err, "placement deadline exceeded")
		}
		reason := string(pkgerrors.As(err).Code())
		s.metrics.IncFailed(reason)
		s.metrics.ObserveDuration(reason, time.Since(started))
		return nil, err
	}
	s.metrics.IncPlaced()
	s.metrics.ObserveDuration("placed", time.Since(started))
	return order, nil
}

func (s *service) placeOrder(ctx context.Context, customerID uuid.UUID, sessionID string, input PlaceOrderInput) (*models.Order, error) {
	if err := validateInput(customerID, sessionID, input); err != nil {
		return nil, err
	}
	address, err := s.resolveAddress(input)
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithSessionID(ctx, sessionID)

	// Replay before touching anything: a key we have already committed
	// under returns the original order.
	if existing, replayErr := s.findExisting(ctx, customerID, input.IdempotencyKey); replayErr != nil {
		return nil, replayErr
	} else if existing != nil {
		s.logg.Info(ctx, "order placement replayed from idempotency key")
		return existing, nil
	}

	current, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	if current.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	// Advisory pass so shoppers get a full shortage report before any
	// write happens. The decrements inside the transaction remain the
	// authoritative check.
	if err := s.verifyStock(ctx, current); err != nil {
		return nil, err
	}

	subtotal := current.Subtotal()
	shippingCost := s.rates.Compute(subtotal, input.DeliveryMode)

	order := buildOrder(customerID, input, address, current, subtotal, shippingCost)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txOrders := s.ordersRepo.WithTx(tx)

		if _, txErr := txOrders.Create(ctx, order); txErr != nil {
			if db.IsUniqueViolation(txErr, "idx_orders_idempotency_key") {
				return pkgerrors.Wrap(pkgerrors.CodeIdempotency, txErr, "idempotency key already committed")
			}
			return pkgerrors.Wrap(pkgerrors.CodeTransaction, txErr, "persist order")
		}

		for _, line := range current.Lines {
			if txErr := s.stock.DecrementStock(ctx, tx, line.ProductID, line.Quantity); txErr != nil {
				// The gateway only knows product IDs; shortage details go
				// back to the shopper carrying the line's name.
				return withLineName(txErr, line.Name)
			}
		}
		return nil
	})
	if err != nil {
		// A concurrent request with the same key won the race; hand back
		// its order instead of failing the retry.
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeIdempotency {
			if existing, replayErr := s.findExisting(ctx, customerID, input.IdempotencyKey); replayErr == nil && existing != nil {
				return existing, nil
			}
		}
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeTransaction, err, "order commit failed")
		}
		return nil, err
	}

	ctx = s.logg.WithOrderID(ctx, order.ID.String())
	s.logg.Info(ctx, "order placed")

	// The order is committed; a stale cart is an inconvenience, not a
	// correctness problem.
	if clearErr := s.carts.Clear(ctx, sessionID); clearErr != nil {
		s.logg.Warn(ctx, "clearing cart after placement failed")
	}

	return order, nil
}

func (s *service) findExisting(ctx context.Context, customerID uuid.UUID, key string) (*models.Order, error) {
	existing, err := s.ordersRepo.FindByIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "idempotency lookup")
	}
	if existing.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key belongs to another customer")
	}
	return existing, nil
}

func (s *service) verifyStock(ctx context.Context, current cart.Cart) error {
	ids := make([]uuid.UUID, 0, len(current.Lines))
	for _, line := range current.Lines {
		ids = append(ids, line.ProductID)
	}

	counts, err := s.stock.GetStockBatch(ctx, ids)
	if err != nil {
		return err
	}

	var gone []inventory.ShortageDetail
	var short []inventory.ShortageDetail
	for _, line := range current.Lines {
		available, ok := counts[line.ProductID]
		if !ok {
			gone = append(gone, inventory.ShortageDetail{
				ProductID: line.ProductID,
				Name:      line.Name,
				Requested: line.Quantity,
			})
			continue
		}
		if available < line.Quantity {
			short = append(short, inventory.ShortageDetail{
				ProductID: line.ProductID,
				Name:      line.Name,
				Requested: line.Quantity,
				Available: available,
			})
		}
	}

	if len(gone) > 0 {
		return pkgerrors.New(pkgerrors.CodeProductGone, "products no longer available").WithDetails(gone)
	}
	if len(short) > 0 {
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, "not enough stock for requested quantities").WithDetails(short)
	}
	return nil
}

func withLineName(err error, name string) error {
	typed := pkgerrors.As(err)
	if typed == nil {
		return err
	}
	if detail, ok := typed.Details().(inventory.ShortageDetail); ok {
		detail.Name = name
		return typed.WithDetails(detail)
	}
	return err
}
