package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/oskarlind/storefront-backend/pkg/errors"
)

// ProductSnapshot carries the catalog fields captured onto a new line.
type ProductSnapshot struct {
	ID       uuid.UUID
	Name     string
	Brand    string
	Price    int64
	ImageURL string
}

// Notifier receives transient cart events. Implementations must not
// block; the store fires and forgets.
type Notifier interface {
	ItemAdded(ctx context.Context, sessionID string, line Line)
}

// NopNotifier discards every event.
type NopNotifier struct{}

func (NopNotifier) ItemAdded(context.Context, string, Line) {}

// Service owns the session cart state machine. Mutations clamp rather
// than reject (a quantity below 1 becomes 1, absent products are
// no-ops) and every mutation persists the full line list before
// returning.
type Service interface {
	Get(ctx context.Context, sessionID string) (Cart, error)
	AddItem(ctx context.Context, sessionID string, product ProductSnapshot, qty int) (Cart, error)
	DecreaseQuantity(ctx context.Context, sessionID string, productID uuid.UUID) (Cart, error)
	RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	storage Storage
	notify  Notifier
}

// NewService builds a cart service backed by the provided storage.
func NewService(storage Storage, notify Notifier) (Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if notify == nil {
		notify = NopNotifier{}
	}
	return &service{storage: storage, notify: notify}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (Cart, error) {
	return s.load(ctx, sessionID)
}

func (s *service) AddItem(ctx context.Context, sessionID string, product ProductSnapshot, qty int) (Cart, error) {
	if product.ID == uuid.Nil {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if qty < 1 {
		qty = 1
	}

	current, err := s.load(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}

	var added Line
	if idx := current.lineIndex(product.ID); idx >= 0 {
		current.Lines[idx].Quantity += qty
		added = current.Lines[idx]
	} else {
		added = Line{
			ProductID: product.ID,
			Name:      product.Name,
			Brand:     product.Brand,
			UnitPrice: product.Price,
			Quantity:  qty,
			ImageURL:  product.ImageURL,
		}
		current.Lines = append(current.Lines, added)
	}

	if err := s.persist(ctx, current); err != nil {
		return Cart{}, err
	}
	s.notify.ItemAdded(ctx, sessionID, added)
	return current, nil
}

func (s *service) DecreaseQuantity(ctx context.Context, sessionID string, productID uuid.UUID) (Cart, error) {
	current, err := s.load(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}

	idx := current.lineIndex(productID)
	if idx < 0 {
		return current, nil
	}
	if current.Lines[idx].Quantity > 1 {
		current.Lines[idx].Quantity--
	}

	if err := s.persist(ctx, current); err != nil {
		return Cart{}, err
	}
	return current, nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (Cart, error) {
	current, err := s.load(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}

	idx := current.lineIndex(productID)
	if idx < 0 {
		return current, nil
	}
	current.Lines = append(current.Lines[:idx], current.Lines[idx+1:]...)

	if err := s.persist(ctx, current); err != nil {
		return Cart{}, err
	}
	return current, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}

func (s *service) load(ctx context.Context, sessionID string) (Cart, error) {
	if err := validateSessionID(sessionID); err != nil {
		return Cart{}, err
	}
	lines, err := s.storage.Load(ctx, sessionID)
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	return Cart{SessionID: sessionID, Lines: lines}, nil
}

func (s *service) persist(ctx context.Context, c Cart) error {
	if err := s.storage.Save(ctx, c.SessionID, c.Lines); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist cart")
	}
	return nil
}

func validateSessionID(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}
