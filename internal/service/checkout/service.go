package checkout

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stylehub/internal/domain"
	"stylehub/internal/store"
)

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, sessionID, id string) (*domain.Order, error)
	ListBySession(ctx context.Context, sessionID string) ([]domain.Order, error)
}

type catalogLookup interface {
	ProductByID(id string) (domain.Product, bool)
	Variant(productID, sku string) (domain.Variant, bool)
}

// Service turns a session's cart into a persisted order. Placing an order
// snapshots the cart lines and totals, then clears the cart (which also
// releases the applied coupon).
type Service struct {
	repo    orderRepo
	catalog catalogLookup
	now     func() time.Time
}

func New(repo orderRepo, catalog catalogLookup) *Service {
	return &Service{repo: repo, catalog: catalog, now: time.Now}
}

type PlaceInput struct {
	ShippingAddress domain.Address `json:"shippingAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
}

// ValidationError marks input problems the caller can fix.
type ValidationError struct {
	msg string
}

func (e ValidationError) Error() string {
	return e.msg
}

func invalid(msg string) error {
	return ValidationError{msg: msg}
}

func (s *Service) Place(ctx context.Context, sessionID string, st *store.Store, in PlaceInput) (*domain.Order, error) {
	items := st.CartItems()
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if err := validateAddress(in.ShippingAddress); err != nil {
		return nil, err
	}

	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		method = "card"
	}
	switch method {
	case "card", "cod":
	default:
		return nil, invalid("unsupported payment method")
	}

	totals := st.CartTotal()

	var lines []domain.OrderLine
	for _, item := range items {
		variant, ok := s.catalog.Variant(item.ProductID, item.VariantSKU)
		if !ok {
			// Unresolvable lines contribute nothing to the totals,
			// so they are dropped from the order snapshot too.
			continue
		}
		name := item.ProductID
		if p, ok := s.catalog.ProductByID(item.ProductID); ok {
			name = p.Name
		}
		qty := decimal.NewFromInt(int64(item.Quantity))
		lines = append(lines, domain.OrderLine{
			ID:          uuid.NewString(),
			ProductID:   item.ProductID,
			VariantSKU:  item.VariantSKU,
			ProductName: name,
			Color:       item.Color,
			Size:        item.Size,
			Quantity:    item.Quantity,
			UnitPrice:   variant.Price,
			LineTotal:   variant.Price.Mul(qty),
		})
	}

	now := s.now().UTC()
	o := domain.Order{
		ID:              uuid.NewString(),
		Number:          orderNumber(now),
		SessionID:       sessionID,
		Status:          domain.OrderPending,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   method,
		Lines:           lines,
		Subtotal:        totals.Subtotal,
		Discount:        totals.Discount,
		Shipping:        totals.Shipping,
		Total:           totals.Total,
		CouponCode:      st.AppliedCoupon(),
		CreatedAt:       now,
	}

	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, err
	}

	st.ClearCart()
	return created, nil
}

func (s *Service) Get(ctx context.Context, sessionID, orderID string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, sessionID, orderID)
}

func (s *Service) List(ctx context.Context, sessionID string) ([]domain.Order, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

func validateAddress(a domain.Address) error {
	switch {
	case strings.TrimSpace(a.FirstName) == "":
		return invalid("first name is required")
	case strings.TrimSpace(a.LastName) == "":
		return invalid("last name is required")
	case !strings.Contains(a.Email, "@"):
		return invalid("invalid email address")
	case len(digits(a.Phone)) < 10:
		return invalid("phone number must be at least 10 digits")
	case strings.TrimSpace(a.Street) == "":
		return invalid("address is required")
	case strings.TrimSpace(a.City) == "":
		return invalid("city is required")
	case strings.TrimSpace(a.State) == "":
		return invalid("state is required")
	case strings.TrimSpace(a.ZipCode) == "":
		return invalid("zip code is required")
	case strings.TrimSpace(a.Country) == "":
		return invalid("country is required")
	}
	return nil
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// orderNumber mirrors the storefront's format: ORD- plus the epoch
// milliseconds in uppercase base36.
func orderNumber(t time.Time) string {
	return "ORD-" + strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}
