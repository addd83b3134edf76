// Package trade implements clinic purchase orders.
package trade

import (
	"context"
	"errors"
	"time"

	"github.com/clinisupply/backend/internal/application/guard"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/partner"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/clinisupply/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// ErrSupplierInactive rejects orders against suppliers that stopped
// accepting them.
var ErrSupplierInactive = shared.NewDomainError("SUPPLIER_INACTIVE", "The supplier is not accepting orders")

// OrderService handles purchase order operations
type OrderService struct {
	orders    trade.OrderRepository
	suppliers partner.SupplierRepository
	guard     *guard.Guard
	now       func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(orders trade.OrderRepository, suppliers partner.SupplierRepository, g *guard.Guard) *OrderService {
	return &OrderService{
		orders:    orders,
		suppliers: suppliers,
		guard:     g,
		now:       time.Now,
	}
}

// Create builds a draft order for the caller's clinic. Order numbers
// are sequential per year across the whole platform.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	supplier, err := s.suppliers.FindByID(ctx, req.SupplierID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SUPPLIER_NOT_FOUND", "The supplier does not exist")
		}
		return nil, err
	}
	if !supplier.IsActive() {
		return nil, ErrSupplierInactive
	}

	year := s.now().Year()
	seq, err := s.orders.CountByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	clinicSeed := uuid.Nil
	if req.ClinicID != nil {
		clinicSeed = *req.ClinicID
	}
	order, err := trade.NewOrder(clinicSeed, req.SupplierID, trade.NewOrderNumber(year, int(seq)+1))
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.ScopeWrite(ctx, isolation.KindOrder, order); err != nil {
		return nil, err
	}

	for _, line := range req.Items {
		if err := order.AddItem(line.ProductID, line.Quantity, line.UnitPrice, line.Discount); err != nil {
			return nil, err
		}
		order.Items[len(order.Items)-1].Notes = line.Notes
	}
	if supplier.MinOrderValue.IsPositive() && order.Total.LessThan(supplier.MinOrderValue) {
		return nil, shared.NewDomainError("BELOW_MIN_ORDER", "Order total is below the supplier's minimum order value")
	}

	order.PaymentMethod = trade.PaymentMethod(req.PaymentMethod)
	order.DeliveryAddress = req.DeliveryAddress
	order.EstimatedDelivery = req.EstimatedDelivery
	order.Notes = req.Notes

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// List returns a page of the clinic's orders
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	f := filter.ToFilter()
	actx, err := s.guard.ScopeRead(ctx, isolation.KindOrder, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.FindAllForClinic(ctx, clinicID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.CountForClinic(ctx, clinicID, f)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToOrderResponse(&orders[i]))
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// GetByID returns one order from the caller's clinic
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*OrderResponse, error) {
	order, err := s.fetch(ctx, id, clinicHint)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Submit moves a draft order to pending
func (s *OrderService) Submit(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, clinicHint, (*trade.Order).Submit)
}

// Cancel cancels an order that has not shipped
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, clinicHint, (*trade.Order).Cancel)
}

func (s *OrderService) transition(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID, op func(*trade.Order) error) (*OrderResponse, error) {
	order, err := s.fetch(ctx, id, clinicHint)
	if err != nil {
		return nil, err
	}
	if err := op(order); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

func (s *OrderService) fetch(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*trade.Order, error) {
	f := shared.DefaultFilter()
	if clinicHint != nil {
		f.Filters[isolation.ClinicFilterKey] = *clinicHint
	}
	actx, err := s.guard.ScopeRead(ctx, isolation.KindOrder, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckOwnership(ctx, isolation.KindOrder, order); err != nil {
		return nil, err
	}
	return order, nil
}
