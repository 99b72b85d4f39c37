package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bunaihills/shop-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type ordersRepo struct {
	base
}

func NewOrdersRepo(db *sqlx.DB) *ordersRepo {
	return &ordersRepo{base: newBase(db)}
}

func (r *ordersRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns("id", "total_amount", "payment_method", "order_status", "created_at", "updated_at").
		Values(o.ID, o.TotalAmount, o.PaymentMethod, string(o.Status), o.CreatedAt, o.UpdatedAt).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *ordersRepo) SaveCustomerInfo(ctx context.Context, orderID string, c entities.CustomerInfo) error {
	query, args := r.qb.Insert("order_customers").
		Columns("order_id", "full_name", "email", "phone", "address", "city", "state", "pincode").
		Values(orderID, c.FullName, c.Email, c.Phone, c.Address, c.City, c.State, c.Pincode).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save customer info: %w", err)
	}
	return nil
}

func (r *ordersRepo) SaveItems(ctx context.Context, orderID string, items []json.RawMessage) error {
	if len(items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").Columns("order_id", "position", "payload")
	for i, it := range items {
		q = q.Values(orderID, i, []byte(it))
	}

	query, args := q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}
	return nil
}

func (r *ordersRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	query, args := r.qb.Select("id", "total_amount", "payment_method", "order_status", "created_at", "updated_at").
		From("orders").
		Where(sq.Eq{"id": orderID}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	query, args = r.qb.Select("order_id", "full_name", "email", "phone", "address", "city", "state", "pincode").
		From("order_customers").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	var customer Customer
	if err := r.getContext(ctx, &customer, query, args...); err != nil {
		return entities.Order{}, fmt.Errorf("failed to get customer info: %w", err)
	}

	query, args = r.qb.Select("order_id", "position", "payload").
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("position ASC").
		MustSql()

	var items []Item
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return entities.Order{}, fmt.Errorf("failed to get items: %w", err)
	}

	return OrderToEntity(order, customer, items), nil
}

// ListOrders returns every order, newest first.
func (r *ordersRepo) ListOrders(ctx context.Context) ([]entities.Order, error) {
	query, args := r.qb.Select("id", "total_amount", "payment_method", "order_status", "created_at", "updated_at").
		From("orders").
		OrderBy("created_at DESC").
		MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	query, args = r.qb.Select("order_id", "full_name", "email", "phone", "address", "city", "state", "pincode").
		From("order_customers").
		Where(sq.Eq{"order_id": ids}).
		MustSql()

	var customers []Customer
	if err := r.selectContext(ctx, &customers, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select customer info: %w", err)
	}
	customerMap := make(map[string]Customer, len(customers))
	for _, c := range customers {
		customerMap[c.OrderID] = c
	}

	query, args = r.qb.Select("order_id", "position", "payload").
		From("order_items").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("position ASC").
		MustSql()

	var items []Item
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	itemsMap := make(map[string][]Item, len(ids))
	for _, it := range items {
		itemsMap[it.OrderID] = append(itemsMap[it.OrderID], it)
	}

	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o, customerMap[o.ID], itemsMap[o.ID]))
	}

	return result, nil
}

// UpdateOrderStatus writes only the status and updated_at columns.
// Taking a status value instead of a patch keeps callers from
// clobbering immutable fields.
func (r *ordersRepo) UpdateOrderStatus(ctx context.Context, orderID string, status entities.OrderStatus) (entities.Order, error) {
	query, args := r.qb.Update("orders").
		Set("order_status", string(status)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": orderID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to update order status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entities.Order{}, entities.ErrOrderNotFound
	}

	return r.GetOrderByID(ctx, orderID)
}
