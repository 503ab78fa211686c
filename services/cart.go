package services

import (
	"encoding/json"
	"fmt"

	"github.com/shahzadcollection/storefront-api/models"
	"github.com/shahzadcollection/storefront-api/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartLine is one product variant held in a shopper's cart
type CartLine struct {
	ProductID     uint    `json:"product_id"`
	Name          string  `json:"name"`
	Price         string  `json:"price"`
	Image         string  `json:"image"`
	Quantity      int     `json:"quantity"`
	Category      string  `json:"category"`
	Type          string  `json:"type"`
	SelectedColor *string `json:"selected_color,omitempty"`
	SelectedSize  *string `json:"selected_size,omitempty"`
}

func (l CartLine) matches(productID uint, color, size *string) bool {
	return l.ProductID == productID && sameOption(l.SelectedColor, color) && sameOption(l.SelectedSize, size)
}

// sameOption treats an absent option as its own value: nil only matches nil
func sameOption(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// CartStore is the durable per-client slot holding a cart snapshot
type CartStore interface {
	Load() (string, error)
	Save(snapshot string) error
}

// CartEngine holds one session's cart. It is rehydrated from its store when
// created and writes the full snapshot back after every mutation. A
// CartEngine is not safe for concurrent use.
type CartEngine struct {
	store CartStore
	lines []CartLine
}

// NewCartEngine rehydrates a cart from store. An unreadable snapshot is
// logged and replaced by an empty cart.
func NewCartEngine(store CartStore) *CartEngine {
	e := &CartEngine{store: store}

	snapshot, err := store.Load()
	if err != nil {
		zap.L().Warn("Failed to load cart snapshot, starting empty", zap.Error(err))
		return e
	}
	if snapshot == "" {
		return e
	}

	var lines []CartLine
	if err := json.Unmarshal([]byte(snapshot), &lines); err != nil {
		zap.L().Warn("Discarding corrupt cart snapshot", zap.Error(err))
		return e
	}
	for _, l := range lines {
		if l.Quantity > 0 {
			e.lines = append(e.lines, l)
		}
	}
	return e
}

// AddToCart increments the matching line by one, or appends the item with quantity 1
func (e *CartEngine) AddToCart(item CartLine) error {
	next := e.Items()
	for i := range next {
		if next[i].matches(item.ProductID, item.SelectedColor, item.SelectedSize) {
			next[i].Quantity++
			return e.commit(next)
		}
	}
	item.Quantity = 1
	return e.commit(append(next, item))
}

// RemoveFromCart drops the line with the exact (product, color, size) key
func (e *CartEngine) RemoveFromCart(productID uint, color, size *string) error {
	next := make([]CartLine, 0, len(e.lines))
	for _, l := range e.lines {
		if !l.matches(productID, color, size) {
			next = append(next, l)
		}
	}
	return e.commit(next)
}

// UpdateQuantity sets a line's quantity; zero or less removes the line
func (e *CartEngine) UpdateQuantity(productID uint, quantity int, color, size *string) error {
	if quantity <= 0 {
		return e.RemoveFromCart(productID, color, size)
	}
	next := e.Items()
	for i := range next {
		if next[i].matches(productID, color, size) {
			next[i].Quantity = quantity
		}
	}
	return e.commit(next)
}

// ClearCart empties the cart
func (e *CartEngine) ClearCart() error {
	return e.commit(nil)
}

// Items returns a copy of the cart lines in insertion order
func (e *CartEngine) Items() []CartLine {
	out := make([]CartLine, len(e.lines))
	copy(out, e.lines)
	return out
}

// TotalItems is the sum of quantities across all lines
func (e *CartEngine) TotalItems() int {
	total := 0
	for _, l := range e.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice sums parsed unit price times quantity over all lines.
// Lines with an unparseable price contribute zero.
func (e *CartEngine) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.lines {
		total = total.Add(utils.LineTotal(l.Price, l.Quantity))
	}
	return total
}

// IsEmpty reports whether the cart has no lines
func (e *CartEngine) IsEmpty() bool {
	return len(e.lines) == 0
}

// OrderItems snapshots the cart as order line items
func (e *CartEngine) OrderItems() []models.OrderItem {
	items := make([]models.OrderItem, 0, len(e.lines))
	for _, l := range e.lines {
		items = append(items, models.OrderItem{
			ID:            l.ProductID,
			Name:          l.Name,
			Price:         l.Price,
			Image:         l.Image,
			Quantity:      l.Quantity,
			Category:      l.Category,
			Type:          l.Type,
			SelectedColor: l.SelectedColor,
			SelectedSize:  l.SelectedSize,
		})
	}
	return items
}

// commit persists next and only then makes it the held state, so a failed
// write leaves memory and storage in agreement.
func (e *CartEngine) commit(next []CartLine) error {
	if next == nil {
		next = []CartLine{}
	}
	data, err := json.Marshal(next)
	if err != nil {
		return InternalError("CART_ENCODE_FAILED", fmt.Errorf("encode cart: %w", err))
	}
	if err := e.store.Save(string(data)); err != nil {
		return err
	}
	e.lines = next
	return nil
}
