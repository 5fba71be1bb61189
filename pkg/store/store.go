package store

import (
	"context"
	"errors"

	"github.com/example/adminshop/pkg/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrCategoryInUse blocks category deletion while products still
	// reference it. The category and its products are left untouched.
	ErrCategoryInUse = errors.New("category has products, delete the products first")
)

// ProductFilter narrows and orders a product listing. Zero value means the
// full catalog, newest first.
type ProductFilter struct {
	Search     string // case-insensitive match over name_uz/name_en/name_ru
	CategoryID string
	Sort       string // "price" ascending, anything else: created_at descending
	Page       int    // 1-based; 0 disables pagination
	PageSize   int
}

// IsZero reports whether the filter selects the unfiltered default listing,
// which is the only product query served from cache.
func (f ProductFilter) IsZero() bool {
	return f.Search == "" && f.CategoryID == "" && f.Sort == "" && f.Page == 0 && f.PageSize == 0
}

// DashboardStats backs the dashboard counters.
type DashboardStats struct {
	Products       int64 `json:"products"`
	Orders         int64 `json:"orders"`
	TodayOrders    int64 `json:"todayOrders"`
	UnreadMessages int64 `json:"unreadMessages"`
}

// Store is the canonical persistence boundary for all four entities.
type Store interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id string) error

	ListOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	CreateOrder(ctx context.Context, o *models.Order) error
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, id string) error

	ListMessages(ctx context.Context) ([]models.ContactMessage, error)
	CreateMessage(ctx context.Context, m *models.ContactMessage) error
	// MarkMessageRead flips an unread message to read. The bool reports
	// whether a write actually happened; a second view is a no-op.
	MarkMessageRead(ctx context.Context, id string) (*models.ContactMessage, bool, error)
	DeleteMessage(ctx context.Context, id string) error

	Stats(ctx context.Context) (*DashboardStats, error)
}
