package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/adminshop/pkg/config"
	"github.com/example/adminshop/pkg/models"
	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// MySQLStore is the server-backed source of truth. All reads that the cache
// cannot answer land here.
type MySQLStore struct {
	db *gorm.DB
}

func NewMySQLStore(cfg *config.MySQLConfig) (*MySQLStore, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql.DB: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Category{},
		&models.Order{},
		&models.ContactMessage{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return &MySQLStore{db: db}, nil
}

// Seed inserts the two demo categories when the table is empty, so a fresh
// install renders a non-empty category picker.
func (s *MySQLStore) Seed(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	demo := []models.Category{
		{ID: "1", NameUz: "Elektronika", NameEn: "Electronics", NameRu: "Электроника", CreatedAt: now},
		{ID: "2", NameUz: "Kiyim", NameEn: "Clothing", NameRu: "Одежда", CreatedAt: now},
	}
	return s.db.WithContext(ctx).Create(&demo).Error
}

// --- products ---

func (s *MySQLStore) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Product{})
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name_uz) LIKE ? OR LOWER(name_en) LIKE ? OR LOWER(name_ru) LIKE ?",
			like, like, like,
		)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Sort == "price" {
		query = query.Order("price ASC")
	} else {
		query = query.Order("created_at DESC")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *MySQLStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *MySQLStore) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = p.CreatedAt
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *MySQLStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	var existing models.Product
	if err := s.db.WithContext(ctx).Where("id = ?", p.ID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	return s.db.WithContext(ctx).Save(p).Error
}

func (s *MySQLStore) DeleteProduct(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- categories ---

func (s *MySQLStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *MySQLStore) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (s *MySQLStore) CreateCategory(ctx context.Context, c *models.Category) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	c.UpdatedAt = c.CreatedAt
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *MySQLStore) UpdateCategory(ctx context.Context, c *models.Category) error {
	var existing models.Category
	if err := s.db.WithContext(ctx).Where("id = ?", c.ID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now()
	return s.db.WithContext(ctx).Save(c).Error
}

func (s *MySQLStore) DeleteCategory(ctx context.Context, id string) error {
	// Guard: a category with products cannot be deleted.
	var refs int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("category_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return ErrCategoryInUse
	}

	res := s.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- orders ---

func (s *MySQLStore) ListOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *MySQLStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *MySQLStore) CreateOrder(ctx context.Context, o *models.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	o.UpdatedAt = o.CreatedAt
	for i := range o.Items {
		if o.Items[i].ID == "" {
			o.Items[i].ID = uuid.NewString()
		}
	}
	return s.db.WithContext(ctx).Create(o).Error
}

func (s *MySQLStore) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": now,
	}
	if err := s.db.WithContext(ctx).Model(&order).Updates(updates).Error; err != nil {
		return nil, err
	}

	order.Status = status
	order.UpdatedAt = now
	return &order, nil
}

func (s *MySQLStore) DeleteOrder(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- messages ---

func (s *MySQLStore) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *MySQLStore) CreateMessage(ctx context.Context, m *models.ContactMessage) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.UpdatedAt = m.CreatedAt
	m.IsRead = false
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *MySQLStore) MarkMessageRead(ctx context.Context, id string) (*models.ContactMessage, bool, error) {
	var msg models.ContactMessage
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	// Viewing an already-read message again must not issue a second write.
	if msg.IsRead {
		return &msg, false, nil
	}

	updates := map[string]interface{}{
		"is_read":    true,
		"updated_at": time.Now(),
	}
	if err := s.db.WithContext(ctx).Model(&msg).Updates(updates).Error; err != nil {
		return nil, false, err
	}
	msg.IsRead = true
	return &msg, true, nil
}

func (s *MySQLStore) DeleteMessage(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.ContactMessage{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- dashboard ---

func (s *MySQLStore) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats

	if err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&stats.Products).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Count(&stats.Orders).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("created_at >= ?", startOfDay).Count(&stats.TodayOrders).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("is_read = ?", false).Count(&stats.UnreadMessages).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
