package repository

import (
	"errors"

	"go-resell-sync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	Update(product *model.Product) error

	// SyncStock writes the quantity the POS reports and, when cloverID is
	// non-empty, backfills the POS link in the same update.
	SyncStock(id uuid.UUID, newStock int, cloverID string, updatedBy string) error

	// SetCloverLink persists the POS item id after a push-create.
	SetCloverLink(id uuid.UUID, cloverID string) error

	// AdjustStock applies a signed delta inside a row-locked transaction,
	// clamping at zero, and returns the pre/post quantities for the audit row.
	AdjustStock(id uuid.UUID, delta int, updatedBy string) (prev, next int, err error)

	// Stats for the admin dashboard.
	CountAll() (int64, error)
	CountLinked() (int64, error)
	CountOutOfStock() (int64, error)
	TotalValuation() (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return &product, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return &product, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) SyncStock(id uuid.UUID, newStock int, cloverID string, updatedBy string) error {
	updates := map[string]interface{}{
		"stock":      newStock,
		"updated_by": updatedBy,
	}
	if cloverID != "" {
		updates["clover_item_id"] = cloverID
	}
	return r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *productRepo) SetCloverLink(id uuid.UUID, cloverID string) error {
	return r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Update("clover_item_id", cloverID).Error
}

func (r *productRepo) AdjustStock(id uuid.UUID, delta int, updatedBy string) (int, int, error) {
	var prev, next int

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		// Lock the row so concurrent sales don't read the same count
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error; err != nil {
			return ErrProductNotFound
		}

		prev = product.Stock
		next = model.ClampQuantity(prev, delta)

		return tx.Model(&model.Product{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"stock":      next,
				"updated_by": updatedBy,
			}).Error
	})

	if err != nil {
		return 0, 0, err
	}
	return prev, next, nil
}

func (r *productRepo) CountAll() (int64, error) {
	var n int64
	err := r.db.Model(&model.Product{}).Count(&n).Error
	return n, err
}

func (r *productRepo) CountLinked() (int64, error) {
	var n int64
	err := r.db.Model(&model.Product{}).Where("clover_item_id <> ''").Count(&n).Error
	return n, err
}

func (r *productRepo) CountOutOfStock() (int64, error) {
	var n int64
	err := r.db.Model(&model.Product{}).Where("stock = 0").Count(&n).Error
	return n, err
}

func (r *productRepo) TotalValuation() (int64, error) {
	var total int64
	err := r.db.Model(&model.Product{}).Select("COALESCE(SUM(stock * price), 0)").Scan(&total).Error
	return total, err
}
