package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"pos-api/models"
	"pos-api/utils/pagination"
)

type ProductService struct {
	db    *gorm.DB
	audit *AuditService
}

func NewProductService(db *gorm.DB, audit *AuditService) *ProductService {
	return &ProductService{db: db, audit: audit}
}

func (s *ProductService) Create(ctx context.Context, product *models.Product, userID *uint, ip string) error {
	if product.PriceCents < 0 || product.StockQuantity < 0 {
		return errors.New("price and stock must not be negative")
	}

	var existing models.Product
	if err := s.db.WithContext(ctx).Where("name = ?", product.Name).First(&existing).Error; err == nil {
		return ErrDuplicateName
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		return s.audit.Append(tx, AuditEntry{
			EntityType:  "product",
			EntityID:    product.ID,
			Action:      "create",
			UserID:      userID,
			NewValue:    product,
			IPAddress:   ip,
			Description: fmt.Sprintf("Product '%s' created", product.Name),
		})
	})
}

func (s *ProductService) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductNotFoundError{ProductID: id}
		}
		return nil, &PersistenceError{Op: "read product", Err: err}
	}
	return &product, nil
}

func (s *ProductService) List(ctx context.Context, page, pageSize int) ([]models.Product, pagination.Meta, error) {
	p := pagination.New(page, pageSize)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, pagination.Meta{}, err
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).
		Order("name ASC").
		Offset(p.Offset).
		Limit(p.PageSize).
		Find(&products).Error; err != nil {
		return nil, pagination.Meta{}, err
	}

	return products, pagination.BuildMeta(p.Page, p.PageSize, total), nil
}

// Search matches name or category, every term must appear in one of them.
func (s *ProductService) Search(ctx context.Context, term string) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})
	for _, word := range strings.Fields(strings.ToLower(strings.TrimSpace(term))) {
		pattern := "%" + word + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern)
	}

	var products []models.Product
	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).
		Where("category = ?", category).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).
		Where("stock_quantity < ?", threshold).
		Order("stock_quantity ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, input models.Product, userID *uint, ip string) (*models.Product, error) {
	old, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.PriceCents < 0 {
		return nil, errors.New("price must not be negative")
	}

	var existing models.Product
	if err := s.db.WithContext(ctx).
		Where("name = ? AND id != ?", input.Name, id).
		First(&existing).Error; err == nil {
		return nil, ErrDuplicateName
	}

	oldCopy := *old
	updated := *old
	updated.Name = input.Name
	updated.Category = input.Category
	updated.Description = input.Description
	updated.PriceCents = input.PriceCents

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// stock only moves through Restock and the checkout decrement; an
		// edit carrying a stale stock figure must not overwrite sales that
		// happened since the caller loaded the product
		if err := tx.Omit("stock_quantity").Save(&updated).Error; err != nil {
			return err
		}
		return s.audit.Append(tx, AuditEntry{
			EntityType:  "product",
			EntityID:    updated.ID,
			Action:      "update",
			UserID:      userID,
			OldValue:    oldCopy,
			NewValue:    updated,
			IPAddress:   ip,
			Description: fmt.Sprintf("Product '%s' updated", updated.Name),
		})
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Restock adds stock outside of checkout. Checkout itself only ever touches
// stock through its conditional decrement.
func (s *ProductService) Restock(ctx context.Context, id uint, qty int, userID *uint, ip string) (*models.Product, error) {
	if qty <= 0 {
		return nil, ErrInvalidRestockQuantity
	}
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ?", id).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", qty))
		if res.Error != nil {
			return res.Error
		}
		return s.audit.Append(tx, AuditEntry{
			EntityType:  "product",
			EntityID:    id,
			Action:      "restock",
			UserID:      userID,
			IPAddress:   ip,
			Description: fmt.Sprintf("Product '%s' restocked by %d", product.Name, qty),
		})
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete refuses to remove a product that any recorded sale references;
// sales must keep resolving their line items.
func (s *ProductService) Delete(ctx context.Context, id uint, userID *uint, ip string) error {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.db.WithContext(ctx).
		Model(&models.SaleLineItem{}).
		Where("product_id = ?", id).
		Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return ErrProductInUse
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Product{}, id).Error; err != nil {
			return err
		}
		return s.audit.Append(tx, AuditEntry{
			EntityType:  "product",
			EntityID:    id,
			Action:      "delete",
			UserID:      userID,
			OldValue:    product,
			IPAddress:   ip,
			Description: fmt.Sprintf("Product '%s' deleted", product.Name),
		})
	})
}
