package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"pos-api/models"
	"pos-api/utils/pagination"
)

// SaleQueryService is the read path. It only reassembles what checkout
// persisted; totals and line prices come from the stored snapshots and are
// never recomputed from the current catalog.
type SaleQueryService struct {
	db *gorm.DB
}

func NewSaleQueryService(db *gorm.DB) *SaleQueryService {
	return &SaleQueryService{db: db}
}

var ErrSaleNotFound = errors.New("sale not found")

func (s *SaleQueryService) GetSaleByID(ctx context.Context, saleID uint) (*models.Sale, error) {
	var sale models.Sale
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Customer").
		First(&sale, saleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, &PersistenceError{Op: "read sale", Err: err}
	}
	return &sale, nil
}

func (s *SaleQueryService) GetSaleByReference(ctx context.Context, ref string) (*models.Sale, error) {
	var sale models.Sale
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Customer").
		Where("reference_no = ?", ref).
		First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, &PersistenceError{Op: "read sale", Err: err}
	}
	return &sale, nil
}

type SaleFilter struct {
	From     *time.Time
	To       *time.Time
	Status   models.SaleStatus
	Page     int
	PageSize int
}

// ListSales returns sale headers (no line items) ordered by sale date
// descending. Offset pagination keeps the sequence restartable.
func (s *SaleQueryService) ListSales(ctx context.Context, filter SaleFilter) ([]models.Sale, pagination.Meta, error) {
	p := pagination.New(filter.Page, filter.PageSize)

	query := s.db.WithContext(ctx).Model(&models.Sale{})
	if filter.From != nil {
		query = query.Where("sale_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("sale_date < ?", *filter.To)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, pagination.Meta{}, &PersistenceError{Op: "count sales", Err: err}
	}

	var sales []models.Sale
	if err := query.
		Order("sale_date DESC").
		Offset(p.Offset).
		Limit(p.PageSize).
		Find(&sales).Error; err != nil {
		return nil, pagination.Meta{}, &PersistenceError{Op: "list sales", Err: err}
	}

	return sales, pagination.BuildMeta(p.Page, p.PageSize, total), nil
}
