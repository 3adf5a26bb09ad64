package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"pos-api/models"
	"pos-api/utils/pagination"
)

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

func (s *CustomerService) Create(ctx context.Context, customer *models.Customer) error {
	if customer.LoyaltyPoints < 0 {
		return errors.New("loyalty points must not be negative")
	}
	return s.db.WithContext(ctx).Create(customer).Error
}

func (s *CustomerService) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &CustomerNotFoundError{CustomerID: id}
		}
		return nil, &PersistenceError{Op: "read customer", Err: err}
	}
	return &customer, nil
}

func (s *CustomerService) List(ctx context.Context, page, pageSize int) ([]models.Customer, pagination.Meta, error) {
	p := pagination.New(page, pageSize)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Customer{}).Count(&total).Error; err != nil {
		return nil, pagination.Meta{}, err
	}

	var customers []models.Customer
	if err := s.db.WithContext(ctx).
		Order("full_name ASC").
		Offset(p.Offset).
		Limit(p.PageSize).
		Find(&customers).Error; err != nil {
		return nil, pagination.Meta{}, err
	}

	return customers, pagination.BuildMeta(p.Page, p.PageSize, total), nil
}

// Search matches name, contact or email, every term must appear in one of them.
func (s *CustomerService) Search(ctx context.Context, term string) ([]models.Customer, error) {
	query := s.db.WithContext(ctx).Model(&models.Customer{})
	for _, word := range strings.Fields(strings.ToLower(strings.TrimSpace(term))) {
		pattern := "%" + word + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(contact) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern)
	}

	var customers []models.Customer
	if err := query.Order("full_name ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *CustomerService) Update(ctx context.Context, id uint, input models.Customer) (*models.Customer, error) {
	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.FullName = input.FullName
	customer.Contact = input.Contact
	customer.Email = input.Email

	if err := s.db.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.Customer{}, id).Error
}

// IncrementLoyaltyPoints adds points atomically. Checkout calls this after
// its own commit, so the update is deliberately its own write.
func (s *CustomerService) IncrementLoyaltyPoints(ctx context.Context, id uint, delta int) error {
	if delta < 0 {
		return ErrInvalidLoyaltyAdjustment
	}
	if delta == 0 {
		return nil
	}
	res := s.db.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ?", id).
		UpdateColumn("loyalty_points", gorm.Expr("loyalty_points + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &CustomerNotFoundError{CustomerID: id}
	}
	return nil
}

func (s *CustomerService) TotalLoyaltyPoints(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Customer{}).
		Select("COALESCE(SUM(loyalty_points), 0)").
		Scan(&total).Error
	return total, err
}
