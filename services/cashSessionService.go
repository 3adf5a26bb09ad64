package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"pos-api/models"
)

// CashSessionService tracks the drawer between opening and closing and
// reconciles the counted cash against completed cash sales.
type CashSessionService struct {
	db *gorm.DB
}

func NewCashSessionService(db *gorm.DB) *CashSessionService {
	return &CashSessionService{db: db}
}

// Open starts a drawer session for the user. The insert is guarded by the
// NOT EXISTS predicate so two terminals opening at once cannot both end up
// with an open session, the database decides which insert lands.
func (s *CashSessionService) Open(ctx context.Context, userID uint, openingCents int64) (*models.CashSession, error) {
	res := s.db.WithContext(ctx).Exec(`
		INSERT INTO cash_sessions
			(user_id, status, opening_cash_cents, total_cash_in_cents, total_change_cents, expected_cents, opened_at)
		SELECT ?, 'open', ?, 0, 0, 0, ?
		FROM (SELECT 1) AS seed
		WHERE NOT EXISTS (
			SELECT 1 FROM cash_sessions WHERE user_id = ? AND status = 'open'
		)`, userID, openingCents, time.Now(), userID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrCashSessionOpen
	}
	return s.Current(ctx, userID)
}

func (s *CashSessionService) Current(ctx context.Context, userID uint) (*models.CashSession, error) {
	var session models.CashSession
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = 'open'", userID).
		First(&session).Error; err != nil {
		return nil, ErrNoCashSession
	}
	return &session, nil
}

func (s *CashSessionService) Close(ctx context.Context, userID uint, closingCents int64) (*models.CashSession, error) {
	session, err := s.Current(ctx, userID)
	if err != nil {
		return nil, err
	}

	var totals struct {
		TotalCashIn int64
		TotalChange int64
	}
	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&models.Sale{}).
		Select("COALESCE(SUM(cash_received_cents), 0) AS total_cash_in, COALESCE(SUM(change_given_cents), 0) AS total_change").
		Where("payment_method = ? AND status = ? AND created_by = ? AND sale_date BETWEEN ? AND ?",
			models.PaymentCash, models.SaleCompleted, userID, session.OpenedAt, now).
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	expected := session.OpeningCashCents + totals.TotalCashIn - totals.TotalChange
	diff := closingCents - expected

	session.TotalCashInCents = totals.TotalCashIn
	session.TotalChangeCents = totals.TotalChange
	session.ExpectedCents = expected
	session.ClosingCashCents = &closingCents
	session.DifferenceCents = &diff
	session.Status = "closed"
	session.ClosedAt = &now

	if err := s.db.WithContext(ctx).Save(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}
