package services

import (
	"encoding/json"
	"log"

	"gorm.io/gorm"

	"pos-api/models"
	"pos-api/utils/pagination"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

type AuditEntry struct {
	EntityType  string
	EntityID    uint
	Action      string
	UserID      *uint
	OldValue    interface{}
	NewValue    interface{}
	IPAddress   string
	Description string
}

// Append writes an audit row on the given handle. Pass a transaction to make
// the entry part of a unit of work, or the base handle for standalone writes.
func (s *AuditService) Append(db *gorm.DB, entry AuditEntry) error {
	row := models.AuditLog{
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Action:      entry.Action,
		UserID:      entry.UserID,
		OldValue:    toJSONString(entry.OldValue),
		NewValue:    toJSONString(entry.NewValue),
		Description: entry.Description,
	}
	if entry.IPAddress != "" {
		row.IPAddress = &entry.IPAddress
	}
	return db.Create(&row).Error
}

// AppendBestEffort is the post-commit variant: the primary operation already
// succeeded, so a failed append is logged and swallowed.
func (s *AuditService) AppendBestEffort(entry AuditEntry) {
	if err := s.Append(s.db, entry); err != nil {
		log.Printf("audit append failed (%s %s #%d): %v",
			entry.EntityType, entry.Action, entry.EntityID, err)
	}
}

func (s *AuditService) List(page, pageSize int, entityType string) ([]models.AuditLog, pagination.Meta, error) {
	p := pagination.New(page, pageSize)

	query := s.db.Model(&models.AuditLog{})
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, pagination.Meta{}, err
	}

	var logs []models.AuditLog
	if err := query.
		Order("created_at DESC").
		Offset(p.Offset).
		Limit(p.PageSize).
		Find(&logs).Error; err != nil {
		return nil, pagination.Meta{}, err
	}

	return logs, pagination.BuildMeta(p.Page, p.PageSize, total), nil
}

func toJSONString(v interface{}) *string {
	if v == nil {
		return nil
	}
	bytes, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	str := string(bytes)
	return &str
}
