package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ActionLog struct {
	ID uint `gorm:"primaryKey"`

	UserID *uint `gorm:"index"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`

	Action      string `gorm:"size:20;not null;index"`
	ModelName   string `gorm:"size:50;not null;index"`
	ObjectID    *uint
	Description string `gorm:"type:text"`
	IPAddress   string `gorm:"size:45"`
	UserAgent   string `gorm:"size:255"`

	CreatedAt time.Time `gorm:"not null;index"`
}

// ActionLogFilter narrows action log listings.
type ActionLogFilter struct {
	UserID    *uint
	Action    string
	ModelName string
	Depuis    *time.Time
	Limit     int
}

type ActionLogDAO struct {
	db *gorm.DB
}

func NewActionLogDAO(db *gorm.DB) *ActionLogDAO {
	return &ActionLogDAO{
		db: db,
	}
}

func (d *ActionLogDAO) Insert(ctx context.Context, log ActionLog) (ActionLog, error) {
	result := d.db.WithContext(ctx).Create(&log)
	if result.Error != nil {
		return ActionLog{}, result.Error
	}

	return log, nil
}

func (d *ActionLogDAO) List(ctx context.Context, filter ActionLogFilter) ([]ActionLog, error) {
	query := d.db.WithContext(ctx).Model(&ActionLog{}).Preload("User")

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.ModelName != "" {
		query = query.Where("model_name = ?", filter.ModelName)
	}
	if filter.Depuis != nil {
		query = query.Where("created_at >= ?", *filter.Depuis)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var logs []ActionLog
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}

	return logs, nil
}
