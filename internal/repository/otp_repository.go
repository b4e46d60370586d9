package repository

import (
	"adhyeta_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type OTPRepository struct {
	DB *gorm.DB
}

func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{DB: db}
}

func (r *OTPRepository) Create(otp *model.OTPCode) error {
	return r.DB.Create(otp).Error
}

// LatestUnused returns the most recent unused code matching (user, code)
// created at or after cutoff. Pass the zero time to skip the expiry check.
func (r *OTPRepository) LatestUnused(userID uint, code string, cutoff time.Time) (*model.OTPCode, error) {
	q := r.DB.Where("user_id = ? AND code = ? AND is_used = ?", userID, code, false)
	if !cutoff.IsZero() {
		q = q.Where("created_at >= ?", cutoff)
	}

	var otp model.OTPCode
	err := q.Order("created_at DESC").First(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *OTPRepository) MarkUsed(id uint) error {
	return r.DB.Model(&model.OTPCode{}).Where("id = ?", id).
		Update("is_used", true).Error
}
