package addresses

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("address not found")

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Address, error) {
	var out []Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *Repo) Create(ctx context.Context, a *Address) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.IsDefault {
			if err := clearDefault(tx, a.UserID); err != nil {
				return err
			}
		}
		return tx.Create(a).Error
	})
}

// Update rewrites an address owned by the user; ownership is part of the
// WHERE clause so one customer cannot touch another's rows.
func (r *Repo) Update(ctx context.Context, a *Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.IsDefault {
			if err := clearDefault(tx, a.UserID); err != nil {
				return err
			}
		}
		res := tx.Model(&Address{}).
			Where("id = ? AND user_id = ?", a.ID, a.UserID).
			Select("name", "address_line1", "address_line2", "suburb", "state", "postcode", "phone", "is_default").
			Updates(a)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *Repo) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func clearDefault(tx *gorm.DB, userID string) error {
	return tx.Model(&Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
