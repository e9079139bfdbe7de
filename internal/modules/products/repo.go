package products

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// ListActive returns the public catalog, optionally filtered by category.
func (r *Repo) ListActive(ctx context.Context, category string) ([]Product, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if c := strings.TrimSpace(category); c != "" {
		q = q.Where("category = ?", c)
	}
	var items []Product
	err := q.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *Repo) GetBySlug(ctx context.Context, slug string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).First(&p, "slug = ? AND is_active = ?", slug, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, ErrNotFound
	}
	return p, err
}

// --- admin side ---

func (r *Repo) ListAll(ctx context.Context) ([]Product, error) {
	var items []Product
	err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&items).Error
	return items, err
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) Create(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isDup(err) {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, p *Product) error {
	p.UpdatedAt = time.Now()
	// Select("*") so zero values (stock 0, is_active false) are written too.
	res := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("id = ?", p.ID).
		Select("*").Omit("id", "created_at").
		Updates(p)
	if res.Error != nil {
		if isDup(res.Error) {
			return ErrSlugTaken
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive soft-hides a product instead of deleting rows that orders may
// still reference by name.
func (r *Repo) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_active": active, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func isDup(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
