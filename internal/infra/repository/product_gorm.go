package repository

import (
	"context"
	"errors"

	"github.com/shlankd/developEcommerce/internal/domain/model"
	repo "github.com/shlankd/developEcommerce/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	dbq := r.db.WithContext(ctx).Model(&model.Product{})

	//名前の部分一致
	if q.Q != "" {
		dbq = dbq.Where("name ILIKE ?", "%"+q.Q+"%")
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	var items []model.Product
	offset := (q.Page - 1) * q.Limit
	if err := dbq.Order("id asc").Limit(q.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return items, total, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", productID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) FindByName(ctx context.Context, name string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// IDが0なら作成、あれば全カラム更新
func (r *ProductGormRepository) Save(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Save(&p).Error; err != nil {
		//nameはunique
		if isUniqueViolation(err) {
			return model.Product{}, repo.ErrConflict
		}
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Delete(ctx context.Context, productID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, productID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
