package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shlankd/developEcommerce/internal/domain/model"
	repo "github.com/shlankd/developEcommerce/internal/repository"
)

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page  int
	Limit int
	Q     string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, ErrValidation
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, ErrValidation
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, ErrValidation
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:  in.Page,
		Limit: in.Limit,
		Q:     strings.TrimSpace(in.Q),
	})
	if err != nil {
		return ProductListOutput{}, err
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, ErrValidation
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

type AdminSaveProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int64
}

// AdminAddProduct は商品登録。商品名はunique。
func (u *ProductUsecase) AdminAddProduct(ctx context.Context, in AdminSaveProductInput) (model.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, ErrValidation
	}
	if in.Price < 0 || in.Stock < 0 {
		return model.Product{}, ErrValidation
	}

	//同名の商品が既にあれば弾く
	_, err := u.productRepo.FindByName(ctx, in.Name)
	if err == nil {
		return model.Product{}, ErrProductNameTaken
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, err
	}

	p, err := u.productRepo.Save(ctx, model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
	})
	if errors.Is(err, repo.ErrConflict) {
		return model.Product{}, ErrProductNameTaken
	}
	return p, err
}

// AdminUpdateProduct は商品更新。名前を変える場合も重複は弾く。
func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, productID int64, in AdminSaveProductInput) (model.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, ErrValidation
	}
	if in.Price < 0 || in.Stock < 0 {
		return model.Product{}, ErrValidation
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, err
	}

	//別IDの商品が同じ名前を持っていたら弾く
	other, err := u.productRepo.FindByName(ctx, in.Name)
	if err == nil && other.ID != productID {
		return model.Product{}, ErrProductNameTaken
	}
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, err
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock

	saved, err := u.productRepo.Save(ctx, p)
	if errors.Is(err, repo.ErrConflict) {
		return model.Product{}, ErrProductNameTaken
	}
	return saved, err
}

func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, productID int64) error {
	err := u.productRepo.Delete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

// AdminSetStock は在庫の現在値を直接設定する。
func (u *ProductUsecase) AdminSetStock(ctx context.Context, productID int64, newStock int64) error {
	if newStock < 0 {
		return ErrValidation
	}

	err := u.inventoryRepo.SetStock(ctx, productID, newStock)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}
