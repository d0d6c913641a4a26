package postgres

import (
	"context"

	"pulse/internal/domain/entity"
	"pulse/internal/domain/repository"
	"pulse/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// FindByID retrieves a single product by its unique ID, optionally
// eager-loading its supplier.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID, withSupplier bool) (*entity.Product, error) {
	var productM model.ProductModel

	query := repo.db.WithContext(ctx)
	if withSupplier {
		query = query.Preload("Supplier")
	}

	if err := query.
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

// FindByIDs retrieves the products with the given IDs. Missing IDs are
// silently skipped.
func (repo *productRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return []*entity.Product{}, nil
	}

	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find products by IDs")
	}

	return toProductDomainSlice(productModels), nil
}

// FindAll retrieves the full catalog.
func (repo *productRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find products")
	}

	return toProductDomainSlice(productModels), nil
}

// FindLowStock retrieves products with stock at or below the threshold,
// suppliers eager-loaded.
func (repo *productRepository) FindLowStock(ctx context.Context, threshold int) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Preload("Supplier").
		Where("stock_quantity <= ?", threshold).
		Order("stock_quantity ASC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find low stock products")
	}

	return toProductDomainSlice(productModels), nil
}

// FindInStockByCategories retrieves in-stock products belonging to any of the
// given categories, ordered by price descending.
func (repo *productRepository) FindInStockByCategories(ctx context.Context, categories []string) ([]*entity.Product, error) {
	if len(categories) == 0 {
		return []*entity.Product{}, nil
	}

	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("category IN ? AND stock_quantity > 0", categories).
		Order("price DESC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find in-stock products by categories")
	}

	return toProductDomainSlice(productModels), nil
}

// toProductDomain maps a persistence model back to a pure domain entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	product := &entity.Product{
		ID:            data.ID,
		Name:          data.Name,
		Category:      data.Category,
		Price:         data.Price,
		StockQuantity: data.StockQuantity,
		SKU:           data.SKU,
		SupplierID:    data.SupplierID,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}

	if data.Supplier != nil {
		product.Supplier = toSupplierDomain(data.Supplier)
	}

	return product
}

func toProductDomainSlice(data []*model.ProductModel) []*entity.Product {
	products := make([]*entity.Product, 0, len(data))
	for _, productM := range data {
		products = append(products, toProductDomain(productM))
	}

	return products
}
