package usecase

import (
	"context"
	"strconv"
	"strings"

	"undulcito/internal/domain/entity"
	"undulcito/internal/domain/repository"
	"undulcito/internal/domain/service"
	"undulcito/pkg/errors"
	"undulcito/pkg/logger"
	"undulcito/pkg/utils"
)

type AdminUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	imageHost    service.ImageHost
}

func NewAdminUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	imageHost service.ImageHost,
) *AdminUseCase {
	return &AdminUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		imageHost:    imageHost,
	}
}

// SaveProductInput mirrors the admin product form. Numeric fields arrive as
// raw text.
type SaveProductInput struct {
	ID              string
	Name            string
	Price           string
	Category        string
	Description     string
	Features        []string
	Stock           string
	IsBestSeller    bool
	BestSellerOrder string
	Image           *service.ImageUpload
}

func (in SaveProductInput) IsNew() bool {
	return in.ID == ""
}

// SaveProduct creates or updates a product. The image, when present, is
// uploaded before anything is written; a failed upload writes nothing.
func (uc *AdminUseCase) SaveProduct(ctx context.Context, input SaveProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.BadRequest("Product name is required", nil)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(input.Price), 64)
	if err != nil || price <= 0 {
		return nil, errors.BadRequest("Price must be a number greater than zero", err)
	}

	category, err := uc.resolveCategory(ctx, input.Category)
	if err != nil {
		return nil, err
	}

	var existing *entity.Product
	if input.IsNew() {
		if input.Image == nil {
			return nil, errors.BadRequest("An image is required for new products", nil)
		}
	} else {
		existing, err = uc.productRepo.GetByID(ctx, input.ID)
		if err != nil {
			return nil, err
		}
	}

	image := ""
	if existing != nil {
		image = existing.Image
	}
	if input.Image != nil {
		image, err = uc.imageHost.Upload(ctx, *input.Image)
		if err != nil {
			logger.Error("Image upload failed for product %q: %v", name, err)
			return nil, errors.BadGateway("Image upload failed", err)
		}
	}

	stock := utils.ParseIntOr(strings.TrimSpace(input.Stock), 0)
	if stock < 0 {
		stock = 0
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = entity.DefaultProductDescription
	}

	features := cleanFeatures(input.Features)
	if len(features) == 0 {
		features = entity.DefaultProductFeatures()
	}

	patch := entity.ProductPatch{
		Name:            name,
		Price:           price,
		Category:        category,
		Image:           image,
		Description:     description,
		Features:        features,
		Stock:           stock,
		IsBestSeller:    input.IsBestSeller,
		BestSellerOrder: utils.ParseIntOr(strings.TrimSpace(input.BestSellerOrder), 0),
	}

	if existing == nil {
		product := productFromPatch(patch)
		if err := uc.productRepo.Create(ctx, product); err != nil {
			return nil, err
		}
		logger.Info("Product created: %s (%s)", product.Name, product.ID)
		return uc.reload(ctx, product), nil
	}

	if err := uc.productRepo.Update(ctx, existing.ID, patch); err != nil {
		return nil, err
	}
	logger.Info("Product updated: %s (%s)", name, existing.ID)

	updated := productFromPatch(patch)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	return uc.reload(ctx, updated), nil
}

// reload reads back a saved product so server-set timestamps are filled in.
// The write already succeeded, so a failed read falls back to saved.
func (uc *AdminUseCase) reload(ctx context.Context, saved *entity.Product) *entity.Product {
	stored, err := uc.productRepo.GetByID(ctx, saved.ID)
	if err != nil {
		logger.Warn("Product %s saved but could not be read back: %v", saved.ID, err)
		return saved
	}
	return stored
}

// resolveCategory returns the stored spelling of name, or the first category
// by name when name is empty.
func (uc *AdminUseCase) resolveCategory(ctx context.Context, name string) (string, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return "", err
	}
	if len(categories) == 0 {
		return "", errors.BadRequest("Create a category before adding products", nil)
	}

	if strings.TrimSpace(name) == "" {
		return categories[0].Name, nil
	}
	for _, c := range categories {
		if c.SameName(name) {
			return c.Name, nil
		}
	}
	return "", errors.BadRequest("Unknown category: "+strings.TrimSpace(name), nil)
}

func productFromPatch(p entity.ProductPatch) *entity.Product {
	return &entity.Product{
		Name:            p.Name,
		Price:           p.Price,
		Category:        p.Category,
		Image:           p.Image,
		Description:     p.Description,
		Features:        p.Features,
		Stock:           p.Stock,
		IsBestSeller:    p.IsBestSeller,
		BestSellerOrder: p.BestSellerOrder,
	}
}

func cleanFeatures(features []string) []string {
	var out []string
	for _, f := range features {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ListProducts returns every product including those out of stock.
func (uc *AdminUseCase) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.ListAll(ctx)
}

func (uc *AdminUseCase) DeleteProduct(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return errors.ConfirmationRequired("Deleting a product")
	}
	if _, err := uc.productRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := uc.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Product deleted: %s", id)
	return nil
}

func (uc *AdminUseCase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.List(ctx)
}

// SaveCategory adds a category. Names are unique ignoring case.
func (uc *AdminUseCase) SaveCategory(ctx context.Context, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.BadRequest("Category name is required", nil)
	}

	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.SameName(name) {
			return nil, errors.Conflict("Category already exists: " + c.Name)
		}
	}

	category := &entity.Category{Name: name}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	logger.Info("Category created: %s", name)
	return category, nil
}

// DeleteCategory removes a category. Products keep the category name; the
// returned count says how many still reference it.
func (uc *AdminUseCase) DeleteCategory(ctx context.Context, id string, confirmed bool) (int, error) {
	if !confirmed {
		return 0, errors.ConfirmationRequired("Deleting a category")
	}

	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return 0, err
	}
	var target *entity.Category
	for _, c := range categories {
		if c.ID == id {
			target = c
			break
		}
	}
	if target == nil {
		return 0, errors.NotFound("Category", nil)
	}

	if err := uc.categoryRepo.Delete(ctx, id); err != nil {
		return 0, err
	}

	orphaned, err := uc.productRepo.CountByCategory(ctx, target.Name)
	if err != nil {
		logger.Warn("Category %s deleted but product count failed: %v", target.Name, err)
		return 0, nil
	}
	if orphaned > 0 {
		logger.Warn("Category %s deleted while %d products still use it", target.Name, orphaned)
	}
	return orphaned, nil
}

// QuickSale records an in-person sale by taking quantity off the stock.
func (uc *AdminUseCase) QuickSale(ctx context.Context, productID string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, errors.BadRequest("Quantity must be greater than zero", nil)
	}

	stock, err := uc.productRepo.DecrementStock(ctx, productID, quantity)
	if err != nil {
		return 0, err
	}
	logger.Info("Quick sale: %d x %s, %d left", quantity, productID, stock)
	return stock, nil
}
