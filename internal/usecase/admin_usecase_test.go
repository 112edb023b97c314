package usecase

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"undulcito/internal/domain/entity"
	"undulcito/internal/domain/service"
	"undulcito/pkg/errors"
)

func newAdmin(categories ...string) (*AdminUseCase, *fakeProductRepo, *fakeCategoryRepo, *fakeImageHost) {
	products := newFakeProductRepo()
	cats := newFakeCategoryRepo(categories...)
	host := &fakeImageHost{}
	return NewAdminUseCase(products, cats, host), products, cats, host
}

func upload(name string) *service.ImageUpload {
	return &service.ImageUpload{Filename: name, ContentType: "image/png", Body: strings.NewReader("x")}
}

func TestSaveProductCreatesWithDefaults(t *testing.T) {
	uc, products, _, host := newAdmin("Tortas", "Cupcakes")

	p, err := uc.SaveProduct(context.Background(), SaveProductInput{
		Name:  "  Torta de Chocolate ",
		Price: "15.5",
		Stock: "abc",
		Image: upload("torta.png"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero(), "stored timestamps are read back")
	assert.Equal(t, "Torta de Chocolate", p.Name)
	assert.Equal(t, 15.5, p.Price)
	assert.Equal(t, "Cupcakes", p.Category, "falls back to the first category by name")
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, entity.DefaultProductDescription, p.Description)
	assert.Equal(t, entity.DefaultProductFeatures(), p.Features)
	assert.Equal(t, "https://img.example/torta.png", p.Image)
	assert.Equal(t, []string{"torta.png"}, host.uploads)
	assert.Equal(t, 1, products.writes)
}

func TestSaveProductValidation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		input SaveProductInput
	}{
		{"empty name", SaveProductInput{Name: " ", Price: "3", Image: upload("a.png")}},
		{"zero price", SaveProductInput{Name: "Flan", Price: "0", Image: upload("a.png")}},
		{"bad price", SaveProductInput{Name: "Flan", Price: "tres", Image: upload("a.png")}},
		{"missing image", SaveProductInput{Name: "Flan", Price: "3"}},
		{"unknown category", SaveProductInput{Name: "Flan", Price: "3", Category: "Helados", Image: upload("a.png")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, products, _, host := newAdmin("Postres")
			_, err := uc.SaveProduct(ctx, tc.input)
			assert.True(t, errors.Is(err, "BAD_REQUEST"), "got %v", err)
			assert.Equal(t, 0, products.writes)
			assert.Empty(t, host.uploads)
		})
	}
}

func TestSaveProductNeedsACategory(t *testing.T) {
	uc, products, _, _ := newAdmin()

	_, err := uc.SaveProduct(context.Background(), SaveProductInput{Name: "Flan", Price: "3", Image: upload("a.png")})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	assert.Equal(t, 0, products.writes)
}

func TestSaveProductUploadFailureWritesNothing(t *testing.T) {
	uc, products, _, host := newAdmin("Postres")
	host.err = stderrors.New("imgbb down")

	_, err := uc.SaveProduct(context.Background(), SaveProductInput{Name: "Flan", Price: "3", Image: upload("a.png")})
	assert.True(t, errors.Is(err, "UPSTREAM_ERROR"))
	assert.Equal(t, 0, products.writes)
}

func TestSaveProductUpdateKeepsImageAndCreatedAt(t *testing.T) {
	uc, products, _, host := newAdmin("Postres")
	ctx := context.Background()

	created, err := uc.SaveProduct(ctx, SaveProductInput{Name: "Flan", Price: "3", Stock: "4", Image: upload("flan.png")})
	require.NoError(t, err)
	stored, _ := products.GetByID(ctx, created.ID)

	updated, err := uc.SaveProduct(ctx, SaveProductInput{
		ID:              created.ID,
		Name:            "Flan de Coco",
		Price:           "3.5",
		Category:        "postres",
		Stock:           "-2",
		IsBestSeller:    true,
		BestSellerOrder: "1",
		Features:        []string{" Sin TACC ", ""},
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Postres", updated.Category)
	assert.Equal(t, created.Image, updated.Image)
	assert.Equal(t, 0, updated.Stock, "negative stock clamps to zero")
	assert.Equal(t, []string{"Sin TACC"}, updated.Features)
	assert.Equal(t, stored.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(stored.UpdatedAt))
	assert.Len(t, host.uploads, 1)

	after, _ := products.GetByID(ctx, created.ID)
	assert.Equal(t, stored.CreatedAt, after.CreatedAt)
	assert.True(t, after.IsBestSeller)
	assert.Equal(t, 1, after.BestSellerOrder)
}

func TestSaveProductUpdateMissing(t *testing.T) {
	uc, _, _, _ := newAdmin("Postres")
	_, err := uc.SaveProduct(context.Background(), SaveProductInput{ID: "ghost", Name: "Flan", Price: "3"})
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestSaveCategory(t *testing.T) {
	uc, _, cats, _ := newAdmin("Tortas")
	ctx := context.Background()

	c, err := uc.SaveCategory(ctx, "  Galletas ")
	require.NoError(t, err)
	assert.Equal(t, "Galletas", c.Name)
	assert.NotEmpty(t, c.ID)

	_, err = uc.SaveCategory(ctx, "TORTAS")
	assert.True(t, errors.Is(err, "CONFLICT"))

	_, err = uc.SaveCategory(ctx, "   ")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	list, _ := cats.List(ctx)
	assert.Len(t, list, 2)
}

func TestDeleteCategoryReportsOrphans(t *testing.T) {
	uc, _, cats, _ := newAdmin("Tortas", "Postres")
	ctx := context.Background()

	_, err := uc.SaveProduct(ctx, SaveProductInput{Name: "Torta", Price: "9", Category: "Tortas", Image: upload("t.png")})
	require.NoError(t, err)

	_, err = uc.DeleteCategory(ctx, "c1", false)
	assert.True(t, errors.Is(err, "CONFIRMATION_REQUIRED"))

	orphans, err := uc.DeleteCategory(ctx, "c1", true)
	require.NoError(t, err)
	assert.Equal(t, 1, orphans)

	list, _ := cats.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "Postres", list[0].Name)

	_, err = uc.DeleteCategory(ctx, "c1", true)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestDeleteProductNeedsConfirmation(t *testing.T) {
	uc, products, _, _ := newAdmin("Postres")
	ctx := context.Background()
	p, err := uc.SaveProduct(ctx, SaveProductInput{Name: "Flan", Price: "3", Image: upload("a.png")})
	require.NoError(t, err)

	err = uc.DeleteProduct(ctx, p.ID, false)
	assert.True(t, errors.Is(err, "CONFIRMATION_REQUIRED"))

	require.NoError(t, uc.DeleteProduct(ctx, p.ID, true))
	all, _ := products.ListAll(ctx)
	assert.Empty(t, all)
}

func TestQuickSale(t *testing.T) {
	uc, products, _, _ := newAdmin("Postres")
	ctx := context.Background()
	p, err := uc.SaveProduct(ctx, SaveProductInput{Name: "Flan", Price: "3", Stock: "5", Image: upload("a.png")})
	require.NoError(t, err)
	writes := products.writes

	_, err = uc.QuickSale(ctx, p.ID, 0)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.QuickSale(ctx, p.ID, 6)
	assert.True(t, errors.Is(err, "INSUFFICIENT_STOCK"))
	assert.Equal(t, writes, products.writes)

	left, err := uc.QuickSale(ctx, p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, left)

	all, err := uc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "admin listing keeps sold-out products")
	assert.Equal(t, 0, all[0].Stock)
}
