package handler

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"undulcito/internal/domain/service"
	"undulcito/internal/usecase"
	"undulcito/pkg/errors"
	"undulcito/pkg/response"
)

const maxImageSize = 5 << 20

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
	}
}

func (h *AdminHandler) ListProducts(c echo.Context) error {
	products, err := h.adminUseCase.ListProducts(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, products)
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	return h.saveProduct(c, "")
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	return h.saveProduct(c, c.Param("id"))
}

// saveProduct reads the multipart product form. The image part is optional
// on update.
func (h *AdminHandler) saveProduct(c echo.Context, id string) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, errors.BadRequest("Expected a multipart form", err))
	}

	input := usecase.SaveProductInput{
		ID:              id,
		Name:            c.FormValue("name"),
		Price:           c.FormValue("price"),
		Category:        c.FormValue("category"),
		Description:     c.FormValue("description"),
		Features:        splitFeatures(form.Value["features"]),
		Stock:           c.FormValue("stock"),
		IsBestSeller:    parseCheckbox(c.FormValue("is_best_seller")),
		BestSellerOrder: c.FormValue("best_seller_order"),
	}

	if files := form.File["image"]; len(files) > 0 {
		image, closeFn, err := openImage(files[0])
		if err != nil {
			return response.Error(c, err)
		}
		defer closeFn()
		input.Image = image
	}

	product, err := h.adminUseCase.SaveProduct(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}

	if id == "" {
		return response.Created(c, product)
	}
	return response.Success(c, product)
}

func openImage(fh *multipart.FileHeader) (*service.ImageUpload, func(), error) {
	if fh.Size > maxImageSize {
		return nil, nil, errors.BadRequest("Image must be 5MB or smaller", nil)
	}

	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, nil, errors.BadRequest("Only image files are allowed", nil)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, errors.BadRequest("Unreadable image", err)
	}

	return &service.ImageUpload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
	}, func() { f.Close() }, nil
}

// splitFeatures accepts repeated fields or one comma separated field.
func splitFeatures(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}

func parseCheckbox(v string) bool {
	if v == "on" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

func confirmed(c echo.Context) bool {
	ok, _ := strconv.ParseBool(c.QueryParam("confirm"))
	return ok
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	if err := h.adminUseCase.DeleteProduct(c.Request().Context(), c.Param("id"), confirmed(c)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"deleted": c.Param("id")})
}

type quickSaleRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

func (h *AdminHandler) QuickSale(c echo.Context) error {
	var req quickSaleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	stock, err := h.adminUseCase.QuickSale(c.Request().Context(), c.Param("id"), req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"id":    c.Param("id"),
		"sold":  req.Quantity,
		"stock": stock,
	})
}

func (h *AdminHandler) ListCategories(c echo.Context) error {
	categories, err := h.adminUseCase.ListCategories(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, categories)
}

type createCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *AdminHandler) CreateCategory(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.adminUseCase.SaveCategory(c.Request().Context(), req.Name)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"category":          category,
		"selected_category": category.Name,
	})
}

func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	orphaned, err := h.adminUseCase.DeleteCategory(c.Request().Context(), c.Param("id"), confirmed(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"deleted":           c.Param("id"),
		"orphaned_products": orphaned,
	})
}
