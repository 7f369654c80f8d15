package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inventory-api/internal/application"
	"github.com/oksasatya/inventory-api/internal/domain/entity"
	"github.com/oksasatya/inventory-api/pkg/response"
	"github.com/oksasatya/inventory-api/pkg/validation"
)

const maxImageBytes = 5 << 20

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type createProductRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Description string  `json:"description" binding:"max=2000"`
	Price       float64 `json:"price" binding:"money"`
	Quantity    int     `json:"quantity" binding:"gte=0"`
	Category    string  `json:"category" binding:"max=100"`
	ImageURL    string  `json:"image_url" binding:"omitempty,url"`
}

type updateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Price       *float64 `json:"price" binding:"omitempty,money"`
	Quantity    *int     `json:"quantity" binding:"omitempty,gte=0"`
	Category    *string  `json:"category" binding:"omitempty,max=100"`
	ImageURL    *string  `json:"image_url" binding:"omitempty,url"`
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Category    string    `json:"category,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProductResponse(p *entity.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductList(items []entity.Product) []productResponse {
	out := make([]productResponse, 0, len(items))
	for i := range items {
		out = append(out, toProductResponse(&items[i]))
	}
	return out
}

// writeProductErr maps service errors onto statuses
func (h *ProductHandler) writeProductErr(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, application.ErrInvalidProductID):
		response.Error[any](c, http.StatusBadRequest, "invalid product id format", nil)
	case errors.Is(err, application.ErrProductNotFound):
		response.Error[any](c, http.StatusNotFound, "product not found", nil)
	case errors.Is(err, application.ErrEmptyPatch):
		response.Error[any](c, http.StatusBadRequest, "product details cannot be empty", nil)
	case errors.Is(err, application.ErrSearchDisabled), errors.Is(err, application.ErrUploadDisabled):
		response.Error[any](c, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(fallback)
		}
		response.Error[any](c, http.StatusInternalServerError, fallback, nil)
	}
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "product details cannot be empty", validation.ToDetails(err))
		return
	}
	p := &entity.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}
	if err := h.Svc.Create(c.Request.Context(), p); err != nil {
		h.writeProductErr(c, err, "failed to create product")
		return
	}
	response.Success(c, http.StatusCreated, toProductResponse(p), "product created", nil)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.writeProductErr(c, err, "failed to list products")
		return
	}
	response.Success(c, http.StatusOK, toProductList(items), "products", gin.H{"count": len(items)})
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeProductErr(c, err, "failed to get product")
		return
	}
	response.Success(c, http.StatusOK, toProductResponse(p), "product", nil)
}

// Update handles PATCH /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "product details cannot be empty", validation.ToDetails(err))
		return
	}
	patch := entity.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}
	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.writeProductErr(c, err, "failed to update product")
		return
	}
	response.Success(c, http.StatusOK, toProductResponse(p), "product updated", nil)
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeProductErr(c, err, "failed to delete product")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "product deleted successfully", nil)
}

// CountAbovePrice handles GET /products/count/:price
func (h *ProductHandler) CountAbovePrice(c *gin.Context) {
	price, err := strconv.ParseFloat(c.Param("price"), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		response.Error[any](c, http.StatusBadRequest, "price must be a number", nil)
		return
	}
	n, err := h.Svc.CountAbovePrice(c.Request.Context(), price)
	if err != nil {
		h.writeProductErr(c, err, "failed to count products")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"productCount": n}, "product count", nil)
}

// Search handles GET /products/search?q=&size=
func (h *ProductHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	items, err := h.Svc.SearchProducts(c.Request.Context(), q, size)
	if err != nil {
		h.writeProductErr(c, err, "failed to search products")
		return
	}
	response.Success(c, http.StatusOK, toProductList(items), "search results", gin.H{"count": len(items)})
}

// UploadImage handles POST /products/:id/image (multipart field "image")
func (h *ProductHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes)
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Error[any](c, http.StatusBadRequest, "file must be an image", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read image", nil)
		return
	}
	defer func() { _ = f.Close() }()

	p, err := h.Svc.UploadImage(c.Request.Context(), c.Param("id"), f, fh.Filename, contentType)
	if err != nil {
		h.writeProductErr(c, err, "failed to upload image")
		return
	}
	response.Success(c, http.StatusOK, toProductResponse(p), "image uploaded", nil)
}
