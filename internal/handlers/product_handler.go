package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// ProductHandler handles product master endpoints.
type ProductHandler struct {
	productService services.ProductServicer
	metricService  services.MetricServicer
	auditService   services.AuditServicer
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService services.ProductServicer, metricService services.MetricServicer, auditService services.AuditServicer) *ProductHandler {
	return &ProductHandler{productService: productService, metricService: metricService, auditService: auditService}
}

// CreateProductRequest represents the request payload for creating a product.
type CreateProductRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	TypeID      *uint      `json:"type_id"`
	RiskLevelID *uint      `json:"risk_level_id"`
	LaunchDate  *time.Time `json:"launch_date"`
	Remark      string     `json:"remark"`
}

// UpdateProductRequest represents the request payload for updating a product.
type UpdateProductRequest struct {
	Name        string     `json:"name" binding:"omitempty,min=1,max=200"`
	TypeID      *uint      `json:"type_id"`
	RiskLevelID *uint      `json:"risk_level_id"`
	LaunchDate  *time.Time `json:"launch_date"`
	Remark      *string    `json:"remark"`
}

// CreateProduct handles creating a product.
// @Summary     Create a product
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       request body CreateProductRequest true "Product details"
// @Success     201 {object} models.Product "Product created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Router      /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	product, err := h.productService.CreateProduct(req.Name, req.TypeID, req.RiskLevelID, req.LaunchDate, req.Remark)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_PRODUCT", "product", product.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// GetProducts handles listing products.
// @Summary     List products
// @Tags        products
// @Produce     json
// @Param       include_inactive query bool false "Include deactivated products"
// @Param       type_id query int false "Filter by product type"
// @Param       page query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 50, max 200)"
// @Success     200 {object} pagination.PageResponse[models.Product] "Paginated products"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /products [get]
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var typeID *uint
	if v := c.Query("type_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "type_id must be an integer"))
			return
		}
		id := uint(parsed)
		typeID = &id
	}

	result, err := h.productService.ListProducts(page, c.Query("include_inactive") == "true", typeID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetProduct handles retrieving one product, deactivated ones included.
// @Summary     Get product by ID
// @Tags        products
// @Produce     json
// @Param       id path int true "Product ID"
// @Success     200 {object} models.Product "Product details"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	product, err := h.productService.GetProductByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// UpdateProduct handles editing a product.
// @Summary     Update product
// @Description Edit a product; renaming is refused once history references it
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       id path int true "Product ID"
// @Param       request body UpdateProductRequest true "Updated fields"
// @Success     200 {object} models.Product "Updated product"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	product, err := h.productService.UpdateProduct(id, req.Name, req.TypeID, req.RiskLevelID, req.LaunchDate, req.Remark)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_PRODUCT", "product", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeactivateProduct handles logically deleting a product.
// @Summary     Deactivate product
// @Description Flip a product to inactive; its metric and ledger history survives
// @Tags        products
// @Produce     json
// @Param       id path int true "Product ID"
// @Success     200 {object} MessageResponse "Product deactivated"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id} [delete]
func (h *ProductHandler) DeactivateProduct(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.productService.DeactivateProduct(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DEACTIVATE_PRODUCT", "product", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Product deactivated"})
}

// RestoreProduct handles re-activating a product.
// @Summary     Restore product
// @Tags        products
// @Produce     json
// @Param       id path int true "Product ID"
// @Success     200 {object} MessageResponse "Product restored"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id}/restore [post]
func (h *ProductHandler) RestoreProduct(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.productService.RestoreProduct(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("RESTORE_PRODUCT", "product", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Product restored"})
}

// GetProductReferences handles the pre-deletion impact check.
// @Summary     Count references to a product
// @Tags        products
// @Produce     json
// @Param       id path int true "Product ID"
// @Success     200 {object} services.ProductReferences "Reference counts"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id}/references [get]
func (h *ProductHandler) GetProductReferences(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	refs, err := h.productService.GetProductReferences(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"references": refs})
}

// GetProductTrend handles the recent metric series for one product.
// @Summary     Get product metric trend
// @Description Most recent observations of one metric for the product, newest first
// @Tags        products
// @Produce     json
// @Param       id path int true "Product ID"
// @Param       metric_id query int true "Metric ID"
// @Param       limit query int false "Max observations (default all)"
// @Success     200 {array} models.MetricObservation "Observations"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /products/{id}/trend [get]
func (h *ProductHandler) GetProductTrend(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	metricID, err := strconv.ParseUint(c.Query("metric_id"), 10, 32)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "metric_id is required"))
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be a non-negative integer"))
			return
		}
	}

	trend, err := h.metricService.ProductTrend(id, uint(metricID), limit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trend": trend})
}
