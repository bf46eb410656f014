package handler

import (
	"net/http"

	"github.com/younger1612/Rd-storev1/internal/dto"
	"github.com/younger1612/Rd-storev1/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductsHandler struct {
	products service.ProductService
	ledger   service.LedgerService
}

func NewProductsHandler(products service.ProductService, ledger service.LedgerService) *ProductsHandler {
	return &ProductsHandler{products: products, ledger: ledger}
}

func (h *ProductsHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, products)
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, product)
}

// AdjustStock and AdjustPrice answer with the flat result shape the front end
// expects, not the data envelope.
func (h *ProductsHandler) AdjustStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	result, err := h.ledger.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ProductsHandler) AdjustPrice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AdjustPriceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	result, err := h.ledger.AdjustPrice(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ProductsHandler) ReplaceSpecs(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ReplaceSpecsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	product, err := h.products.ReplaceSpecs(c.Request.Context(), id, req.Specs)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, product)
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	name, err := h.ledger.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "product deleted: "+name, nil)
}

func (h *ProductsHandler) AdjustmentHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	history, err := h.products.AdjustmentHistory(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, history)
}
