package handler

import (
	"net/http"

	"github.com/younger1612/Rd-storev1/internal/apierror"
	"github.com/younger1612/Rd-storev1/internal/dto"
	"github.com/younger1612/Rd-storev1/internal/service"

	"github.com/gin-gonic/gin"
)

type PurchasesHandler struct {
	purchases service.PurchaseService
	ledger    service.LedgerService
}

func NewPurchasesHandler(purchases service.PurchaseService, ledger service.LedgerService) *PurchasesHandler {
	return &PurchasesHandler{purchases: purchases, ledger: ledger}
}

func (h *PurchasesHandler) Record(c *gin.Context) {
	var req dto.RecordPurchaseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	purchase, err := h.ledger.RecordPurchase(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, purchase)
}

func (h *PurchasesHandler) List(c *gin.Context) {
	var filter dto.PurchaseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		fail(c, apierror.NewValidation("invalid query: "+err.Error()))
		return
	}
	purchases, err := h.purchases.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, purchases)
}

func (h *PurchasesHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdatePurchaseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	purchase, err := h.purchases.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, purchase)
}

func (h *PurchasesHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.purchases.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil)
}
