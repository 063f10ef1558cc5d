package handler

import (
	"net/http"

	"github.com/Shunea/be-easyreserv-sub000/internal/apierror"
	"github.com/Shunea/be-easyreserv-sub000/internal/dto"
	"github.com/Shunea/be-easyreserv-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler { return &StockHandler{svc: svc} }

// List godoc
// @Summary      List warehouse stock
// @Description  Returns the restaurant's stock rows with derived status, filterable by category and status.
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        category query string false "Category filter"
// @Param        status   query string false "OK | LOW | CRITICAL | EXPIRED"
// @Param        page     query int    false "Page (default 1)"
// @Param        limit    query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.StockListResponse
// @Failure      400 {object} apierror.APIError
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/stock [get]
func (h *StockHandler) List(c *gin.Context) {
	var filter dto.StockFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		validationFailed(c, err)
		return
	}

	resp, err := h.svc.List(c.Request.Context(), actorFromClaims(c).RestaurantID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Adjust godoc
// @Summary      Manually correct a stock row
// @Description  Applies a signed grams-equivalent delta through the ledger, with the same row locking and non-negativity rules as order deduction.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "Stock UUID"
// @Param        body body dto.AdjustStockRequest true "Signed delta and reason"
// @Success      200  {object} dto.StockResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/stock/{id} [patch]
func (h *StockHandler) Adjust(c *gin.Context) {
	stockID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid stock ID"))
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Adjust(c.Request.Context(), actorFromClaims(c), stockID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
