package handler

import (
	"net/http"
	"strconv"

	"marketplace/internal/repository"
	"marketplace/internal/usecase"
	"marketplace/internal/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /api/product の読み取り専用API。
// クライアントが在庫と価格を確認するために叩く。
type ProductHandler struct {
	typeRepo repository.ProductTypeRepository
}

// DI
func NewProductHandler(typeRepo repository.ProductTypeRepository) *ProductHandler {
	return &ProductHandler{typeRepo: typeRepo}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/product/:productId/productType", h.getProductType)
}

// 価格・在庫のスナップショット読み取り
func (h *ProductHandler) getProductType(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
	}

	raw := c.QueryParam("productTypeId")
	if !validator.IsValidQuantity(raw) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product type id"})
	}
	typeID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || typeID <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product type id"})
	}

	pt, err := h.typeRepo.FindByProductAndID(c.Request().Context(), productID, typeID)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "product type not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, pt)
}
