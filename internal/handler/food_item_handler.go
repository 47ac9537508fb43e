package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"foodinventory/internal/errors"
	"foodinventory/internal/model"
	"foodinventory/internal/service"
)

// FoodItemHandler handles food item endpoints.
type FoodItemHandler struct {
	svc service.FoodItemService
}

// NewFoodItemHandler creates a new food item handler.
func NewFoodItemHandler(svc service.FoodItemService) *FoodItemHandler {
	return &FoodItemHandler{svc: svc}
}

// FoodItemResponse is the wire representation of a food item.
// Price is written as a JSON number taken from the exact decimal text.
type FoodItemResponse struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price" swaggertype:"number" example:"4.5"`
	Quantity    int         `json:"quantity"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func newFoodItemResponse(item *model.FoodItem) FoodItemResponse {
	return FoodItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       json.Number(item.Price.String()),
		Quantity:    item.Quantity,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// ListItems godoc
// @Summary List food items
// @Tags food-items
// @Produce json
// @Success 200 {array} FoodItemResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /food-items [get]
func (h *FoodItemHandler) ListItems(c echo.Context) error {
	items, err := h.svc.ListItems(c.Request().Context())
	if err != nil {
		return h.fail(c, "list food items", 0, err)
	}

	resp := make([]FoodItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, newFoodItemResponse(&items[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetItem godoc
// @Summary Get food item by id
// @Tags food-items
// @Produce json
// @Param id path int true "Food item ID"
// @Success 200 {object} FoodItemResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /food-items/{id} [get]
func (h *FoodItemHandler) GetItem(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound()
	}

	item, err := h.svc.GetItem(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "get food item", id, err)
	}
	return c.JSON(http.StatusOK, newFoodItemResponse(item))
}

// CreateItem godoc
// @Summary Create food item
// @Tags food-items
// @Accept json
// @Produce json
// @Param item body service.FoodItemInput true "Food item payload; every field is required"
// @Success 201 {object} FoodItemResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /food-items [post]
func (h *FoodItemHandler) CreateItem(c echo.Context) error {
	var input service.FoodItemInput
	if err := c.Bind(&input); err != nil {
		return invalidBody()
	}

	item, err := h.svc.CreateItem(c.Request().Context(), input)
	if err != nil {
		return h.fail(c, "create food item", 0, err)
	}
	return c.JSON(http.StatusCreated, newFoodItemResponse(item))
}

// UpdateItem godoc
// @Summary Update food item
// @Description Replaces only the fields present in the body.
// @Tags food-items
// @Accept json
// @Produce json
// @Param id path int true "Food item ID"
// @Param item body service.FoodItemInput true "Any subset of the food item fields"
// @Success 200 {object} FoodItemResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /food-items/{id} [put]
func (h *FoodItemHandler) UpdateItem(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound()
	}

	var input service.FoodItemInput
	if err := c.Bind(&input); err != nil {
		return invalidBody()
	}

	item, err := h.svc.UpdateItem(c.Request().Context(), id, input)
	if err != nil {
		return h.fail(c, "update food item", id, err)
	}
	return c.JSON(http.StatusOK, newFoodItemResponse(item))
}

// DeleteItem godoc
// @Summary Delete food item
// @Tags food-items
// @Param id path int true "Food item ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /food-items/{id} [delete]
func (h *FoodItemHandler) DeleteItem(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound()
	}

	removed, err := h.svc.DeleteItem(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "delete food item", id, err)
	}
	if !removed {
		return notFound()
	}
	return c.NoContent(http.StatusNoContent)
}

// parseID reads the :id path parameter. Ids that are not positive integers
// cannot name a stored row.
func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// fail maps a service error to an HTTP error. Server-side failures are logged
// with the operation and id and reported to the caller without detail.
func (h *FoodItemHandler) fail(c echo.Context, op string, id uint, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		if id != 0 {
			c.Logger().Errorf("%s %d: %v", op, id, err)
		} else {
			c.Logger().Errorf("%s: %v", op, err)
		}
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func notFound() error {
	httpErr := errors.MapErrorToHTTP(errors.ErrFoodItemNotFound)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func invalidBody() error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_REQUEST",
	})
}
