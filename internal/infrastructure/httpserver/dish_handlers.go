package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/what2eat/what2eat/internal/core/domain/dish"
)

// Dish handlers

func (s *Server) createDish(c echo.Context) error {
	var req dish.CreateDishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := s.dishService.CreateDish(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, dish.ErrDuplicateName) {
			return echo.NewHTTPError(http.StatusConflict, "dish name already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create dish")
	}

	return c.JSON(http.StatusCreated, created)
}

func (s *Server) getDish(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid dish ID")
	}

	d, err := s.dishService.GetDish(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, dish.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "dish not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get dish")
	}

	return c.JSON(http.StatusOK, d)
}

// listDishes never rejects query parameters: unknown sort columns, bad
// directions and out-of-range pagination are normalized to safe defaults.
func (s *Server) listDishes(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	q := dish.NewListQuery(
		c.QueryParam("search"),
		c.QueryParam("order_by"),
		c.QueryParam("direction"),
		limit,
		offset,
	)

	dishes, total, err := s.dishService.ListDishes(c.Request().Context(), q)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list dishes")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":  dishes,
		"total":  total,
		"limit":  q.Limit,
		"offset": q.Offset,
	})
}

func (s *Server) updateDish(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid dish ID")
	}

	var req dish.UpdateDishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := s.dishService.UpdateDish(c.Request().Context(), id, &req)
	if err != nil {
		if errors.Is(err, dish.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "dish not found")
		}
		if errors.Is(err, dish.ErrDuplicateName) {
			return echo.NewHTTPError(http.StatusConflict, "dish name already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update dish")
	}

	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteDish(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid dish ID")
	}

	deleted, err := s.dishService.DeleteDish(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete dish")
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "dish not found")
	}

	return c.NoContent(http.StatusNoContent)
}
