package peakflow

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/asthmaguard/asthmaguard/internal/platform/apperror"
	"github.com/asthmaguard/asthmaguard/internal/platform/auth"
	"github.com/asthmaguard/asthmaguard/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(authed *echo.Group) {
	authed.POST("/readings", h.LogReading)
	authed.GET("/readings", h.History)
	authed.GET("/readings/summary", h.Summary)
}

type logReadingRequest struct {
	Value        float64  `json:"value"`
	PersonalBest *float64 `json:"personal_best,omitempty"`
}

type logReadingResponse struct {
	Reading        *Reading `json:"reading"`
	Classification `json:"classification"`
}

func (h *Handler) LogReading(c echo.Context) error {
	ident, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	var req logReadingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rd, cls, err := h.svc.LogReading(c.Request().Context(), ident.AccountID, req.Value, req.PersonalBest)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, logReadingResponse{Reading: rd, Classification: cls})
}

func (h *Handler) History(c echo.Context) error {
	ident, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	p := pagination.FromContext(c)

	readings, total, err := h.svc.History(c.Request().Context(), ident.AccountID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(readings, total, p.Limit, p.Offset))
}

func (h *Handler) Summary(c echo.Context) error {
	ident, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	var w Window
	if v := c.QueryParam("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be an integer")
		}
		w.Days = n
	}
	if v := c.QueryParam("last"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "last must be an integer")
		}
		w.Last = n
	}

	sum, err := h.svc.Summarize(c.Request().Context(), ident.AccountID, w)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, sum)
}
