package act

import (
	"net/http"

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
	authed.POST("/act-scores", h.Submit)
	authed.GET("/act-scores", h.History)
	authed.GET("/act-scores/latest", h.Latest)
}

type submitRequest struct {
	Answers []int `json:"answers"`
}

type submitResponse struct {
	Score          *Score `json:"score"`
	Interpretation string `json:"interpretation"`
}

func (h *Handler) Submit(c echo.Context) error {
	ident, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sc, err := h.svc.Submit(c.Request().Context(), ident.AccountID, req.Answers)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, submitResponse{
		Score:          sc,
		Interpretation: Interpretation(sc.Total),
	})
}

func (h *Handler) Latest(c echo.Context) error {
	ident, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	sc, err := h.svc.Latest(c.Request().Context(), ident.AccountID)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, submitResponse{
		Score:          sc,
		Interpretation: Interpretation(sc.Total),
	})
}

func (h *Handler) History(c echo.Context) error {
	ident, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	p := pagination.FromContext(c)

	scores, total, err := h.svc.History(c.Request().Context(), ident.AccountID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(scores, total, p.Limit, p.Offset))
}
