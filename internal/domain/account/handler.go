package account

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asthmaguard/asthmaguard/internal/platform/apperror"
	"github.com/asthmaguard/asthmaguard/internal/platform/auth"
)

type Handler struct {
	svc     *Service
	session auth.SessionConfig
}

func NewHandler(svc *Service, session auth.SessionConfig) *Handler {
	return &Handler{svc: svc, session: session}
}

// RegisterRoutes wires the public auth endpoints and the authenticated
// settings endpoints.
func (h *Handler) RegisterRoutes(public, authed *echo.Group) {
	public.POST("/auth/register", h.Register)
	public.POST("/auth/login", h.Login)

	authed.GET("/settings", h.GetSettings)
	authed.PUT("/settings", h.UpdateSettings)
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.Register(c.Request().Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token        string   `json:"token"`
	FullName     string   `json:"full_name"`
	DoctorPhone  *string  `json:"doctor_phone,omitempty"`
	PersonalBest *float64 `json:"personal_best,omitempty"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// Always the same message, never which field was wrong.
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := auth.NewToken(h.session, a.ID, a.Email, a.FullName)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create session")
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:        token,
		FullName:     a.FullName,
		DoctorPhone:  a.DoctorPhone,
		PersonalBest: a.PersonalBest,
	})
}

type settingsResponse struct {
	FullName     string   `json:"full_name"`
	Email        string   `json:"email"`
	DoctorPhone  *string  `json:"doctor_phone,omitempty"`
	PersonalBest *float64 `json:"personal_best,omitempty"`
}

func (h *Handler) GetSettings(c echo.Context) error {
	ident, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	a, err := h.svc.Settings(c.Request().Context(), ident.AccountID)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, settingsResponse{
		FullName:     a.FullName,
		Email:        a.Email,
		DoctorPhone:  a.DoctorPhone,
		PersonalBest: a.PersonalBest,
	})
}

func (h *Handler) UpdateSettings(c echo.Context) error {
	ident, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	var in SettingsUpdate
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateSettings(c.Request().Context(), ident.AccountID, in); err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
