package alert

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/asthmaguard/asthmaguard/internal/domain/account"
	"github.com/asthmaguard/asthmaguard/internal/domain/peakflow"
	"github.com/asthmaguard/asthmaguard/internal/platform/apperror"
	"github.com/asthmaguard/asthmaguard/internal/platform/auth"
	"github.com/asthmaguard/asthmaguard/internal/platform/geo"
)

// ProfileDirectory supplies the patient profile an alert is built from.
// Satisfied by the account service.
type ProfileDirectory interface {
	Settings(ctx context.Context, accountID uuid.UUID) (*account.Account, error)
}

type Handler struct {
	profiles ProfileDirectory
	resolver *geo.Resolver
}

func NewHandler(profiles ProfileDirectory, resolver *geo.Resolver) *Handler {
	return &Handler{profiles: profiles, resolver: resolver}
}

func (h *Handler) RegisterRoutes(authed *echo.Group) {
	authed.POST("/alerts/sos", h.SOS)
	authed.POST("/alerts/red-zone", h.RedZone)
}

type sosRequest struct {
	BloodGroup string           `json:"blood_group"`
	Triggers   []string         `json:"triggers"`
	Coords     *geo.Coordinates `json:"coords,omitempty"`
	City       string           `json:"city"`
}

func (h *Handler) SOS(c echo.Context) error {
	ident, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	var req sosRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	prof, err := h.profiles.Settings(c.Request().Context(), ident.AccountID)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	if prof.DoctorPhone == nil || *prof.DoctorPhone == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "no doctor phone on record, set one in settings")
	}

	loc := h.resolver.Resolve(c.Request().Context(), req.Coords, req.City)

	a, err := Emergency(EmergencyInput{
		PatientName: prof.FullName,
		DoctorPhone: *prof.DoctorPhone,
		BloodGroup:  req.BloodGroup,
		Triggers:    req.Triggers,
		Location:    loc,
	})
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

type redZoneRequest struct {
	Reading      float64  `json:"reading"`
	PersonalBest *float64 `json:"personal_best,omitempty"`
}

func (h *Handler) RedZone(c echo.Context) error {
	ident, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	var req redZoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	prof, err := h.profiles.Settings(c.Request().Context(), ident.AccountID)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	if prof.DoctorPhone == nil || *prof.DoctorPhone == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "no doctor phone on record, set one in settings")
	}

	best := 0.0
	if req.PersonalBest != nil {
		best = *req.PersonalBest
	} else if prof.PersonalBest != nil {
		best = *prof.PersonalBest
	}

	cls, err := peakflow.Classify(req.Reading, best)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	if cls.Zone != peakflow.ZoneRed {
		return echo.NewHTTPError(http.StatusBadRequest, "reading is not in the red zone")
	}

	a, err := RedZone(RedZoneInput{
		PatientName:  prof.FullName,
		DoctorPhone:  *prof.DoctorPhone,
		Ratio:        cls.Ratio,
		Reading:      req.Reading,
		PersonalBest: best,
	})
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, a)
}
