package report

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/asthmaguard/asthmaguard/internal/domain/account"
	"github.com/asthmaguard/asthmaguard/internal/domain/act"
	"github.com/asthmaguard/asthmaguard/internal/domain/peakflow"
	"github.com/asthmaguard/asthmaguard/internal/platform/apperror"
	"github.com/asthmaguard/asthmaguard/internal/platform/auth"
)

// The export reads through the domain services rather than the repos so
// it sees the same data the API serves. These listings do not degrade:
// a broken store fails the export instead of producing an empty file.

type ProfileSource interface {
	Settings(ctx context.Context, accountID uuid.UUID) (*account.Account, error)
}

type ReadingSource interface {
	AllReadings(ctx context.Context, accountID uuid.UUID) ([]peakflow.Reading, error)
}

type ScoreSource interface {
	AllScores(ctx context.Context, accountID uuid.UUID) ([]act.Score, error)
}

type Handler struct {
	profiles ProfileSource
	readings ReadingSource
	scores   ScoreSource
}

func NewHandler(profiles ProfileSource, readings ReadingSource, scores ScoreSource) *Handler {
	return &Handler{profiles: profiles, readings: readings, scores: scores}
}

func (h *Handler) RegisterRoutes(authed *echo.Group) {
	authed.GET("/reports/export", h.Export)
}

func (h *Handler) Export(c echo.Context) error {
	ident, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	ctx := c.Request().Context()

	profile, err := h.profiles.Settings(ctx, ident.AccountID)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	readings, err := h.readings.AllReadings(ctx, ident.AccountID)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	scores, err := h.scores.AllScores(ctx, ident.AccountID)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}

	info := EmergencyInfo{
		City:       c.QueryParam("city"),
		BloodGroup: c.QueryParam("blood_group"),
		Triggers:   splitTriggers(c.QueryParam("triggers")),
	}

	data, err := Workbook(profile, info, readings, scores)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	filename := fmt.Sprintf("asthmaguard-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func splitTriggers(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
