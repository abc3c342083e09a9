package ledger

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicq/clinicq/internal/domain/identity"
	"github.com/clinicq/clinicq/internal/platform/httperr"
)

// PatientDirectory resolves patient existence. identity.PatientRepository
// satisfies it.
type PatientDirectory interface {
	GetByID(ctx context.Context, id int64) (*identity.Patient, error)
}

type Handler struct {
	svc      *Service
	patients PatientDirectory
}

func NewHandler(svc *Service, patients PatientDirectory) *Handler {
	return &Handler{svc: svc, patients: patients}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	balance := api.Group("/doctor/balance")
	balance.GET("/:patientId", h.GetLedger)
	balance.POST("/:patientId/adjust", h.Adjust)
}

// resolvePatient parses the path param and confirms the patient exists. The
// ledger row carries a foreign key to patients, so an unknown id has to be a
// 404 here rather than a constraint violation at insert time.
func (h *Handler) resolvePatient(c echo.Context) (int64, error) {
	patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil || patientID <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid patientId")
	}
	if _, err := h.patients.GetByID(c.Request().Context(), patientID); err != nil {
		return 0, httperr.ToHTTP(err)
	}
	return patientID, nil
}

func (h *Handler) GetLedger(c echo.Context) error {
	patientID, err := h.resolvePatient(c)
	if err != nil {
		return err
	}
	l, err := h.svc.GetOrCreateLedger(c.Request().Context(), patientID)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) Adjust(c echo.Context) error {
	patientID, err := h.resolvePatient(c)
	if err != nil {
		return err
	}
	amount, err := strconv.Atoi(c.QueryParam("amount"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid amount")
	}
	var expiry *time.Time
	if raw := c.QueryParam("expiry"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid expiry, want YYYY-MM-DD")
		}
		expiry = &t
	}

	l, err := h.svc.AdjustCredit(c.Request().Context(), patientID, amount, expiry)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, l)
}
