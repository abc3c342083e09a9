package identity

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicq/clinicq/internal/platform/httperr"
	"github.com/clinicq/clinicq/pkg/pagination"
)

type Handler struct {
	svc           *Service
	clinicAddress string
}

func NewHandler(svc *Service, clinicAddress string) *Handler {
	return &Handler{svc: svc, clinicAddress: clinicAddress}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/accounts/login", h.Login)
	api.POST("/accounts/:accountId/patients", h.AddPatient)
	api.GET("/accounts/:accountId/patients", h.AccountPatients)

	api.POST("/patient", h.CreatePatient)
	api.GET("/patient", h.ListPatients)

	api.POST("/doctors", h.CreateDoctor)
	api.GET("/doctors", h.ListDoctors)
	api.GET("/doctors/:doctorId", h.GetDoctor)
	api.GET("/doctor/:doctorId/clinic-details", h.ClinicDetails)
}

type loginRequest struct {
	PhoneNumber       string `json:"phoneNumber"`
	PrimaryNationalID string `json:"primaryNationalId"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, created, err := h.svc.Login(c.Request().Context(), req.PhoneNumber, req.PrimaryNationalID)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	if created {
		return c.JSON(http.StatusCreated, a)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) AddPatient(c echo.Context) error {
	accountID, err := strconv.ParseInt(c.Param("accountId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid accountId")
	}
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AddPatient(c.Request().Context(), accountID, &p); err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) AccountPatients(c echo.Context) error {
	accountID, err := strconv.ParseInt(c.Param("accountId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid accountId")
	}
	patients, err := h.svc.AccountPatients(c.Request().Context(), accountID)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreatePatient(c.Request().Context(), &p); err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPatients(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) CreateDoctor(c echo.Context) error {
	var d Doctor
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateDoctor(c.Request().Context(), &d); err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	doctorID, err := strconv.ParseInt(c.Param("doctorId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctorId")
	}
	d, err := h.svc.GetDoctor(c.Request().Context(), doctorID)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListDoctors(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// ClinicDetails returns the clinic address snapshot for a doctor. The
// address is clinic-wide configuration, not per-doctor data.
func (h *Handler) ClinicDetails(c echo.Context) error {
	doctorID, err := strconv.ParseInt(c.Param("doctorId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctorId")
	}
	if _, err := h.svc.GetDoctor(c.Request().Context(), doctorID); err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"clinicAddress": h.clinicAddress,
	})
}
