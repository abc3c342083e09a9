package mediator

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicq/clinicq/internal/domain/identity"
	"github.com/clinicq/clinicq/internal/domain/ledger"
	"github.com/clinicq/clinicq/internal/domain/queue"
	"github.com/clinicq/clinicq/internal/platform/httperr"
)

// PatientDirectory resolves patient records for desk responses.
type PatientDirectory interface {
	GetByID(ctx context.Context, id int64) (*identity.Patient, error)
}

type Handler struct {
	queue    *queue.Service
	ledgers  *ledger.Service
	patients PatientDirectory
	username string
	password string
	secret   []byte
}

func NewHandler(q *queue.Service, l *ledger.Service, patients PatientDirectory, username, password string, secret []byte) *Handler {
	return &Handler{
		queue:    q,
		ledgers:  l,
		patients: patients,
		username: username,
		password: password,
		secret:   secret,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/mediator/login", h.Login)

	guarded := g.Group("/mediator", AuthMiddleware(h.secret))
	guarded.GET("/queue", h.Queue)
	guarded.POST("/triggerLateArrival", h.TriggerLateArrival)
	guarded.POST("/move-down", h.MoveDown)
	guarded.POST("/check-in/:appointmentId", h.CheckIn)
	guarded.POST("/complete/:appointmentId", h.Complete)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Username != h.username || h.password == "" || req.Password != h.password {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := IssueToken(h.secret, req.Username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"token":   token,
		"role":    RoleMediator,
		"message": "login successful",
	})
}

func (h *Handler) Queue(c echo.Context) error {
	entries, err := h.queue.CurrentQueue(c.Request().Context())
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, entries)
}

type lateArrivalRequest struct {
	PatientID int64 `json:"patientId"`
}

// TriggerLateArrival applies the late penalty against the patient's credit,
// floored at zero. The queue position is untouched; MoveDown is the full path.
func (h *Handler) TriggerLateArrival(c echo.Context) error {
	var req lateArrivalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PatientID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "patientId must be positive")
	}

	ctx := c.Request().Context()

	patient, err := h.patients.GetByID(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, httperr.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return httperr.ToHTTP(err)
	}

	led, deducted, err := h.ledgers.DeductClamped(ctx, req.PatientID, queue.LatePenalty)
	if err != nil {
		if errors.Is(err, httperr.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "ledger not found for patient")
		}
		return httperr.ToHTTP(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":        "late arrival penalty applied",
		"patientId":      patient.ID,
		"patientName":    patient.Name,
		"deductedAmount": deducted,
		"newBalance":     led.CreditBalance,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

// MoveDown reassigns the patient's queue token to the back and applies the
// unclamped penalty in the same transaction.
func (h *Handler) MoveDown(c echo.Context) error {
	var req lateArrivalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	entry, led, err := h.queue.TriggerLateArrival(c.Request().Context(), req.PatientID)
	if err != nil {
		return httperr.ToHTTP(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":          "patient moved to back of queue",
		"patientId":        entry.PatientID,
		"newTokenNumber":   entry.TokenNumber,
		"deductedAmount":   queue.LatePenalty,
		"newBalance":       led.CreditBalance,
		"creditExpiryDate": led.CreditExpiryDate,
	})
}

// CheckIn acknowledges a desk check-in. Arrival tracking beyond the queue
// itself is not persisted yet.
func (h *Handler) CheckIn(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "checked in",
	})
}

// Complete acknowledges consultation completion from the desk view.
func (h *Handler) Complete(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "completed",
	})
}
