package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create  *ucBooking.CreateBooking
	read    *ucBooking.ReadBooking
	update  *ucBooking.UpdateBooking
	cancel  *ucBooking.CancelBooking
	history *ucBooking.History
	log     *zap.Logger
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	read *ucBooking.ReadBooking,
	update *ucBooking.UpdateBooking,
	cancel *ucBooking.CancelBooking,
	history *ucBooking.History,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		create:  create,
		read:    read,
		update:  update,
		cancel:  cancel,
		history: history,
		log:     log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// BookingRequest is shared by create and update. Presence and format are
// checked by the core so both paths report the same error codes.
type BookingRequest struct {
	BarberID    uint   `json:"barber_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

func (r BookingRequest) input(userID string) domain.Input {
	return domain.Input{
		UserID:   userID,
		BarberID: r.BarberID,
		Date:     r.Date,
		Time:     r.Time,
		Name:     r.Name,
		Phone:    r.PhoneNumber,
	}
}

func (h *BookingHandler) bind(c *gin.Context) (BookingRequest, bool) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return req, false
	}
	return req, true
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	booking, err := h.create.Execute(c.Request.Context(), req.input(middleware.UserUID(c)))
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	httpresp.Created(c, "Booking created successfully", booking)
}

// ======================================================
// READ
// ======================================================

func (h *BookingHandler) Read(c *gin.Context) {
	view, err := h.read.Execute(c.Request.Context(), middleware.UserUID(c))
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	httpresp.OK(c, view)
}

// ======================================================
// UPDATE
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	booking, err := h.update.Execute(c.Request.Context(), req.input(middleware.UserUID(c)))
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	httpresp.Message(c, "Booking updated successfully", booking)
}

// ======================================================
// DELETE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	scheduleID, err := h.cancel.Execute(c.Request.Context(), middleware.UserUID(c))
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	httpresp.Message(c, "Booking cancelled successfully", gin.H{"schedule_id": scheduleID})
}

// ======================================================
// HISTORY
// ======================================================

func (h *BookingHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	out, err := h.history.Execute(c.Request.Context(), middleware.UserUID(c), page, limit)
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}

	httpresp.OK(c, out)
}
