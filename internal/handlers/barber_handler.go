package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucCatalog "github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
)

// ======================================================
// HANDLER
// ======================================================

type BarberHandler struct {
	listBarbers  *ucCatalog.ListBarbers
	listSchedule *ucCatalog.ListSchedule
	log          *zap.Logger
}

func NewBarberHandler(
	listBarbers *ucCatalog.ListBarbers,
	listSchedule *ucCatalog.ListSchedule,
	log *zap.Logger,
) *BarberHandler {
	return &BarberHandler{
		listBarbers:  listBarbers,
		listSchedule: listSchedule,
		log:          log,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *BarberHandler) List(c *gin.Context) {
	barbers, err := h.listBarbers.Execute(c.Request.Context())
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}
	httpresp.List(c, barbers)
}

// ======================================================
// SCHEDULE
// ======================================================

func (h *BarberHandler) Schedule(c *gin.Context) {
	barberID, ok := barberIDParam(c)
	if !ok {
		return
	}

	slots, err := h.listSchedule.All(c.Request.Context(), barberID)
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}
	httpresp.List(c, slots)
}

func (h *BarberHandler) AvailableSchedule(c *gin.Context) {
	barberID, ok := barberIDParam(c)
	if !ok {
		return
	}

	slots, err := h.listSchedule.Available(c.Request.Context(), barberID)
	if err != nil {
		httperr.FromError(c, h.log, err)
		return
	}
	httpresp.List(c, slots)
}

func barberIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_barber_id", "Invalid barber id")
		return 0, false
	}
	return uint(id), true
}
