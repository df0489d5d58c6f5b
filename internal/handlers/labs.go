package handlers

import (
	"errors"
	"net/http"

	"lab_dashboard/internal/inventory"
	"lab_dashboard/internal/route"
	"lab_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errListLabs     = "failed to load labs"
	errLabNotFound  = "lab not found"
	errFetchLab     = "failed to fetch lab inventory"
	errInvalidQuery = "invalid query: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		if sess, ok := sessionFrom(c); ok {
			fields = append(fields, "user_id", sess.UserID)
		}
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// labError maps a lab lookup failure onto a response. Missing labs get a
// link back to the listing.
func (h *Handler) labError(c *gin.Context, logKey, labID string, err error) {
	if errors.Is(err, service.ErrLabNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": errLabNotFound, "home": route.HomePath})
		return
	}
	h.logAndJSONError(c, http.StatusBadGateway, errFetchLab, logKey, err, "lab_id", labID)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      List labs
// @Description  Lab overviews with current stats. q matches name, location or person in charge, case-insensitively.
// @Tags         labs
// @Produce      json
// @Param        q    query     string  false  "Search text"
// @Success      200  {object}  map[string]interface{}  "count, labs"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/labs [get]
// @Security     BearerAuth
func (h *Handler) listLabs(c *gin.Context) {
	q := c.Query("q")
	labs, err := h.services.Monitoring.ListLabs(c.Request.Context(), q)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListLabs, "labs_list_failed", err, "q", q)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(labs),
		"labs":  labs,
	})
}

// @Summary      Get lab
// @Description  Lab with stats and every computer.
// @Tags         labs
// @Produce      json
// @Param        labId  path      string  true  "Lab id"  example(lab-a)
// @Success      200    {object}  models.LabDetail
// @Failure      401    {object}  map[string]string
// @Failure      404    {object}  map[string]string  "error, home"
// @Failure      502    {object}  map[string]string
// @Router       /api/v1/labs/{labId} [get]
// @Security     BearerAuth
func (h *Handler) getLab(c *gin.Context) {
	labID := c.Param("labId")
	detail, err := h.services.Monitoring.GetLab(c.Request.Context(), labID)
	if err != nil {
		h.labError(c, "lab_get_failed", labID, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary      List computers
// @Description  Computers of a lab filtered by search text (name or id) and status bucket.
// @Tags         labs
// @Produce      json
// @Param        labId   path      string  true   "Lab id"  example(lab-a)
// @Param        q       query     string  false  "Search text"  example(PC-01)
// @Param        bucket  query     string  false  "Status bucket"  Enums(all,working,not_working)
// @Success      200     {object}  map[string]interface{}  "count, computers"
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      502     {object}  map[string]string
// @Router       /api/v1/labs/{labId}/computers [get]
// @Security     BearerAuth
func (h *Handler) listComputers(c *gin.Context) {
	labID := c.Param("labId")
	bucket, err := inventory.ParseBucket(c.Query("bucket"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidQuery + err.Error()})
		return
	}
	computers, err := h.services.Monitoring.ListComputers(c.Request.Context(), labID, c.Query("q"), bucket)
	if err != nil {
		h.labError(c, "computers_list_failed", labID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(computers),
		"computers": computers,
	})
}
