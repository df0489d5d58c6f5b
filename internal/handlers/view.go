package handlers

import (
	"net/http"

	"lab_dashboard/internal/route"
	"lab_dashboard/internal/view"

	"github.com/gin-gonic/gin"
)

const viewPrefix = "/view"

var viewStatus = map[view.State]int{
	view.StateReady:    http.StatusOK,
	view.StateNotFound: http.StatusNotFound,
	view.StateFailed:   http.StatusBadGateway,
}

// @Summary      Resolve a dashboard path
// @Description  "/" returns the lab listing. "/lab/{labId}" redirects to "/lab/{labId}/working". "/lab/{labId}/working" and "/lab/{labId}/non-working" return the lab view snapshot. Any other path redirects to "/".
// @Tags         view
// @Produce      json
// @Param        path  path      string  true  "Dashboard path"  example(lab/lab-a/working)
// @Success      200   {object}  view.Snapshot
// @Success      302   {string}  string  "redirect"
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  view.Snapshot
// @Failure      502   {object}  view.Snapshot
// @Router       /view/{path} [get]
// @Security     BearerAuth
func (h *Handler) getView(c *gin.Context) {
	rt := route.Resolve(c.Param("path"))

	switch rt.Kind {
	case route.KindRedirect:
		c.Redirect(http.StatusFound, viewPrefix+rt.Location)
	case route.KindHome:
		h.listLabs(c)
	default:
		nav := view.NewNavigator(h.services.Monitoring, nil)
		snap := nav.Navigate(c.Request.Context(), rt.LabID, rt.Bucket)
		if snap.State == view.StateFailed && h.log != nil {
			h.log.Errorw("view_load_failed", "lab_id", rt.LabID, "err", snap.Error)
		}
		code, ok := viewStatus[snap.State]
		if !ok {
			code = http.StatusOK
		}
		c.JSON(code, snap)
	}
}
