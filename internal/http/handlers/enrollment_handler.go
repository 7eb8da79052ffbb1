package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/picocico/StudentManagement-sub000/internal/ident"
)

// UpdateStatusRequest is the payload for moving an enrollment forward.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required" example:"confirmed"`
}

// UpdateEnrollmentStatus godoc
// @ID          updateEnrollmentStatus
// @Summary     Advance an enrollment status
// @Description Moves an enrollment forward through provisional, confirmed, in_progress, completed. Backwards moves are rejected.
// @Tags        Enrollments
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Enrollment ID (URL-safe base64)"
// @Param       body  body  handlers.UpdateStatusRequest  true  "New status"
//
// @Success     204  "No content"
// @Failure     400  {object}  apierr.ErrorResponse  "Unknown status or backwards transition"
// @Failure     404  {object}  apierr.ErrorResponse  "Enrollment not found"
// @Router      /enrollments/{id}/status [put]
func (h *Handlers) UpdateEnrollmentStatus(c *gin.Context) {
	id, err := ident.Base64ToUUIDString(c.Param("id"))
	if err != nil {
		Respond(c, err)
		return
	}
	var req UpdateStatusRequest
	if err := decodeJSONBody(c, &req); err != nil {
		Respond(c, err)
		return
	}
	if err := h.enrollments.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		Respond(c, err)
		return
	}
	noContent(c)
}
