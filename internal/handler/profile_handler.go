package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/poinet/profiler-backend-go/internal/service"
	"github.com/poinet/profiler-backend-go/pkg/response"
)

// ProfileHandler handles HTTP requests for person profiles
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// GetProfile handles GET /api/v1/profile/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.BadRequest(c, "Missing person ID")
		return
	}

	profile, err := h.profileService.BuildProfile(id)
	if errors.Is(err, service.ErrPersonNotFound) {
		response.NotFound(c, "Person not found")
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, profile)
}
