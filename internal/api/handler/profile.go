package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/qs3c/commentblock/internal/pkg/block"
	"github.com/qs3c/commentblock/internal/service"
	"github.com/qs3c/commentblock/internal/web"
)

type ProfileHandler struct {
	blockService *service.CommentBlockService
}

func NewProfileHandler(blockService *service.CommentBlockService) *ProfileHandler {
	return &ProfileHandler{
		blockService: blockService,
	}
}

// Show 用户资料页，内嵌评论区块
// GET /user/:id
func (h *ProfileHandler) Show(c *gin.Context) {
	userID, err := parseUserID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, web.NotFoundTemplate, nil)
		return
	}

	data, markup, err := h.blockService.Render(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.HTML(http.StatusNotFound, web.NotFoundTemplate, nil)
			return
		}
		log.Error().Err(err).Int64("user_id", userID).Msg("Render profile page failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, web.ProfileTemplate, &web.ProfilePage{
		UserID:   data.UserID,
		Username: data.Username,
		Block:    markup.HTML,
		Stylesheets: lo.Map(markup.Attached.Library, func(l block.Library, _ int) string {
			return l.Href
		}),
	})
}
