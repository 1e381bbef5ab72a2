package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/qs3c/commentblock/internal/model/dto"
	"github.com/qs3c/commentblock/internal/pkg/block"
	"github.com/qs3c/commentblock/internal/pkg/response"
	"github.com/qs3c/commentblock/internal/service"
)

// CommentBlockPayload JSON 接口返回的区块数据和渲染结果
type CommentBlockPayload struct {
	*dto.CommentBlock
	*block.Markup
}

type CommentBlockHandler struct {
	blockService *service.CommentBlockService
}

func NewCommentBlockHandler(blockService *service.CommentBlockService) *CommentBlockHandler {
	return &CommentBlockHandler{
		blockService: blockService,
	}
}

// Fragment 只渲染区块 HTML，用户无效时返回空内容
// GET /blocks/comment_block/:uid
func (h *CommentBlockHandler) Fragment(c *gin.Context) {
	userID, err := parseUserID(c.Param("uid"))
	if err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	_, markup, err := h.blockService.Render(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.Status(http.StatusNoContent)
			return
		}
		log.Error().Err(err).Int64("user_id", userID).Msg("Render comment block failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Link", stylesheetLinks(markup.Attached))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(markup.HTML))
}

// Get 获取区块数据
// GET /api/v1/users/:id/comment-block
func (h *CommentBlockHandler) Get(c *gin.Context) {
	userID, err := parseUserID(c.Param("id"))
	if err != nil {
		response.ParamError(c, "无效的用户ID")
		return
	}

	data, markup, err := h.blockService.Render(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		log.Error().Err(err).Int64("user_id", userID).Msg("Render comment block failed")
		response.ServerError(c, "")
		return
	}

	response.Success(c, &CommentBlockPayload{CommentBlock: data, Markup: markup})
}

// parseUserID 只接受正整数
func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid user id %d", id)
	}
	return id, nil
}

func stylesheetLinks(attached block.Attached) string {
	return strings.Join(lo.Map(attached.Library, func(l block.Library, _ int) string {
		return fmt.Sprintf("<%s>; rel=stylesheet", l.Href)
	}), ", ")
}
