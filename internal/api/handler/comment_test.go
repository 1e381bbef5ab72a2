package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/commentblock/config"
	"github.com/qs3c/commentblock/internal/model/dto"
	"github.com/qs3c/commentblock/internal/pkg/response"
	"github.com/qs3c/commentblock/internal/repository"
	"github.com/qs3c/commentblock/internal/service"
	"github.com/qs3c/commentblock/internal/testutil"
)

func setupCommentHandler(t *testing.T) (*CommentHandler, *testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	commentRepo := repository.NewCommentRepository(db)
	nodeRepo := repository.NewNodeRepository(db)

	commentService := service.NewCommentService(commentRepo, nodeRepo, service.NopNotifier{}, &config.Config{})
	handler := NewCommentHandler(commentService)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return handler, &testContext{DB: db}, cleanup
}

func TestCommentHandler_List_Success(t *testing.T) {
	handler, ctx, cleanup := setupCommentHandler(t)
	defer cleanup()

	author := testutil.TestUser(t, ctx.DB)
	commenter := testutil.TestUser(t, ctx.DB)
	node := testutil.TestNode(t, ctx.DB, author.ID, "Artículo")

	testutil.TestComment(t, ctx.DB, commenter.ID, node.ID, "Comment 1")
	testutil.TestComment(t, ctx.DB, commenter.ID, node.ID, "Comment 2")

	router := gin.New()
	router.GET("/nodes/:id/comments", handler.List)

	w := performRequest(router, "GET", fmt.Sprintf("/nodes/%d/comments", node.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), data["total"])
}

func TestCommentHandler_List_Pagination(t *testing.T) {
	handler, ctx, cleanup := setupCommentHandler(t)
	defer cleanup()

	author := testutil.TestUser(t, ctx.DB)
	node := testutil.TestNode(t, ctx.DB, author.ID, "Artículo")
	for i := 0; i < 5; i++ {
		testutil.TestComment(t, ctx.DB, author.ID, node.ID, fmt.Sprintf("Comment %d", i))
	}

	router := gin.New()
	router.GET("/nodes/:id/comments", handler.List)

	w := performRequest(router, "GET", fmt.Sprintf("/nodes/%d/comments?page=2&page_size=2", node.ID), nil)
	resp := parseResponse(t, w)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(5), data["total"])
	assert.Equal(t, float64(2), data["page"])
	items, ok := data["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestCommentHandler_List_NodeNotFound(t *testing.T) {
	handler, _, cleanup := setupCommentHandler(t)
	defer cleanup()

	router := gin.New()
	router.GET("/nodes/:id/comments", handler.List)

	w := performRequest(router, "GET", "/nodes/99999/comments", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestCommentHandler_List_InvalidID(t *testing.T) {
	handler, _, cleanup := setupCommentHandler(t)
	defer cleanup()

	router := gin.New()
	router.GET("/nodes/:id/comments", handler.List)

	w := performRequest(router, "GET", "/nodes/invalid/comments", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestCommentHandler_Create_Success(t *testing.T) {
	handler, ctx, cleanup := setupCommentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	node := testutil.TestNode(t, ctx.DB, user.ID, "Artículo")

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.POST("/nodes/:id/comments", handler.Create)

	req := dto.CreateCommentRequest{Body: "<p>Nuevo comentario</p>"}
	w := performRequest(router, "POST", fmt.Sprintf("/nodes/%d/comments", node.ID), req)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "<p>Nuevo comentario</p>", data["body"])
	assert.Equal(t, "basic_html", data["format"])
}

func TestCommentHandler_Create_Unauthorized(t *testing.T) {
	handler, ctx, cleanup := setupCommentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	node := testutil.TestNode(t, ctx.DB, user.ID, "Artículo")

	router := gin.New()
	router.POST("/nodes/:id/comments", handler.Create)

	req := dto.CreateCommentRequest{Body: "sin login"}
	w := performRequest(router, "POST", fmt.Sprintf("/nodes/%d/comments", node.ID), req)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeAuthFailed, resp.Code)
}

func TestCommentHandler_Create_NodeNotFound(t *testing.T) {
	handler, ctx, cleanup := setupCommentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.POST("/nodes/:id/comments", handler.Create)

	req := dto.CreateCommentRequest{Body: "huérfano"}
	w := performRequest(router, "POST", "/nodes/99999/comments", req)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestCommentHandler_Create_InvalidRequest(t *testing.T) {
	handler, ctx, cleanup := setupCommentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	node := testutil.TestNode(t, ctx.DB, user.ID, "Artículo")

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.POST("/nodes/:id/comments", handler.Create)

	// Empty body
	w := performRequest(router, "POST", fmt.Sprintf("/nodes/%d/comments", node.ID), map[string]string{})
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestCommentHandler_Delete_Success(t *testing.T) {
	handler, ctx, cleanup := setupCommentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	node := testutil.TestNode(t, ctx.DB, user.ID, "Artículo")
	comment := testutil.TestComment(t, ctx.DB, user.ID, node.ID, "borrar")

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.DELETE("/comments/:id", handler.Delete)

	w := performRequest(router, "DELETE", fmt.Sprintf("/comments/%d", comment.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeSuccess, resp.Code)
}

func TestCommentHandler_Delete_NoPermission(t *testing.T) {
	handler, ctx, cleanup := setupCommentHandler(t)
	defer cleanup()

	owner := testutil.TestUser(t, ctx.DB)
	other := testutil.TestUser(t, ctx.DB)
	node := testutil.TestNode(t, ctx.DB, owner.ID, "Artículo")
	comment := testutil.TestComment(t, ctx.DB, owner.ID, node.ID, "mío")

	router := gin.New()
	router.Use(mockAuth(other.ID))
	router.DELETE("/comments/:id", handler.Delete)

	w := performRequest(router, "DELETE", fmt.Sprintf("/comments/%d", comment.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodePermissionDenied, resp.Code)
}

func TestCommentHandler_Delete_NotFound(t *testing.T) {
	handler, ctx, cleanup := setupCommentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.DELETE("/comments/:id", handler.Delete)

	w := performRequest(router, "DELETE", "/comments/99999", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}
