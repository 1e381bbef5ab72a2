package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/commentblock/config"
	"github.com/qs3c/commentblock/internal/api/handler"
	"github.com/qs3c/commentblock/internal/api/middleware"
	"github.com/qs3c/commentblock/internal/pkg/block"
	"github.com/qs3c/commentblock/internal/web"
)

type Router struct {
	authHandler         *handler.AuthHandler
	nodeHandler         *handler.NodeHandler
	commentHandler      *handler.CommentHandler
	commentBlockHandler *handler.CommentBlockHandler
	profileHandler      *handler.ProfileHandler
	websocketHandler    *handler.WebSocketHandler
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	nodeHandler *handler.NodeHandler,
	commentHandler *handler.CommentHandler,
	commentBlockHandler *handler.CommentBlockHandler,
	profileHandler *handler.ProfileHandler,
	websocketHandler *handler.WebSocketHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		nodeHandler:         nodeHandler,
		commentHandler:      commentHandler,
		commentBlockHandler: commentBlockHandler,
		profileHandler:      profileHandler,
		websocketHandler:    websocketHandler,
		cfg:                 cfg,
	}
}

// Setup 组装 gin 引擎，内嵌模板或静态资源加载失败时返回错误
func (r *Router) Setup() (*gin.Engine, error) {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger())
	engine.Use(middleware.CORS(r.cfg.CORS))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tmpl)

	assets, err := block.Assets()
	if err != nil {
		return nil, err
	}
	engine.StaticFS("/static/comment_block", http.FS(assets))

	// 评论区块相关页面，全部禁用缓存
	pages := engine.Group("")
	pages.Use(middleware.NoCache())
	{
		pages.GET("/user/:id", r.profileHandler.Show)
		pages.GET("/blocks/comment_block/:uid", r.commentBlockHandler.Fragment)
		pages.GET("/ws/users/:id/comment-block", r.websocketHandler.CommentBlock)
	}

	api := engine.Group("/api/v1")
	{
		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// 公开接口 - 评论区块
		api.GET("/users/:id/comment-block", middleware.NoCache(), r.commentBlockHandler.Get)

		// 公开接口 - 内容和评论（可选认证）
		public := api.Group("")
		public.Use(middleware.OptionalAuth(r.cfg.JWT.Secret))
		{
			public.GET("/nodes/:id", r.nodeHandler.Get)
			public.GET("/nodes/:id/comments", r.commentHandler.List)
		}

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			authenticated.GET("/auth/me", r.authHandler.Me)
			authenticated.POST("/nodes", r.nodeHandler.Create)
			authenticated.POST("/nodes/:id/comments", r.commentHandler.Create)
			authenticated.DELETE("/comments/:id", r.commentHandler.Delete)
		}
	}

	return engine, nil
}
