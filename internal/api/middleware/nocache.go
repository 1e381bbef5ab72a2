package middleware

import "github.com/gin-gonic/gin"

// NoCache 禁止客户端和代理缓存，区块内容每次请求都重新生成
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}
