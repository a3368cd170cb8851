package gateway

import "github.com/gin-gonic/gin"

func Inject(key string, cl *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(key, cl)
	}
}
