// Package web serves the browser form for the tailoring API.
package web

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed index.html
var indexHTML []byte

// RegisterRoutes serves the form at "/".
func RegisterRoutes(r gin.IRoutes) {
	r.GET("/", serveIndex)
}

func serveIndex(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}
