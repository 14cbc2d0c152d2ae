package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var staticFS embed.FS

// RegisterStaticFiles mounts the embedded page on the gin engine. API routes
// registered before this take precedence.
func RegisterStaticFiles(r *gin.Engine) {
	root, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("embed: static sub-fs failed: " + err.Error())
	}
	files := http.FS(root)

	serveIndex := func(c *gin.Context) {
		f, err := files.Open("index.html")
		if err != nil {
			c.String(http.StatusNotFound, "dashboard page not found")
			return
		}
		defer f.Close()
		stat, err := f.Stat()
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.DataFromReader(http.StatusOK, stat.Size(), "text/html; charset=utf-8", f, nil)
	}

	r.GET("/", serveIndex)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}
