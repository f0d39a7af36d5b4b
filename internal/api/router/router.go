package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"

	"github.com/akarpenko/image-normalizer/internal/api/handlers/image"
	"github.com/akarpenko/image-normalizer/internal/middleware"
)

func Setup(h *image.Handler) *ginext.Engine {
	r := ginext.New()

	r.Use(middleware.CORSMiddleware())
	r.Use(ginext.Logger())
	r.Use(ginext.Recovery())

	r.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/normalize", h.Normalize) // synchronous normalization
	api.POST("/jobs", h.EnqueueJob)     // asynchronous normalization
	api.GET("/image", h.Get)            // serving a stored image
	api.DELETE("/image", h.Delete)      // deleting a stored image

	return r
}
