package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/helpy/paths"
	"github.com/psds-microservice/support-ticket-api/api"
	"github.com/psds-microservice/support-ticket-api/internal/handler"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func New(ticketHandler *handler.TicketHandler, commentHandler *handler.CommentHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET(paths.PathHealth, handler.Health)
	r.GET(paths.PathReady, handler.Ready)
	r.GET(paths.PathSwagger, func(c *gin.Context) { c.Redirect(http.StatusFound, paths.PathSwagger+"/") })
	r.GET(paths.PathSwagger+"/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = paths.PathSwagger + "/index.html"
			c.Request.RequestURI = paths.PathSwagger + "/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	v := r.Group("/api")
	{
		v.GET("/tickets", ticketHandler.List)
		v.POST("/tickets", ticketHandler.Create)
		v.GET("/tickets/:id", ticketHandler.Get)
		v.PATCH("/tickets/:id", ticketHandler.Update)
		v.DELETE("/tickets/:id", ticketHandler.Delete)

		v.GET("/tickets/:id/comments", commentHandler.List)
		v.POST("/tickets/:id/comments", commentHandler.Create)
		v.GET("/tickets/:id/comments/:commentId", commentHandler.Get)
		v.DELETE("/tickets/:id/comments/:commentId", commentHandler.Delete)
	}

	return r
}
