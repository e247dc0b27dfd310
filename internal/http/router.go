// README: HTTP router registration (gin, CORS, logging, recovery).
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campusride/internal/http/handlers"
	"campusride/internal/http/middleware"
	"campusride/internal/modules/matching"
	"campusride/internal/modules/request"
	"campusride/internal/modules/routing"
)

type RouterDeps struct {
	Routing     *routing.Service
	Matching    *matching.Service
	Request     *request.Service
	CORSOrigins []string
	Log         logrus.FieldLogger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(deps.Log), middleware.Logging(deps.Log))
	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	api := r.Group("/api")

	routingHandler := handlers.NewRoutingHandler(deps.Routing)
	api.POST("/routing/shortest-path", routingHandler.ShortestPath)
	api.GET("/routing/destination", routingHandler.Destination)
	api.GET("/routing/graph", routingHandler.Graph)

	matchingHandler := handlers.NewMatchingHandler(deps.Matching)
	api.POST("/matching/corridor", matchingHandler.Corridor)
	api.GET("/matching/simulate", matchingHandler.Simulate)

	requestHandler := handlers.NewRequestHandler(deps.Request)
	api.POST("/requests", requestHandler.Create)
	api.GET("/requests/:id", requestHandler.Get)
	api.POST("/requests/:id/cancel", requestHandler.Cancel)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
