package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/theMomax/openmeteogram/config"
	"github.com/theMomax/openmeteogram/handlers/meteogram"
	"github.com/theMomax/openmeteogram/handlers/output"
)

// Register takes care of registering all handler functions to the router.
func Register(r *gin.RouterGroup) {
	r.GET("/health", handleHealth)

	meteogram.Register(r.Group("data"))

	g := r.Group("v1")
	output.Register(g)
}

func handleHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": config.Version,
		"commit":  config.GitCommit,
	})
}
