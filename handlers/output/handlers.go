package output

import (
	"github.com/gin-gonic/gin"
	"github.com/theMomax/openmeteogram/handlers/output/verification"
)

// Register takes care of registering all handler functions to the router.
func Register(r *gin.RouterGroup) {
	g := r.Group("output")
	verification.Register(g)
}
