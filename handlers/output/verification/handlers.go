package verification

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	cache "github.com/theMomax/openmeteogram/cache/verification"
	"github.com/theMomax/openmeteogram/models/grid"
	"github.com/theMomax/openmeteogram/models/meteogram"
	models "github.com/theMomax/openmeteogram/models/verification"
)

// Error constants
var (
	ErrUnknownCity = errors.New("unknown city")
)

// Register takes care of registering all handler functions to the router.
func Register(r *gin.RouterGroup) {
	g := r.Group("verification")
	g.GET("/:slug", handleVerificationRequest)
}

// handleVerificationRequest compares the city's meteogram with the WRF
// output. The model defaults to wrf and can be chosen by the model query
// parameter.
func handleVerificationRequest(ctx *gin.Context) {
	slug := ctx.Param("slug")
	model := ctx.DefaultQuery("model", meteogram.DefaultModel)
	if !meteogram.ValidName(slug) || !meteogram.ValidName(model) {
		ctx.AbortWithError(http.StatusBadRequest, ErrUnknownCity).SetType(gin.ErrorTypeBind)
		return
	}

	dir := meteogram.Directory()
	city, ok := meteogram.Find(meteogram.Cities(dir, model), slug)
	if !ok {
		ctx.AbortWithError(http.StatusNotFound, ErrUnknownCity)
		return
	}

	report, err := cache.Lookup(model+"/"+slug, func() (*models.Report, error) {
		return models.Run(models.ForCity(meteogram.PayloadPath(dir, model, slug), city.Lat, city.Lon))
	})
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			ctx.AbortWithError(http.StatusNotFound, err)
		case errors.Is(err, grid.ErrNoFiles):
			ctx.AbortWithError(http.StatusServiceUnavailable, err)
		default:
			ctx.AbortWithError(http.StatusInternalServerError, err)
		}
		return
	}

	ctx.JSON(http.StatusOK, report)
}
