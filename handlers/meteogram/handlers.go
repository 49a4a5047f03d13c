package meteogram

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	models "github.com/theMomax/openmeteogram/models/meteogram"
)

// Error constants
var (
	ErrInvalidName = errors.New("invalid model or city name")
)

// Register takes care of registering all handler functions to the router.
func Register(r *gin.RouterGroup) {
	g := r.Group("meteogram")
	g.GET("/:model/:file", handleFile)
}

// handleFile serves a model's cities.json or one of its <slug>.json
// meteograms.
func handleFile(ctx *gin.Context) {
	model := ctx.Param("model")
	file := ctx.Param("file")
	if file == models.CitiesFile {
		handleCities(ctx, model)
		return
	}

	slug := strings.TrimSuffix(file, ".json")
	if slug == file || !models.ValidName(model) || !models.ValidName(slug) {
		ctx.AbortWithError(http.StatusNotFound, ErrInvalidName).SetType(gin.ErrorTypeBind)
		return
	}

	dir := models.Directory()
	p, err := models.Load(models.PayloadPath(dir, model, slug))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			ctx.AbortWithError(http.StatusNotFound, err)
			return
		}
		ctx.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	city, _ := models.Find(models.Cities(dir, model), slug)
	p.Normalize(city)
	ctx.JSON(http.StatusOK, p)
}

func handleCities(ctx *gin.Context, model string) {
	if !models.ValidName(model) {
		ctx.AbortWithError(http.StatusNotFound, ErrInvalidName).SetType(gin.ErrorTypeBind)
		return
	}
	ctx.JSON(http.StatusOK, models.Cities(models.Directory(), model))
}
