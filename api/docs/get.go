package docs

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/killallgit/converter-api/api/types"
	"github.com/killallgit/converter-api/internal/upload"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	Service        string
	Version        string
	Transcoder     string
	Host           string
	Accept         string
	MaxFileSize    string
	Formats        []string
	SwaggerEnabled bool
}

// Get renders the documentation and demo upload page
func Get(deps *types.Dependencies, swaggerEnabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		formats := upload.SupportedExtensions()
		accept := make([]string, 0, len(formats))
		upper := make([]string, 0, len(formats))
		for _, f := range formats {
			accept = append(accept, "."+f)
			upper = append(upper, strings.ToUpper(f))
		}

		c.Render(http.StatusOK, render.HTML{
			Template: indexTemplate,
			Name:     "index",
			Data: pageData{
				Service:        types.ServiceName,
				Version:        deps.Build.Version,
				Transcoder:     deps.Backend(),
				Host:           c.Request.Host,
				Accept:         strings.Join(append(accept, "video/*"), ","),
				MaxFileSize:    upload.MaxFileSizeLabel,
				Formats:        upper,
				SwaggerEnabled: swaggerEnabled,
			},
		})
	}
}
