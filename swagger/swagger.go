// package swagger serves the OpenAPI document of the REST surface.
package swagger

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed openapi.yaml
var content embed.FS

func GetHandler() (http.Handler, error) {
	subFS, err := fs.Sub(content, ".")
	if err != nil {
		return nil, err
	}

	return http.FileServer(http.FS(subFS)), nil
}
