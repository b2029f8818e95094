package httputil

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Allow returns a handler answering OPTIONS requests with an empty response
// and the allow header listing OPTIONS and the given methods.
func Allow(methods ...string) gin.HandlerFunc {
	allow := strings.Join(append([]string{http.MethodOptions}, methods...), ", ")

	return func(c *gin.Context) {
		c.Header("allow", allow)
		c.Status(http.StatusNoContent)
	}
}

var (
	OptionsGet            = Allow(http.MethodGet)
	OptionsPost           = Allow(http.MethodPost)
	OptionsGetPost        = Allow(http.MethodGet, http.MethodPost)
	OptionsGetPatchDelete = Allow(http.MethodGet, http.MethodPatch, http.MethodDelete)
)
