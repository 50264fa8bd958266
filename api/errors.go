package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IWhitebird/go-leader-board/internal/apperr"
)

// writeError maps a typed core error to its HTTP status. Any
// error that isn't one of ours is treated as internal and given an opaque
// message, with detail attached only in development.
func writeError(c *gin.Context, err error, development bool) {
	kind := apperr.KindOf(err)

	status := http.StatusInternalServerError
	message := "service is busy"

	switch kind {
	case apperr.KindInvalidArgument:
		status = http.StatusBadRequest
		message = err.Error()
	case apperr.KindNotFound:
		status = http.StatusNotFound
		message = err.Error()
	default:
		if development {
			message = err.Error()
		}
	}

	c.JSON(status, gin.H{"error": message})
}
