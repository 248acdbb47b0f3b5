package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// WantsJSON reports whether the client asked for JSON rather than an HTML page.
func WantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// AbortWithMessage stops the handler chain. JSON clients get the error
// envelope, browsers get the shared error page.
func AbortWithMessage(c *gin.Context, code int, message string) {
	if WantsJSON(c) {
		c.AbortWithStatusJSON(code, JSONResponse{Status: false, Message: message})
		return
	}
	c.HTML(code, "error.html", gin.H{
		"Title":   http.StatusText(code),
		"Status":  code,
		"Message": message,
	})
	c.Abort()
}
