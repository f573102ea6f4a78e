package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/univcloud/campus-services/pkg/errors"
)

// ErrorBody is the wire format for every rejection: {"details": "<message>"}.
type ErrorBody struct {
	Details string `json:"details"`
}

// JSON sends a success response with the payload as the body.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// List sends a collection response and exposes the total via header.
func List(c *gin.Context, data interface{}, total int) {
	c.Header("Cache-Control", "no-store")
	c.Header("X-Total-Count", strconv.Itoa(total))
	c.JSON(http.StatusOK, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// PDF streams a rendered document inline.
func PDF(c *gin.Context, filename string, doc []byte) {
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

// Error sends an error response converting the error to the details envelope.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, ErrorBody{Details: appErr.Message})
}
