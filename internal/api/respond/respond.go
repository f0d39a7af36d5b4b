// Package respond holds the response envelope helpers shared by the API
// handlers.
package respond

import (
	"io"
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

// Success wraps the payload of a successful response.
type Success struct {
	Result interface{} `json:"result"`
}

// Error wraps the message of an error response.
type Error struct {
	Message string `json:"message"`
}

// JPEG streams image bytes from reader with an image/jpeg content type.
func JPEG(c *ginext.Context, status int, reader io.Reader) {
	c.DataFromReader(status, -1, "image/jpeg", reader, nil)
}

// OK sends a 200 response with the result wrapped in a Success envelope.
func OK(c *ginext.Context, result interface{}) {
	c.JSON(http.StatusOK, Success{Result: result})
}

// Created sends a 201 response with the result wrapped in a Success envelope.
func Created(c *ginext.Context, result interface{}) {
	c.JSON(http.StatusCreated, Success{Result: result})
}

// Fail sends an error response with the given status code.
func Fail(c *ginext.Context, status int, err error) {
	c.JSON(status, Error{Message: err.Error()})
}
