package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError carries the status the error page should be served with.
type HTTPError struct {
	Status int
	Err    error
}

func (e *HTTPError) Error() string { return e.Err.Error() }

func (e *HTTPError) Unwrap() error { return e.Err }

// NotFound builds a 404 error with the given message.
func NotFound(message string) error {
	return &HTTPError{Status: http.StatusNotFound, Err: errors.New(message)}
}

// fail records err for ErrorResponder and stops the handler chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorResponder renders the generic error page for the last error recorded
// on the context. Errors without a status are served as 500. The error text
// is only shown when showDetails is set.
func ErrorResponder(showDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := http.StatusInternalServerError
		message := http.StatusText(status)

		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Status
			message = httpErr.Error()
		} else {
			log.Printf("ERROR %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}

		data := gin.H{"Title": "Error", "Message": message, "Status": status}
		if showDetails {
			data["Detail"] = err.Error()
		}
		c.HTML(status, "error.tmpl", data)
	}
}

// NoRoute answers requests that match no route with the 404 page.
func NoRoute(c *gin.Context) {
	fail(c, NotFound("Not Found"))
}
