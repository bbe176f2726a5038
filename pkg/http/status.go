package xhttp

import "github.com/valyala/fasthttp"

const (
	StatusOK                    = fasthttp.StatusOK
	StatusCreated               = fasthttp.StatusCreated
	StatusNoContent             = fasthttp.StatusNoContent
	StatusSeeOther              = fasthttp.StatusSeeOther
	StatusBadRequest            = fasthttp.StatusBadRequest
	StatusNotFound              = fasthttp.StatusNotFound
	StatusMethodNotAllowed      = fasthttp.StatusMethodNotAllowed
	StatusRequestTimeout        = fasthttp.StatusRequestTimeout
	StatusConflict              = fasthttp.StatusConflict
	StatusRequestEntityTooLarge = fasthttp.StatusRequestEntityTooLarge
	StatusInternalServerError   = fasthttp.StatusInternalServerError
	StatusBadGateway            = fasthttp.StatusBadGateway
	StatusServiceUnavailable    = fasthttp.StatusServiceUnavailable
)

// StatusText returns the reason phrase for code.
func StatusText(code int) string {
	return fasthttp.StatusMessage(code)
}
