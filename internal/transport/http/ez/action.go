// Package ez is a thin action registrar over gin: one generic call binds
// input, runs the handler and writes the response envelope with the right
// HTTP status.
package ez

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gym-api/internal/domain"
	resp "go-gym-api/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// Binder selects where the input struct is bound from.
type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // handler reads c.Param itself
)

// AErr carries a business code alongside the message; the code doubles as
// the HTTP status.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Conflict(msg string) error     { return &AErr{Code: resp.CodeConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// FromDomain maps service errors onto transport errors. Unrecognized errors
// become opaque 500s so store internals never leak to clients.
func FromDomain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return NotFound("not found")
	case errors.Is(err, domain.ErrRoutineEntryNotFound):
		return NotFound("exercise not in routine")
	case errors.Is(err, domain.ErrCredentialNotFound):
		return NotFound("credential not found")
	case errors.Is(err, domain.ErrDuplicateEmail):
		return Conflict("email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return Unauthorized("invalid credentials")
	default:
		return Internal("internal error", err)
	}
}

// Action describes one endpoint: I is the bound input, O the payload placed
// in the response envelope.
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Status  int // success HTTP status, default 200
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			var ae *AErr
			if !errors.As(err, &ae) {
				err = FromDomain(err)
				errors.As(err, &ae)
			}
			c.JSON(ae.Code, resp.Error(ae.Code, ae.Msg))
			return
		}
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, resp.OK(out))
	}

	switch a.Method {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPost:
		e.g.POST(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		panic("ez: unsupported method " + a.Method)
	}
}
