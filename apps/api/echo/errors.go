package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/jltacademy/backend/core"
	"github.com/jltacademy/backend/core/course"
	"github.com/jltacademy/backend/core/slider"
	"github.com/jltacademy/backend/core/user"
	"github.com/jltacademy/backend/core/webinar"
)

var (
	errUnauthorized     = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errHttpForbidden    = echo.NewHTTPError(http.StatusForbidden, "admin access required")
	errHttpUserNotFound = echo.NewHTTPError(http.StatusNotFound, "user not found")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
			if code == http.StatusNotFound && message == http.StatusText(http.StatusNotFound) {
				message = "route not found"
			}
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
			}
			code = http.StatusBadRequest
			message = echo.Map{"error": "invalid input", "fields": fldErrs}
		case *core.ValidationError:
			msg := origErr.Error()
			if msg == "" {
				msg = "invalid input"
			}
			body := echo.Map{"error": msg}
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				body["fields"] = fldErrs
			}
			code = http.StatusBadRequest
			message = body
		default:
			switch origErr {
			case user.ErrInvalidCredentials:
				code = http.StatusUnauthorized
				message = origErr.Error()
			case user.ErrWrongPassword:
				code = http.StatusBadRequest
				message = origErr.Error()
			case user.ErrNotFound, course.ErrNotFound, webinar.ErrNotFound, slider.ErrNotFound:
				code = http.StatusNotFound
				message = origErr.Error()
			case core.ErrUnsupportedMediaType:
				code = http.StatusUnsupportedMediaType
				message = origErr.Error()
			case core.ErrFileTooLarge:
				code = http.StatusRequestEntityTooLarge
				message = origErr.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := "internal server error"
				if ctx.Echo().Debug {
					msg = err.Error()
				}
				message = msg

				var usr user.User
				if claims, cErr := getContextClaims(ctx); cErr == nil {
					usr.Username = claims.Username
				}
				logger.Error("internal server error", errors.Wrap(err, "internal server error"), usr)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
