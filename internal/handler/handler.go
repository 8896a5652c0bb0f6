package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"github.com/suteetoe/sareecatalog/internal/service"
	"github.com/suteetoe/sareecatalog/pkg/logger"
	"go.uber.org/zap"
)

// Handler serves the catalog HTTP API
type Handler struct {
	admins      *service.AdminService
	categories  *service.CategoryService
	sarees      *service.SareeService
	varieties   *service.VarietyService
	invites     *service.InviteManager
	dashboard   *service.DashboardService
	serviceName string
}

// Services bundles the dependencies of a Handler
type Services struct {
	Admins     *service.AdminService
	Categories *service.CategoryService
	Sarees     *service.SareeService
	Varieties  *service.VarietyService
	Invites    *service.InviteManager
	Dashboard  *service.DashboardService
}

// New creates a Handler
func New(serviceName string, s Services) *Handler {
	return &Handler{
		admins:      s.Admins,
		categories:  s.Categories,
		sarees:      s.Sarees,
		varieties:   s.Varieties,
		invites:     s.Invites,
		dashboard:   s.Dashboard,
		serviceName: serviceName,
	}
}

// ErrorHandler writes every error as {message} with the status its kind
// maps to. Unknown errors are logged and hidden behind a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := service.StatusOf(err)
	message := err.Error()

	var he *echo.HTTPError
	if status == http.StatusInternalServerError && errors.As(err, &he) {
		status = he.Code
		message = fmt.Sprint(he.Message)
	}
	if status >= http.StatusInternalServerError {
		logger.FromEcho(c).Error("Unhandled request error", zap.Error(err))
		message = http.StatusText(http.StatusInternalServerError)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, echo.Map{"message": message})
	}
	if err != nil {
		logger.FromEcho(c).Error("Failed to write error response", zap.Error(err))
	}
}

// RequestValidator adapts go-playground/validator to echo
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a validator that reports fields by json name
func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Validate checks i and converts the first failure into a ValidationError
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return service.ErrValidation("Invalid request data")
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return service.ErrValidation(fe.Field() + " is required")
	case "url":
		return service.ErrValidation(fe.Field() + " must be a valid URL")
	case "oneof":
		return service.ErrValidation(fe.Field() + " must be one of: " + fe.Param())
	case "gte":
		return service.ErrValidation(fe.Field() + " must be at least " + fe.Param())
	default:
		return service.ErrValidation(fe.Field() + " is invalid")
	}
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		logger.FromEcho(c).Warn("Invalid request data", zap.Error(err))
		return service.ErrValidation("Invalid request data")
	}
	return c.Validate(req)
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, nil
	}
	n, err := cast.ToIntE(raw)
	if err != nil {
		return 0, service.ErrValidation(name + " must be an integer")
	}
	return n, nil
}

func queryFloat(c echo.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return nil, service.ErrValidation(name + " must be a number")
	}
	return &f, nil
}

func queryPaging(c echo.Context) (service.Paging, error) {
	page, err := queryInt(c, "page")
	if err != nil {
		return service.Paging{}, err
	}
	perPage, err := queryInt(c, "per_page")
	if err != nil {
		return service.Paging{}, err
	}
	return service.Paging{Page: page, PerPage: perPage}, nil
}

// queryList reads a repeated parameter; a single comma-separated value is
// split into its parts
func queryList(c echo.Context, name string) []string {
	values := c.QueryParams()[name]
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func message(msg string) echo.Map {
	return echo.Map{"message": msg}
}
