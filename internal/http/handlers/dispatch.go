package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"runtime/debug"
	"strings"

	"github.com/go-playground/validator/v10"

	"service-pickup/internal/apperr"
	"service-pickup/internal/domain"
	"service-pickup/internal/http/middleware"
	"service-pickup/internal/logx"
)

// Operation describes one authorized request handler. Every endpoint is an
// Operation run through the same pipeline by Handle.
type Operation[In, Out any] struct {
	// Name is used in logs and denial messages.
	Name string
	// Roles that may call the operation at all.
	Roles []domain.Role
	// Bind fills In from path, query and body. Optional.
	Bind func(w http.ResponseWriter, r *http.Request, in *In) error
	// Run executes the operation for an authenticated actor.
	Run func(ctx context.Context, actor domain.Actor, in In) (Out, error)
	// Status is the success code; 204 writes no body.
	Status int
}

// Dispatcher holds what every operation shares.
type Dispatcher struct {
	logger   logx.Logger
	validate *validator.Validate
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(logger logx.Logger) *Dispatcher {
	if logger == nil {
		logger = logx.Nop()
	}
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)
	return &Dispatcher{logger: logger, validate: v}
}

// fieldName reports fields by their wire names.
func fieldName(f reflect.StructField) string {
	if p := f.Tag.Get("param"); p != "" {
		return p
	}
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// Handle builds the handler for op:
// identity, role, binding, validation, execution, response.
// Panics and unclassified errors become 500s logged with the request id.
func Handle[In, Out any](d *Dispatcher, op Operation[In, Out]) http.HandlerFunc {
	status := op.Status
	if status == 0 {
		status = http.StatusOK
	}

	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				d.logger.Error("operation panicked",
					logx.String("req_id", reqID(r.Context())),
					logx.String("operation", op.Name),
					logx.Any("panic", p),
					logx.String("stack", string(debug.Stack())),
				)
				writeError(d.logger, w, r, fmt.Errorf("%s: panic: %v", op.Name, p))
			}
		}()

		ctx := r.Context()
		actor, ok := middleware.ActorFrom(ctx)
		if !ok {
			writeError(d.logger, w, r, apperr.Unauthenticated("Missing or invalid identity claims"))
			return
		}
		if !actor.HasRole(op.Roles...) {
			writeError(d.logger, w, r, apperr.Forbidden(fmt.Sprintf("Role %s is not allowed to %s", actor.Role, op.Name)))
			return
		}

		var in In
		if op.Bind != nil {
			if err := op.Bind(w, r, &in); err != nil {
				writeError(d.logger, w, r, err)
				return
			}
		}
		if err := d.check(ctx, in); err != nil {
			writeError(d.logger, w, r, err)
			return
		}

		out, err := op.Run(ctx, actor, in)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindInternal {
				err = fmt.Errorf("%s: %w", op.Name, err)
			}
			writeError(d.logger, w, r, err)
			return
		}

		if status == http.StatusNoContent {
			w.WriteHeader(status)
			return
		}
		writeJSON(d.logger, w, r, status, out)
	}
}

// fieldError is one entry of a validation failure.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// check validates struct inputs against their validate tags.
func (d *Dispatcher) check(ctx context.Context, in any) error {
	rv := reflect.ValueOf(in)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	err := d.validate.StructCtx(ctx, in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	details := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return &apperr.Error{
		Kind:    apperr.KindBadRequest,
		Field:   details[0].Field,
		Message: details[0].Message,
		Details: details,
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on the %s rule", fe.Field(), fe.Tag())
	}
}
