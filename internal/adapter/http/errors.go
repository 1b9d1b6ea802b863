package http

import (
	"errors"
	"fmt"

	"resume-builder/internal/usecase"
	"resume-builder/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type apiError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

type ValidationError struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func (e ValidationError) Error() string {
	return "validation failed"
}

var validate = validator.New()

// validateStruct checks the shape of a request DTO.
func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return err
		}
		fields := make(map[string]string, len(errs))
		for _, e := range errs {
			fields[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return ValidationError{Status: fiber.StatusUnprocessableEntity, Errors: fields}
	}
	return nil
}

// fromUsecase maps use case errors onto AppError codes.
func fromUsecase(op string, err error) error {
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		return utils.E(utils.CodeNotFound, op, "session not found", err)
	case errors.Is(err, usecase.ErrUnknownSlice),
		errors.Is(err, usecase.ErrUnknownField),
		errors.Is(err, usecase.ErrFieldValue):
		return utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
	}
	return utils.E(utils.CodeInternal, op, "internal error", err)
}

// ErrorHandler is the fiber error handler of the API.
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ve ValidationError
		if errors.As(err, &ve) {
			return c.Status(ve.Status).JSON(ve)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(apiError{Code: codeForStatus(fe.Code), Message: fe.Message})
		}

		status := utils.HTTPStatus(err)
		body := apiError{Code: utils.CodeInternal, Message: "internal error"}
		var ae *utils.AppError
		if errors.As(err, &ae) {
			body = apiError{Code: ae.Code, Message: ae.Message}
		}
		if status >= fiber.StatusInternalServerError {
			log.WithError(err).WithField("request_id", c.Locals(localRequestID)).Error("request failed")
		}
		return c.Status(status).JSON(body)
	}
}

func codeForStatus(status int) utils.Code {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return utils.CodeInvalidArgument
	case fiber.StatusUnauthorized:
		return utils.CodeUnauthorized
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return utils.CodeNotFound
	case fiber.StatusServiceUnavailable:
		return utils.CodeUnavailable
	}
	return utils.CodeInternal
}
