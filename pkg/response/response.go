package response

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var EmptyRequestBodyResponse = Response{
	Status:  StatusError,
	Error:   "Empty Request Body",
	Message: "Request body is empty. Please provide necessary data.",
}

var BadRequestResponse = Response{
	Status:  StatusError,
	Error:   "Bad Request",
	Message: "Failed to parse request body. Please check the data.",
}

var InvalidResourceIDResponse = Response{
	Status:  StatusError,
	Error:   "Invalid Resource ID",
	Message: "The resource id must be an integer.",
}

var EmptyResourceFieldResponse = Response{
	Status:  StatusError,
	Error:   "Validation Error",
	Message: "Resource title and url must be non-empty.",
}

var UnknownResourceTypeResponse = Response{
	Status:  StatusError,
	Error:   "Unknown Resource Type",
	Message: "The resource type must be one of the built-in categories.",
}

var ResourceNotFoundResponse = Response{
	Status:  StatusError,
	Error:   "Resource Not Found",
	Message: "The requested resource was not found.",
}

var ResourceExistsResponse = Response{
	Status:  StatusError,
	Error:   "Resource Exists",
	Message: "A resource with this URL is already saved.",
}

var ServerErrorResponse = Response{
	Status:  StatusError,
	Error:   "Server Error",
	Message: "An internal server error occurred. Please try again later.",
}

type Response struct {
	Status  string            `json:"status"`
	Error   string            `json:"error,omitempty"`
	Message string            `json:"message"`
	Details []validationError `json:"details,omitempty"`
	Data    any               `json:"data,omitempty"`
}

type validationError struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Issue string `json:"issue"`
}

func SuccessResponse(msg string, data ...any) Response {
	resp := Response{
		Status:  StatusSuccess,
		Message: msg,
	}

	if len(data) > 0 {
		resp.Data = data[0]
	}

	return resp
}

func ValidationErrorResponse(err error) Response {
	return Response{
		Status:  StatusError,
		Error:   "Validation Error",
		Message: "The request contains invalid data.",
		Details: getValidationErrors(err),
	}
}

func getValidationErrors(err error) []validationError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	errs := make([]validationError, 0, len(validationErrs))

	for _, fieldErr := range validationErrs {
		verr := validationError{
			Field: fieldErr.Field(),
			Value: fmt.Sprintf("%v", fieldErr.Value()),
		}

		switch fieldErr.Tag() {
		case "required":
			verr.Issue = "This field is required."
		case "url":
			verr.Issue = "Invalid url."
		default:
			verr.Issue = "Invalid value."
		}

		errs = append(errs, verr)
	}

	return errs
}
