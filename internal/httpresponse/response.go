package httpresponse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	apperrors "go_rules/internal/errors"
)

type Response[T any] struct {
	Status int `json:"Status"`
	Body   any `json:"Body,omitempty"`
}

type ErrorResponse struct {
	ErrorDescription string `json:"ErrorDescription"`
}

const INTERNALERRORJSON = "{\"Status\": 500,\"Body\":{\"ErrorDescription\": \"Internal server error\"}}"

const MALFORMEDJSON_errorDesc = "json unmarshalling error"

func WriteResponseWithStatus(w http.ResponseWriter, status int, body any) {
	jsonByte, err := marshalStatusJson(status, body)
	if err != nil {
		WriteInternalErrorResponse(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(jsonByte)
}

func marshalStatusJson(status int, body any) ([]byte, error) {
	response := Response[any]{
		Status: status,
		Body:   body,
	}
	marshal, err := json.Marshal(response)
	if err != nil {
		return nil, err
	}
	return marshal, nil
}

func WriteInternalErrorResponse(w http.ResponseWriter) {
	// implementation similar to http.Error, only difference is the Content-type
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintln(w, INTERNALERRORJSON)
}

// StatusOf maps domain errors to HTTP status codes.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrIllegalMove), errors.Is(err, apperrors.ErrGameFinished):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidBoardSize),
		errors.Is(err, apperrors.ErrMalformedBoard),
		errors.Is(err, apperrors.ErrInvalidVertex),
		errors.Is(err, apperrors.ErrInvalidColor):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// WriteError hides the details of unexpected errors from the client.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		WriteInternalErrorResponse(w)
		return
	}
	WriteResponseWithStatus(w, status, ErrorResponse{ErrorDescription: err.Error()})
}
