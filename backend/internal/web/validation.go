package web

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "socialgraph/backend/pkg/errors"
)

// field is a named, already trimmed input value
type field struct {
	name  string
	value string
}

// requireFields returns a BlankField error for the first empty value
func requireFields(fields ...field) error {
	for _, f := range fields {
		if f.value == "" {
			return apperrors.NewBlankField(f.name)
		}
	}
	return nil
}

// parseIndex converts a post index string. Range checks are left to the
// engine, which knows the feed length.
func parseIndex(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperrors.NewBlankField("post_index")
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewInvalidIndexFormat(raw, err)
	}
	return i, nil
}

// statusFor maps an error kind to its HTTP status
func statusFor(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.ErrorTypeBlankField,
		apperrors.ErrorTypeInvalidIndexFormat,
		apperrors.ErrorTypeIndexOutOfRange,
		apperrors.ErrorTypeInvalidBody:
		return http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeDuplicateName:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
