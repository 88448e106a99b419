package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/avatarctic/shotchart-service/internal/core/domain/player"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const (
	defaultSearchLimit = 10
	maxPlayerID        = 9999999
)

// requestValidator adapts go-playground/validator to echo.Validator.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New()
	// Report the wire name of a field (q, limit, id, playerIds) instead of the Go name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"query", "param", "json"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("season", func(fl validator.FieldLevel) bool {
		_, err := player.ParseSeason(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("season_type", func(fl validator.FieldLevel) bool {
		return player.ValidSeasonType(fl.Field().String())
	})
	return &requestValidator{validate: v}
}

func (r *requestValidator) Validate(i any) error {
	return r.validate.Struct(i)
}

// validationError converts the first failed rule into an APIError.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return newAPIError(http.StatusBadRequest, CodeInvalidRequest, err.Error())
	}
	fe := verrs[0]
	return fieldError(fe.Field(), fe.Tag(), fe.Value())
}

// bindError converts a query or path parsing failure into an APIError.
func bindError(err error) error {
	var berr *echo.BindingError
	if errors.As(err, &berr) {
		return fieldError(berr.Field, "type", nil)
	}
	return newAPIError(http.StatusBadRequest, CodeInvalidRequest, "invalid request")
}

func fieldError(field, tag string, value any) *APIError {
	// list elements are reported as playerIds[3]
	field, _, _ = strings.Cut(field, "[")

	switch field {
	case "q":
		switch tag {
		case "required":
			return newAPIError(http.StatusBadRequest, CodeMissingQuery, `Search query parameter "q" is required`)
		case "min":
			return newAPIError(http.StatusBadRequest, CodeQueryTooShort, "Search query must be at least 2 characters long")
		default:
			return newAPIError(http.StatusBadRequest, CodeQueryTooLong, "Search query must be at most 100 characters long")
		}
	case "limit":
		return newAPIError(http.StatusBadRequest, CodeInvalidLimit, "Limit must be between 1 and 50")
	case "id", "playerIds":
		return newAPIError(http.StatusBadRequest, CodeInvalidPlayerID, fmt.Sprintf("Player ID must be an integer between 1 and %d", maxPlayerID))
	case "season", "seasons":
		msg := `Season must be in format YYYY-YY (e.g. "2023-24")`
		if s, ok := value.(string); ok {
			if _, err := player.ParseSeason(s); err != nil {
				msg = err.Error()
			}
		}
		return newAPIError(http.StatusBadRequest, CodeInvalidSeasonFormat, msg)
	case "season_type":
		return newAPIError(http.StatusBadRequest, CodeInvalidSeasonType,
			fmt.Sprintf("Season type must be %q or %q", player.SeasonTypeRegular, player.SeasonTypePlayoffs))
	}
	return newAPIError(http.StatusBadRequest, CodeInvalidRequest, fmt.Sprintf("invalid value for %s", field))
}
