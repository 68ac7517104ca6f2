package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	val "github.com/go-playground/validator/v10"

	"cleanbook/shared/base64"
	"cleanbook/shared/constant"
	"cleanbook/shared/failure"
	"cleanbook/shared/timezone"
)

var (
	validate *val.Validate

	phonePattern = regexp.MustCompile(`^01[016789]-?\d{3,4}-?\d{4}$`)
	hhmmPattern  = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
)

func registerMimetypeValidation(field val.FieldLevel) bool {
	var contentType string

	if file, ok := field.Field().Interface().(multipart.FileHeader); ok {
		contentType = file.Header.Get(constant.RequestHeaderContentType)
	} else if str, ok := field.Field().Interface().(string); ok {
		contentType = base64.GetContentType(str)

		if contentType == "" {
			return false
		}
	}

	allowedTypes := strings.Split(field.Param(), " ")

	return slices.Contains(allowedTypes, contentType)
}

func registerFileSizeValidation(field val.FieldLevel) bool {
	fileSize := 0
	if file, ok := field.Field().Interface().(multipart.FileHeader); ok {
		fileSize = int(file.Size)
	} else if str, ok := field.Field().Interface().(string); ok {
		fileSize = len(str)
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	bytesConversion := 1024.0
	maxSizeBytes := int(maxSizeMB * bytesConversion * bytesConversion)

	return fileSize <= maxSizeBytes
}

// registerPasswordValidation requires at least one digit and one letter.
func registerPasswordValidation(field val.FieldLevel) bool {
	var hasDigit, hasLetter bool

	for _, r := range field.Field().String() {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			hasLetter = true
		}
	}

	return hasDigit && hasLetter
}

// registerNotPastValidation accepts a YYYY-MM-DD date that is today or later in the app timezone.
func registerNotPastValidation(field val.FieldLevel) bool {
	date, err := timezone.Parse(constant.DayFormat, field.Field().String())
	if err != nil {
		return false
	}

	return !date.Before(timezone.StartOfDay(timezone.Now()))
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	custom := map[string]val.Func{
		"empty": func(fl val.FieldLevel) bool {
			return fl.Field().IsZero()
		},
		"mimetypes":   registerMimetypeValidation,
		"maxfilesize": registerFileSizeValidation,
		"phone": func(fl val.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		},
		"hhmm": func(fl val.FieldLevel) bool {
			return hhmmPattern.MatchString(fl.Field().String())
		},
		"notpast":  registerNotPastValidation,
		"password": registerPasswordValidation,
	}

	for tag, fn := range custom {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

// NormalizePhone formats a Korean mobile number as 010-XXXX-XXXX.
func NormalizePhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}

		return -1
	}, phone)

	switch len(digits) {
	case 11:
		return fmt.Sprintf("%s-%s-%s", digits[:3], digits[3:7], digits[7:])
	case 10:
		return fmt.Sprintf("%s-%s-%s", digits[:3], digits[3:6], digits[6:])
	default:
		return phone
	}
}
