package errs_test

import (
	"errors"
	"strings"
	"testing"

	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("productId", "123")

		assert.Equal(t, "productId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundError with non-string id", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("serviceId", int64(7))

		assert.Equal(t, "object not found: 7", err.Error())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("productId", "123", cause)

		assert.Equal(t, "productId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: productId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("state")

		assert.Equal(t, "state", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: state", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("state", cause)

		assert.Equal(t, "state", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: state (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("weight", 150, 0, 120)

		assert.Equal(t, "weight", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is out of range: weight is 150, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("serviceId")

		assert.Equal(t, "serviceId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: serviceId", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("serviceId", cause)

		assert.Equal(t, "serviceId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: serviceId (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestVersionIsInvalidError(t *testing.T) {
	t.Run("NewVersionIsInvalidError", func(t *testing.T) {
		err := errs.NewVersionIsInvalidError("quoteVersion")

		assert.Equal(t, "quoteVersion", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "version is invalid: quoteVersion", err.Error())
		assert.Equal(t, errs.ErrVersionIsInvalid, err.Unwrap())
	})

	t.Run("NewVersionIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("unsupported payload version")
		err := errs.NewVersionIsInvalidErrorWithCause("quoteVersion", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "version is invalid: quoteVersion (cause: unsupported payload version)", err.Error())
		assert.Equal(t, errs.ErrVersionIsInvalid, err.Unwrap())
	})
}

func TestExternalServiceError(t *testing.T) {
	t.Run("NewExternalServiceError", func(t *testing.T) {
		err := errs.NewExternalServiceError("carrier", 422, `{"error":"invalid cart"}`)

		assert.Equal(t, "carrier", err.Service)
		assert.Equal(t, 422, err.Status)
		assert.Equal(t, `{"error":"invalid cart"}`, err.Body)
		require.NoError(t, err.Cause)
		assert.Equal(t,
			`external service error: carrier responded 422: {"error":"invalid cart"}`,
			err.Error())
		assert.Equal(t, errs.ErrExternalService, err.Unwrap())
	})

	t.Run("body is truncated to 512 bytes", func(t *testing.T) {
		body := strings.Repeat("x", 2048)
		err := errs.NewExternalServiceError("carrier", 500, body)
		assert.Len(t, err.Body, 512)
	})

	t.Run("NewExternalServiceErrorWithCause", func(t *testing.T) {
		cause := errors.New("unexpected end of JSON input")
		err := errs.NewExternalServiceErrorWithCause("carrier", 200, "not json", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Contains(t, err.Error(), "carrier responded 200")
		assert.Contains(t, err.Error(), "(cause: unexpected end of JSON input)")
	})

	t.Run("newlines in body are sanitized in message", func(t *testing.T) {
		err := errs.NewExternalServiceError("carrier", 502, "bad\ngateway")
		assert.NotContains(t, err.Error(), "\n")
		assert.Contains(t, err.Error(), "bad gateway")
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrVersionIsInvalid)
		require.Error(t, errs.ErrExternalService)
		require.Error(t, errs.ErrPartialFailure)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "version is invalid", errs.ErrVersionIsInvalid.Error())
		assert.Equal(t, "external service error", errs.ErrExternalService.Error())
		assert.Equal(t, "partial failure", errs.ErrPartialFailure.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("productId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("state"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("weight", 150, 0, 120), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("serviceId"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewVersionIsInvalidError("quoteVersion"), errs.ErrVersionIsInvalid)
		require.ErrorIs(t, errs.NewExternalServiceError("carrier", 500, "boom"), errs.ErrExternalService)
	})
}
