package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imovia/internal/services"
)

func TestHTTPErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"property not found", services.ErrPropertyNotFound, http.StatusNotFound},
		{"admin not found", services.ErrAdminNotFound, http.StatusNotFound},
		{"email taken", services.ErrEmailTaken, http.StatusBadRequest},
		{"invalid credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"account disabled", services.ErrAccountDisabled, http.StatusUnauthorized},
		{"self delete", services.ErrSelfDelete, http.StatusForbidden},
		{"unknown error", errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var he *echo.HTTPError
			require.True(t, errors.As(httpError(tc.err), &he))
			assert.Equal(t, tc.code, he.Code)
		})
	}

	t.Run("validation error carries the field name", func(t *testing.T) {
		_, err := services.ParsePropertyFilter("villa", "", "", "", "")
		require.Error(t, err)

		var he *echo.HTTPError
		require.True(t, errors.As(httpError(err), &he))
		assert.Equal(t, http.StatusBadRequest, he.Code)

		body, ok := he.Message.(map[string]string)
		require.True(t, ok)
		assert.Equal(t, "type", body["field"])
	})

	t.Run("internal detail never leaks", func(t *testing.T) {
		var he *echo.HTTPError
		require.True(t, errors.As(httpError(errors.New("dial tcp: secret-host refused")), &he))
		assert.Equal(t, "Internal server error", he.Message)
	})
}
