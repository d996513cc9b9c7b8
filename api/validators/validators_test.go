package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/fuelstation-backend/pkg/errors"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","password":"x","role":"admin"}`))
	var body loginBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDecodeJSONBodyReportsFieldErrorsByJSONName(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"not-an-email"}`))
	var body loginBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)

	details, ok := pkgerrors.As(err).Details().(map[string]string)
	require.True(t, ok)
	require.Equal(t, "must be a valid email", details["email"])
	require.Equal(t, "is required", details["password"])
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=10&bad=x&big=500", nil)

	v, err := ParseQueryInt(req, "limit", 25, 1, 100)
	require.NoError(t, err)
	require.Equal(t, 10, v)

	v, err = ParseQueryInt(req, "missing", 25, 1, 100)
	require.NoError(t, err)
	require.Equal(t, 25, v)

	_, err = ParseQueryInt(req, "bad", 25, 1, 100)
	require.Error(t, err)
	_, err = ParseQueryInt(req, "big", 25, 1, 100)
	require.Error(t, err)
}

func TestParseQueryBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/?confirm=TRUE&other=no", nil)
	require.True(t, ParseQueryBool(req, "confirm"))
	require.False(t, ParseQueryBool(req, "other"))
	require.False(t, ParseQueryBool(req, "missing"))
}

func TestParseOptionalDecimal(t *testing.T) {
	require.Nil(t, ParseOptionalDecimal(""))
	require.Nil(t, ParseOptionalDecimal("null"))
	require.Nil(t, ParseOptionalDecimal(`"abc"`))

	v := ParseOptionalDecimal(`"12.5"`)
	require.NotNil(t, v)
	require.Equal(t, "12.5", v.String())

	v = ParseOptionalDecimal("100")
	require.NotNil(t, v)
	require.Equal(t, "100", v.String())
}
