package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasitemo/store-management-sub000/pkg/jwt"
)

const secret = "test-secret"

func TestParse_TokenValido(t *testing.T) {
	tok, err := jwt.Generate(secret, "emp-1", "cashier", "store", time.Hour)
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, "store", tok)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims.EmployeeID)
	assert.Equal(t, "cashier", claims.Role)
}

func TestParse_Errores(t *testing.T) {
	expired, err := jwt.Generate(secret, "emp-1", "cashier", "store", -time.Minute)
	require.NoError(t, err)
	noEmployee, err := jwt.Generate(secret, "", "cashier", "store", time.Hour)
	require.NoError(t, err)
	good, err := jwt.Generate(secret, "emp-1", "cashier", "store", time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		secret string
		issuer string
		token  string
		want   error
	}{
		{"expirado", secret, "store", expired, jwt.ErrExpiredToken},
		{"firma incorrecta", "otro", "store", good, jwt.ErrInvalidToken},
		{"emisor distinto", secret, "otro", good, jwt.ErrInvalidToken},
		{"basura", secret, "", "abc.def.ghi", jwt.ErrInvalidToken},
		{"sin empleado", secret, "store", noEmployee, jwt.ErrMissingClaims},
		{"sin secret", "", "store", good, jwt.ErrMissingSecret},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := jwt.Parse(tc.secret, tc.issuer, tc.token)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
