package validation

import (
	"errors"
	"strings"
	"testing"

	auth_errors "credential-auth/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name      string
		in        LoginInput
		wantField string
		wantRule  string
	}{
		{name: "valid", in: LoginInput{Email: "jsmith@gmail.com", Password: "abcd"}},
		{name: "max length password", in: LoginInput{Email: "a@b.co", Password: strings.Repeat("x", PasswordMaxLen)}},
		{name: "multibyte counts characters", in: LoginInput{Email: "a@b.co", Password: "ééééé"}},
		{name: "missing email", in: LoginInput{Password: "abcd"}, wantField: "email", wantRule: "required"},
		{name: "malformed email", in: LoginInput{Email: "not-an-email", Password: "abcd"}, wantField: "email", wantRule: "email"},
		{name: "missing password", in: LoginInput{Email: "a@b.co"}, wantField: "password", wantRule: "required"},
		{name: "short password", in: LoginInput{Email: "a@b.co", Password: strings.Repeat("x", PasswordMinLen-1)}, wantField: "password", wantRule: "min"},
		{name: "long password", in: LoginInput{Email: "a@b.co", Password: strings.Repeat("x", PasswordMaxLen+1)}, wantField: "password", wantRule: "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateLogin(tt.in)
			if tt.wantField == "" {
				assert.True(t, res.OK())
				assert.NoError(t, res.Err())
				assert.Equal(t, tt.in, res.Value)
				return
			}
			require.False(t, res.OK())
			require.Len(t, res.Errors, 1)
			assert.Equal(t, tt.wantField, res.Errors[0].Field)
			assert.Equal(t, tt.wantRule, res.Errors[0].Rule)
			assert.NotEmpty(t, res.Errors[0].Message)
		})
	}
}

func TestValidateSignup(t *testing.T) {
	res := ValidateSignup(SignupInput{Email: "jsmith@gmail.com", Password: "secret", Username: "jsmith"})
	assert.True(t, res.OK())

	res = ValidateSignup(SignupInput{Email: "jsmith@gmail.com", Password: "secret"})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "username", res.Errors[0].Field)
}

func TestValidateSignup_CollectsEveryField(t *testing.T) {
	res := ValidateSignup(SignupInput{Email: "bad", Password: "x"})

	fields := make([]string, 0, len(res.Errors))
	for _, fe := range res.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"email", "password", "username"}, fields)
}

func TestResultErr(t *testing.T) {
	err := ValidateLogin(LoginInput{Email: "bad", Password: "abcd"}).Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, auth_errors.ErrInvalidInput)

	var verr *auth_errors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email", verr.Fields[0].Field)
	assert.Contains(t, err.Error(), "valid email")
}
