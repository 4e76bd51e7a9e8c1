package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upttmbi/campus-auth/internal/server/models"
)

func TestValidateRegister_NormalizesEmailAndNames(t *testing.T) {
	params, err := validateRegister(registerRequest{
		Email:    "  Maria.Perez@UPTTMBI.edu.VE ",
		Name:     " Maria ",
		LastName: " Perez ",
		Password: "s3cretpass",
		Role:     "teacher",
	})
	require.NoError(t, err)

	assert.Equal(t, "maria.perez@upttmbi.edu.ve", params.Email)
	assert.Equal(t, "Maria", params.Name)
	assert.Equal(t, "Perez", params.LastName)
	assert.Equal(t, models.RoleTeacher, params.Role)
	assert.Nil(t, params.PreRegID)
}

func TestValidateRegister_VoucherForcesStudent(t *testing.T) {
	id := int64(7)
	params, err := validateRegister(registerRequest{
		Email:    "e@x.com",
		Name:     "Est",
		LastName: "Udiante",
		Password: "s3cretpass",
		Role:     "admin",
		PreRegID: &id,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, params.Role)
	require.NotNil(t, params.PreRegID)
	assert.Equal(t, int64(7), *params.PreRegID)
}

func TestValidateRegister_PasswordBounds(t *testing.T) {
	base := registerRequest{
		Email:    "e@x.com",
		Name:     "A",
		LastName: "B",
		Role:     "student",
	}

	base.Password = "12345678" // exactly 8
	_, err := validateRegister(base)
	assert.NoError(t, err)

	base.Password = "12345678901234567890" // exactly 20
	_, err = validateRegister(base)
	assert.NoError(t, err)

	base.Password = "1234567"
	_, err = validateRegister(base)
	assert.Error(t, err)

	base.Password = "123456789012345678901"
	_, err = validateRegister(base)
	assert.Error(t, err)
}

func TestValidateRegister_Rejections(t *testing.T) {
	valid := registerRequest{
		Email:    "e@x.com",
		Name:     "A",
		LastName: "B",
		Password: "s3cretpass",
		Role:     "student",
	}

	tests := map[string]func(*registerRequest){
		"empty email":      func(r *registerRequest) { r.Email = "" },
		"malformed email":  func(r *registerRequest) { r.Email = "plainaddress" },
		"blank name":       func(r *registerRequest) { r.Name = "   " },
		"blank last name":  func(r *registerRequest) { r.LastName = "" },
		"unknown role":     func(r *registerRequest) { r.Role = "root" },
		"zero voucher id":  func(r *registerRequest) { z := int64(0); r.PreRegID = &z },
		"negative voucher": func(r *registerRequest) { n := int64(-5); r.PreRegID = &n },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			req := valid
			mutate(&req)
			_, err := validateRegister(req)
			assert.Error(t, err)
		})
	}
}

func TestValidateLogin(t *testing.T) {
	email, password, err := validateLogin(loginRequest{Email: " User@X.com ", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, "user@x.com", email)
	assert.Equal(t, "s3cretpass", password)

	_, _, err = validateLogin(loginRequest{Email: "nope", Password: "s3cretpass"})
	assert.Error(t, err)

	_, _, err = validateLogin(loginRequest{Email: "user@x.com", Password: "short"})
	assert.Error(t, err)
}
