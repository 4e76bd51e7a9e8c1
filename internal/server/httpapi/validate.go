package httpapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/upttmbi/campus-auth/internal/server/models"
	"github.com/upttmbi/campus-auth/internal/server/services"
)

// registerRequest is the wire shape of POST /auth/register.
type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Password string `json:"password"`
	Role     string `json:"role"`
	PreRegID *int64 `json:"preRegId,omitempty"`
}

// loginRequest is the wire shape of POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// validateRegister checks formats and lengths before anything reaches the
// services, and normalizes the request into RegisterParams. Emails are
// lower-cased here so uniqueness is case-insensitive at a single point.
//
// When a voucher id is present the stored role is forced to student: vouchers
// only ever gate student enrollment.
func validateRegister(req registerRequest) (services.RegisterParams, error) {
	var params services.RegisterParams

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !govalidator.IsEmail(email) {
		return params, errors.New("invalid email")
	}
	if strings.TrimSpace(req.Name) == "" {
		return params, errors.New("name is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return params, errors.New("lastName is required")
	}
	if !govalidator.StringLength(req.Password, "8", "20") {
		return params, errors.New("password must be 8-20 characters")
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return params, fmt.Errorf("invalid role %q", req.Role)
	}

	if req.PreRegID != nil {
		if *req.PreRegID <= 0 {
			return params, errors.New("preRegId must be positive")
		}
		role = models.RoleStudent
	}

	params = services.RegisterParams{
		Email:    email,
		Name:     strings.TrimSpace(req.Name),
		LastName: strings.TrimSpace(req.LastName),
		Password: req.Password,
		Role:     role,
		PreRegID: req.PreRegID,
	}
	return params, nil
}

func validateLogin(req loginRequest) (email, password string, err error) {
	email = strings.ToLower(strings.TrimSpace(req.Email))
	if !govalidator.IsEmail(email) {
		return "", "", errors.New("invalid email")
	}
	if !govalidator.StringLength(req.Password, "8", "20") {
		return "", "", errors.New("password must be 8-20 characters")
	}
	return email, req.Password, nil
}
