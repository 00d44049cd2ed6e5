package handler

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// bcrypt ignores everything after 72 bytes.
const maxPasswordLen = 72

type signupReq struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (r signupReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(3, 255), is.Email),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Password, validation.Required, validation.Length(6, maxPasswordLen)),
	)
}

type signinReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r signinReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type requestResetReq struct {
	Email string `json:"email"`
}

func (r requestResetReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

type resetPasswordReq struct {
	ResetToken      string `json:"resetToken"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate leaves the password/confirmation comparison to the resolver so
// the client gets PASSWORD_MISMATCH rather than a field error.
func (r resetPasswordReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ResetToken, validation.Required),
		validation.Field(&r.Password, validation.Required, validation.Length(6, maxPasswordLen)),
		validation.Field(&r.ConfirmPassword, validation.Required),
	)
}

type createItemReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	LargeImage  string `json:"largeImage"`
	Price       uint32 `json:"price"`
}

func (r createItemReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Image, is.URL),
		validation.Field(&r.LargeImage, is.URL),
		validation.Field(&r.Price, validation.Required),
	)
}

type updateItemReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	LargeImage  *string `json:"largeImage"`
	Price       *uint32 `json:"price"`
}

func (r updateItemReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.NilOrNotEmpty),
		validation.Field(&r.Image, is.URL),
		validation.Field(&r.LargeImage, is.URL),
	)
}

type updatePermissionsReq struct {
	Permissions []string `json:"permissions"`
}

func (r updatePermissionsReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Permissions, validation.NotNil),
	)
}
