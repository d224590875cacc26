package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

var validate = newValidator()

// newValidator reports field names by their json tag so validation details
// match the wire format.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// RegisterInput carries the registration command. Role is validated when
// supplied but never persisted as given; registration always assigns the
// default role.
type RegisterInput struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Age       int    `json:"age" validate:"required,gte=0,lte=120"`
	Password  string `json:"password" validate:"required,min=6,max=20"`
	Role      string `json:"role" validate:"omitempty,oneof=PUBLIC USER USER_PREMIUM ADMIN"`
}

// Validate reports every rule violation at once.
func (in RegisterInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return apperrors.NewValidationError("invalid registration payload", validationDetails(err))
	}
	return nil
}

// LoginInput carries the login command. Presence is the only rule; format
// mistakes fall through to the credential check.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate checks both fields are present.
func (in LoginInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return apperrors.NewValidationError("email and password required", validationDetails(err))
	}
	return nil
}

// UpdateInput carries a partial update; nil fields stay untouched. Every
// provided field passes through the same rules registration applies.
type UpdateInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Age       *int    `json:"age"`
	Password  *string `json:"password"`
	Role      *string `json:"role"`
}

// Validate rejects any provided field that is empty or breaks the
// creation-time rules.
func (in UpdateInput) Validate() error {
	details := map[string]any{}

	checkVar := func(field string, value any, tag string) {
		if err := validate.Var(value, tag); err != nil {
			details[field] = firstTag(err)
		}
	}

	if in.FirstName != nil {
		checkVar("first_name", *in.FirstName, "required,max=50")
	}
	if in.LastName != nil {
		checkVar("last_name", *in.LastName, "required,max=50")
	}
	if in.Email != nil {
		checkVar("email", *in.Email, "required,email")
	}
	if in.Age != nil {
		checkVar("age", *in.Age, "required,gte=0,lte=120")
	}
	if in.Password != nil {
		checkVar("password", *in.Password, "required,min=6,max=20")
	}
	if in.Role != nil {
		checkVar("role", *in.Role, "required,oneof=PUBLIC USER USER_PREMIUM ADMIN")
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid update payload", details)
	}
	return nil
}

// Fields lists the names of the provided fields.
func (in UpdateInput) Fields() []string {
	fields := make([]string, 0, 6)
	if in.FirstName != nil {
		fields = append(fields, "first_name")
	}
	if in.LastName != nil {
		fields = append(fields, "last_name")
	}
	if in.Email != nil {
		fields = append(fields, "email")
	}
	if in.Age != nil {
		fields = append(fields, "age")
	}
	if in.Password != nil {
		fields = append(fields, "password")
	}
	if in.Role != nil {
		fields = append(fields, "role")
	}
	return fields
}

func validationDetails(err error) map[string]any {
	details := map[string]any{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
	}
	return details
}

func firstTag(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Tag()
	}
	return "invalid"
}
