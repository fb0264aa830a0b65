// Package forms defines the typed form schemas and their validation. Each form
// is parsed from a request, then validated by a pure step returning field-level
// messages keyed by form field name.
package forms

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

var usernameRE = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func newValidator() *validator.Validate {
	v := validator.New()

	// Report errors under the form field name, not the Go struct field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("form"); name != "" {
			return name
		}
		return fld.Name
	})

	_ = v.RegisterValidation("username_chars", func(fl validator.FieldLevel) bool {
		return usernameRE.MatchString(fl.Field().String())
	})

	return v
}

// check runs the validator and flattens the result into field → message.
// Only the first failing rule per field is reported.
func check(form interface{}) map[string]string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"form": "Invalid input."}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = messageFor(fe)
		}
	}
	return fields
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "email":
		return "Must be a valid email address."
	case "username_chars":
		return "Only letters, digits and underscores are allowed."
	default:
		return "Invalid value."
	}
}

// ==========================
// RegisterForm
// ==========================
type RegisterForm struct {
	Username  string `form:"username" validate:"required,min=3,max=20,username_chars"`
	Password  string `form:"password" validate:"required,min=8,max=72"`
	FirstName string `form:"first_name" validate:"required,max=30"`
	LastName  string `form:"last_name" validate:"required,max=30"`
	Email     string `form:"email" validate:"required,email"`
}

func ParseRegister(r *http.Request) RegisterForm {
	return RegisterForm{
		Username:  strings.TrimSpace(r.PostFormValue("username")),
		Password:  r.PostFormValue("password"),
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
	}
}

func (f RegisterForm) Validate() map[string]string {
	return check(f)
}

// ==========================
// LoginForm
// ==========================
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func ParseLogin(r *http.Request) LoginForm {
	return LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
}

func (f LoginForm) Validate() map[string]string {
	return check(f)
}

// ==========================
// FeedbackForm
// ==========================
type FeedbackForm struct {
	Title   string `form:"title" validate:"required,max=100"`
	Content string `form:"content" validate:"required,max=2000"`
}

func ParseFeedback(r *http.Request) FeedbackForm {
	return FeedbackForm{
		Title:   strings.TrimSpace(r.PostFormValue("title")),
		Content: strings.TrimSpace(r.PostFormValue("content")),
	}
}

func (f FeedbackForm) Validate() map[string]string {
	return check(f)
}
