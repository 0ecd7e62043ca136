package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("pubtype", func(fl validator.FieldLevel) bool {
		return IsValidPublicationType(PublicationType(fl.Field().String()))
	})

	return v
}

// Validate checks a record against its struct tags and returns the first
// violation as a *ValidationError.
func Validate(record any) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fe := verrs[0]
	return NewValidationError(fieldPath(fe), describe(fe))
}

// fieldPath strips the root struct name from the namespace, e.g.
// "Profile.education[0].degree" becomes "education[0].degree".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "pubtype":
		labels := make([]string, 0, len(PublicationTypes()))
		for _, t := range PublicationTypes() {
			labels = append(labels, string(t))
		}
		return "must be one of " + strings.Join(labels, ", ")
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// Normalize trims text fields and fills defaults before validation.
func (p *Publication) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Journal = strings.TrimSpace(p.Journal)
	p.DOI = strings.TrimSpace(p.DOI)
	if p.Type == "" {
		p.Type = PublicationTypeOther
	}
	if p.Authors == nil {
		p.Authors = []string{}
	}
}

// Normalize trims text fields and replaces nil slices with empty ones.
func (p *Profile) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Title = strings.TrimSpace(p.Title)
	p.Affiliation = strings.TrimSpace(p.Affiliation)
	p.Email = strings.TrimSpace(p.Email)
	if p.ResearchInterests == nil {
		p.ResearchInterests = []string{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
}
