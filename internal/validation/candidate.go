package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/talentdesk/candidate-tracker/internal/domain"
)

// Field names as they appear on the wire and in error maps.
const (
	FieldName             = "name"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldArea             = "area"
	FieldStatus           = "status"
	FieldRegistrationDate = "registrationDate"
)

// Messages shown next to each offending field.
var Messages = map[string]string{
	FieldName:             "Nome completo é obrigatório (mín. 3 caracteres)",
	FieldEmail:            "E-mail inválido",
	FieldPhone:            "Telefone inválido",
	FieldArea:             "Selecione uma área de interesse",
	FieldStatus:           "Selecione um status válido",
	FieldRegistrationDate: "Selecione a data de cadastro",
}

// MessageEmailTaken is reported when the unique email policy rejects a submission.
const MessageEmailTaken = "E-mail já cadastrado"

// CandidateForm is the raw field set submitted by the create and edit forms.
type CandidateForm struct {
	Name             string `json:"name" form:"name" validate:"min=3"`
	Email            string `json:"email" form:"email" validate:"required,email"`
	Phone            string `json:"phone" form:"phone" validate:"min=10"`
	Area             string `json:"area" form:"area" validate:"required,candidate_area"`
	Status           string `json:"status" form:"status" validate:"omitempty,candidate_status"`
	RegistrationDate string `json:"registrationDate" form:"registrationDate" validate:"required,datetime=2006-01-02"`
}

// FormFromCandidate pre-populates a form with the stored values of c.
func FormFromCandidate(c *domain.Candidate) CandidateForm {
	return CandidateForm{
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		Area:             string(c.Area),
		Status:           string(c.Status),
		RegistrationDate: c.RegistrationDate.Format(domain.DateLayout),
	}
}

// FieldErrors maps a field name to its message.
type FieldErrors map[string]string

// Add records msg for field unless the field already failed.
func (e FieldErrors) Add(field, msg string) {
	if _, exists := e[field]; exists {
		return
	}
	e[field] = msg
}

// Details converts the map for use in error payloads.
func (e FieldErrors) Details() map[string]any {
	out := make(map[string]any, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Result carries either normalized fields or the per-field errors.
type Result struct {
	Fields domain.CandidateFields
	Errors FieldErrors
}

// Valid reports whether every field passed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Rule is an extra check run after the declarative pass.
type Rule func(form CandidateForm, errs FieldErrors)

// UniqueEmail rejects an email already present in existing, ignoring current (the record being edited).
func UniqueEmail(existing []string, current string) Rule {
	return func(form CandidateForm, errs FieldErrors) {
		email := strings.ToLower(form.Email)
		if email == "" || strings.EqualFold(email, current) {
			return
		}
		for _, e := range existing {
			if strings.EqualFold(e, email) {
				errs.Add(FieldEmail, MessageEmailTaken)
				return
			}
		}
	}
}

// Validator checks candidate forms.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the candidate enumerations registered.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("candidate_area", func(fl validator.FieldLevel) bool {
		return domain.Area(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("candidate_status", func(fl validator.FieldLevel) bool {
		return domain.CandidateStatus(fl.Field().String()).Valid()
	})
	return &Validator{validate: v}
}

// Validate checks every field of form and reports all failures at once.
// An empty status is left empty for the caller to default.
func (v *Validator) Validate(form CandidateForm, rules ...Rule) Result {
	form = normalize(form)
	errs := FieldErrors{}

	if err := v.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			errs.Add(FieldName, err.Error())
			return Result{Errors: errs}
		}
		for _, fe := range verrs {
			errs.Add(fe.Field(), Messages[fe.Field()])
		}
	}

	for _, rule := range rules {
		rule(form, errs)
	}

	if len(errs) > 0 {
		return Result{Errors: errs}
	}

	date, err := time.Parse(domain.DateLayout, form.RegistrationDate)
	if err != nil {
		errs.Add(FieldRegistrationDate, Messages[FieldRegistrationDate])
		return Result{Errors: errs}
	}

	return Result{Fields: domain.CandidateFields{
		Name:             form.Name,
		Email:            form.Email,
		Phone:            form.Phone,
		Area:             domain.Area(form.Area),
		Status:           domain.CandidateStatus(form.Status),
		RegistrationDate: domain.TruncateDate(date),
	}}
}

func normalize(form CandidateForm) CandidateForm {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Area = strings.TrimSpace(form.Area)
	form.Status = strings.TrimSpace(form.Status)
	form.RegistrationDate = strings.TrimSpace(form.RegistrationDate)
	return form
}
