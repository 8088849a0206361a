package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/uniportal/results-portal-api/internal/models"
)

// SubmitAnnouncementRequest describes an authored announcement draft.
type SubmitAnnouncementRequest struct {
	Topic    string `json:"topic" validate:"required,max=100"`
	Message  string `json:"message" validate:"required,min=10,max=2000"`
	Audience string `json:"audience" validate:"required,audience"`
	Priority string `json:"priority" validate:"required,priority"`
	Author   string `json:"author"`
}

// ValidationResult reports every violated field at once so a caller can
// render all problems together.
type ValidationResult struct {
	Valid  bool
	Errors map[string]string
}

// DraftValidator checks a draft's shape before anything is persisted or
// dispatched. It has no side effects.
type DraftValidator struct {
	validator *validator.Validate
}

// NewDraftValidator constructs the validator with the draft field rules.
func NewDraftValidator(validate *validator.Validate) *DraftValidator {
	if validate == nil {
		validate = validator.New()
	}
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(field.Name)
		}
		return name
	})
	_ = validate.RegisterValidation("audience", func(fl validator.FieldLevel) bool {
		switch models.AnnouncementAudience(strings.ToLower(fl.Field().String())) {
		case models.AudienceAll, models.AudienceStudents, models.AudienceExam:
			return true
		default:
			return false
		}
	})
	_ = validate.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		switch models.AnnouncementPriority(strings.ToLower(fl.Field().String())) {
		case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityCritical:
			return true
		default:
			return false
		}
	})
	return &DraftValidator{validator: validate}
}

// Validate applies all draft rules and collects every violation.
func (v *DraftValidator) Validate(req SubmitAnnouncementRequest) ValidationResult {
	err := v.validator.Struct(req)
	if err == nil {
		return ValidationResult{Valid: true, Errors: map[string]string{}}
	}

	result := ValidationResult{Errors: map[string]string{}}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			result.Errors[fe.Field()] = draftFieldMessage(fe)
		}
		return result
	}
	result.Errors["draft"] = err.Error()
	return result
}

func draftFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "topic":
		if fe.Tag() == "max" {
			return "topic must be at most 100 characters"
		}
		return "topic is required"
	case "message":
		switch fe.Tag() {
		case "min":
			return "message must be at least 10 characters"
		case "max":
			return "message must be at most 2000 characters"
		default:
			return "message is required"
		}
	case "audience":
		return "audience must be one of all, students, exam"
	case "priority":
		return "priority must be one of low, medium, high, critical"
	}
	return fe.Error()
}
