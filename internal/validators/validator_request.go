package validators

import (
	"context"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/escrow-api/models"
)

// RequestValidator checks the typed request bodies and listing filters of
// the HTTP API. Every violation is reported, not only the first one.
type RequestValidator struct {
}

func NewRequestValidator() Validator {
	return &RequestValidator{}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateSignup(value, fields...)
	case *models.SignupRequest:
		return v.validateSignup(*value, fields...)

	case models.SigninRequest:
		return v.validateSignin(value, fields...)
	case *models.SigninRequest:
		return v.validateSignin(*value, fields...)

	case models.UpdateProfileRequest:
		return v.validateUpdateProfile(value, fields...)
	case *models.UpdateProfileRequest:
		return v.validateUpdateProfile(*value, fields...)

	case models.CreateJobRequest:
		return v.validateCreateJob(value, fields...)
	case *models.CreateJobRequest:
		return v.validateCreateJob(*value, fields...)

	case models.UpdateJobRequest:
		return v.validateUpdateJob(value, fields...)
	case *models.UpdateJobRequest:
		return v.validateUpdateJob(*value, fields...)

	case models.CreateProposalRequest:
		return v.validateCreateProposal(value, fields...)
	case *models.CreateProposalRequest:
		return v.validateCreateProposal(*value, fields...)

	case models.ChatRequest:
		return v.validateChat(value)
	case *models.ChatRequest:
		return v.validateChat(*value)

	case models.JobFilter:
		return v.validateJobFilter(value)
	case *models.JobFilter:
		return v.validateJobFilter(*value)

	case models.FreelancerFilter:
		return v.validateFreelancerFilter(value)
	case *models.FreelancerFilter:
		return v.validateFreelancerFilter(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateSignup(req models.SignupRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldName, FieldUserType, FieldSkills, FieldHourlyRate, FieldBio}
	}

	var errs FieldErrors
	for _, f := range fields {
		switch f {
		case FieldEmail:
			checkEmail(&errs, req.Email)
		case FieldPassword:
			checkMinLength(&errs, FieldPassword, req.Password, MinPasswordLength, "Password")
		case FieldName:
			checkMinLength(&errs, FieldName, strings.TrimSpace(req.Name), MinNameLength, "Name")
		case FieldUserType:
			if !models.UserType(req.UserType).Valid() {
				errs.Add(FieldUserType, "User type must be either client or freelancer")
			}
		case FieldSkills:
			checkList(&errs, FieldSkills, req.Skills)
		case FieldHourlyRate:
			checkPositive(&errs, FieldHourlyRate, req.HourlyRate, "Hourly rate")
		case FieldBio:
			checkMaxLength(&errs, FieldBio, req.Bio)
		default:
			return ErrUnknownField
		}
	}

	return errs.Err()
}

func (v *RequestValidator) validateSignin(req models.SigninRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	var errs FieldErrors
	for _, f := range fields {
		switch f {
		case FieldEmail:
			checkEmail(&errs, req.Email)
		case FieldPassword:
			checkMinLength(&errs, FieldPassword, req.Password, MinPasswordLength, "Password")
		default:
			return ErrUnknownField
		}
	}

	return errs.Err()
}

// validateUpdateProfile checks only the fields present in the body.
func (v *RequestValidator) validateUpdateProfile(req models.UpdateProfileRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldBio, FieldSkills, FieldHourlyRate}
	}

	var errs FieldErrors
	for _, f := range fields {
		switch f {
		case FieldName:
			if req.Name != nil {
				checkMinLength(&errs, FieldName, strings.TrimSpace(*req.Name), MinNameLength, "Name")
			}
		case FieldBio:
			checkMaxLength(&errs, FieldBio, req.Bio)
		case FieldSkills:
			checkList(&errs, FieldSkills, req.Skills)
		case FieldHourlyRate:
			checkPositive(&errs, FieldHourlyRate, req.HourlyRate, "Hourly rate")
		default:
			return ErrUnknownField
		}
	}

	return errs.Err()
}

func (v *RequestValidator) validateCreateJob(req models.CreateJobRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldDescription, FieldBudget, FieldMinBudget, FieldMaxBudget, FieldBudgetType, FieldTags}
	}

	var errs FieldErrors
	for _, f := range fields {
		switch f {
		case FieldTitle:
			checkMinLength(&errs, FieldTitle, strings.TrimSpace(req.Title), MinTitleLength, "Title")
		case FieldDescription:
			checkMinLength(&errs, FieldDescription, strings.TrimSpace(req.Description), MinDescriptionLength, "Description")
			checkMaxLength(&errs, FieldDescription, &req.Description)
		case FieldBudget:
			if req.Budget <= 0 {
				errs.Add(FieldBudget, "Budget must be positive")
			}
		case FieldMinBudget:
			checkPositive(&errs, FieldMinBudget, req.MinBudget, "Minimum budget")
		case FieldMaxBudget:
			checkPositive(&errs, FieldMaxBudget, req.MaxBudget, "Maximum budget")
			checkRange(&errs, req.MinBudget, req.MaxBudget)
		case FieldBudgetType:
			checkBudgetType(&errs, req.BudgetType)
		case FieldTags:
			checkList(&errs, FieldTags, req.Tags)
		default:
			return ErrUnknownField
		}
	}

	return errs.Err()
}

// validateUpdateJob checks only the fields present in the body. The range
// check sees only the submitted bounds; the service re-checks it against the
// stored job.
func (v *RequestValidator) validateUpdateJob(req models.UpdateJobRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldDescription, FieldBudget, FieldMinBudget, FieldMaxBudget, FieldBudgetType, FieldTags, FieldStatus}
	}

	var errs FieldErrors
	for _, f := range fields {
		switch f {
		case FieldTitle:
			if req.Title != nil {
				checkMinLength(&errs, FieldTitle, strings.TrimSpace(*req.Title), MinTitleLength, "Title")
			}
		case FieldDescription:
			if req.Description != nil {
				checkMinLength(&errs, FieldDescription, strings.TrimSpace(*req.Description), MinDescriptionLength, "Description")
				checkMaxLength(&errs, FieldDescription, req.Description)
			}
		case FieldBudget:
			checkPositive(&errs, FieldBudget, req.Budget, "Budget")
		case FieldMinBudget:
			checkPositive(&errs, FieldMinBudget, req.MinBudget, "Minimum budget")
		case FieldMaxBudget:
			checkPositive(&errs, FieldMaxBudget, req.MaxBudget, "Maximum budget")
			checkRange(&errs, req.MinBudget, req.MaxBudget)
		case FieldBudgetType:
			checkBudgetType(&errs, req.BudgetType)
		case FieldTags:
			checkList(&errs, FieldTags, req.Tags)
		case FieldStatus:
			if req.Status != nil && !models.JobStatus(*req.Status).Valid() {
				errs.Add(FieldStatus, "Status must be one of open, in_progress, completed, cancelled")
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.Err()
}

func (v *RequestValidator) validateCreateProposal(req models.CreateProposalRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCoverLetter, FieldBidAmount}
	}

	var errs FieldErrors
	for _, f := range fields {
		switch f {
		case FieldCoverLetter:
			checkMinLength(&errs, FieldCoverLetter, strings.TrimSpace(req.CoverLetter), MinCoverLetterLength, "Cover letter")
			checkMaxLength(&errs, FieldCoverLetter, &req.CoverLetter)
		case FieldBidAmount:
			if req.BidAmount <= 0 {
				errs.Add(FieldBidAmount, "Bid amount must be positive")
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.Err()
}

func (v *RequestValidator) validateChat(req models.ChatRequest) error {
	var errs FieldErrors
	msg := strings.TrimSpace(req.Message)
	switch {
	case msg == "":
		errs.Add(FieldMessage, "Message is required")
	case utf8.RuneCountInString(msg) > MaxChatMessageLength:
		errs.Add(FieldMessage, "Message is too long")
	}
	return errs.Err()
}

func (v *RequestValidator) validateJobFilter(f models.JobFilter) error {
	var errs FieldErrors
	if f.MinBudget != nil && *f.MinBudget < 0 {
		errs.Add(FieldMinBudget, "Minimum budget must not be negative")
	}
	if f.MaxBudget != nil && *f.MaxBudget < 0 {
		errs.Add(FieldMaxBudget, "Maximum budget must not be negative")
	}
	checkRange(&errs, f.MinBudget, f.MaxBudget)
	if f.Status != "" && !f.Status.Valid() {
		errs.Add(FieldStatus, "Status must be one of open, in_progress, completed, cancelled")
	}
	return errs.Err()
}

func (v *RequestValidator) validateFreelancerFilter(f models.FreelancerFilter) error {
	var errs FieldErrors
	if f.MinRating != nil && (*f.MinRating < 0 || *f.MinRating > MaxRating) {
		errs.Add(FieldMinRating, "Minimum rating must be between 0 and 5")
	}
	if f.MaxHourlyRate != nil && *f.MaxHourlyRate < 0 {
		errs.Add(FieldMaxRate, "Maximum hourly rate must not be negative")
	}
	return errs.Err()
}

// ── rules ─────────────────────────────────────────────────────────────────────

func checkEmail(errs *FieldErrors, email string) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		errs.Add(FieldEmail, "Invalid email address")
		return
	}
	at := strings.LastIndex(email, "@")
	if at < 1 || !strings.Contains(email[at+1:], ".") {
		errs.Add(FieldEmail, "Invalid email address")
	}
}

func checkMinLength(errs *FieldErrors, field, value string, minLen int, label string) {
	if utf8.RuneCountInString(value) < minLen {
		errs.Add(field, label+" must be at least "+strconv.Itoa(minLen)+" characters")
	}
}

func checkMaxLength(errs *FieldErrors, field string, value *string) {
	if value != nil && utf8.RuneCountInString(*value) > MaxTextLength {
		errs.Add(field, "Must be at most "+strconv.Itoa(MaxTextLength)+" characters")
	}
}

func checkPositive(errs *FieldErrors, field string, value *float64, label string) {
	if value != nil && *value <= 0 {
		errs.Add(field, label+" must be positive")
	}
}

func checkRange(errs *FieldErrors, lo, hi *float64) {
	if lo != nil && hi != nil && *lo > *hi {
		errs.Add(FieldMaxBudget, "Maximum budget must not be less than minimum budget")
	}
}

func checkBudgetType(errs *FieldErrors, bt *string) {
	if bt != nil && !models.BudgetType(*bt).Valid() {
		errs.Add(FieldBudgetType, "Budget type must be either fixed or hourly")
	}
}

func checkList(errs *FieldErrors, field string, list []string) {
	if len(list) > MaxListItems {
		errs.Add(field, "At most "+strconv.Itoa(MaxListItems)+" items are allowed")
	}
}
