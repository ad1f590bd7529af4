package validators

// Field names as they appear in request bodies and query strings.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldName        = "name"
	FieldUserType    = "userType"
	FieldAvatar      = "avatar"
	FieldBio         = "bio"
	FieldLocation    = "location"
	FieldSkills      = "skills"
	FieldHourlyRate  = "hourlyRate"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldBudget      = "budget"
	FieldMinBudget   = "minBudget"
	FieldMaxBudget   = "maxBudget"
	FieldBudgetType  = "budgetType"
	FieldDuration    = "duration"
	FieldCategory    = "category"
	FieldTags        = "tags"
	FieldStatus      = "status"
	FieldCoverLetter = "coverLetter"
	FieldBidAmount   = "bidAmount"
	FieldMessage     = "message"
	FieldMinRating   = "minRating"
	FieldMaxRate     = "maxHourlyRate"
)

// Length and size limits.
const (
	MinPasswordLength    = 6
	MinNameLength        = 2
	MinTitleLength       = 5
	MinDescriptionLength = 20
	MinCoverLetterLength = 20
	MaxTextLength        = 5000
	MaxListItems         = 50
	MaxChatMessageLength = 1000
	MaxRating            = 5
)
