package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL. Clients map these codes to their own messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Applications (APPLICATION_) ====================
	ApplicationNotFound = "APPLICATION_NOT_FOUND"
	BusinessNotFound    = "BUSINESS_NOT_FOUND"
	TaxpayerNotFound    = "TAXPAYER_NOT_FOUND"

	// ==================== Wizard (WIZARD_) ====================
	WizardSessionNotFound = "WIZARD_SESSION_NOT_FOUND"
	WizardInvalidStep     = "WIZARD_INVALID_STEP"
	WizardAlreadyDone     = "WIZARD_ALREADY_SUBMITTED"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"
	UploadMissingFile     = "UPLOAD_MISSING_FILE"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
