package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrEmailTaken         ErrCode = "EMAIL_ALREADY_REGISTERED"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly   ErrCode = "ADMIN_ACCESS_ONLY"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Exam & attempt ────────────────────────────────────────────────
	ErrExamNotAvailable  ErrCode = "EXAM_NOT_AVAILABLE"
	ErrExamNotDraft      ErrCode = "EXAM_NOT_DRAFT"
	ErrExamNotPublished  ErrCode = "EXAM_NOT_PUBLISHED"
	ErrNoQuestions       ErrCode = "NO_QUESTIONS"
	ErrSectionMismatch   ErrCode = "SECTION_COUNT_MISMATCH"
	ErrDuplicateSection  ErrCode = "DUPLICATE_SECTION_NAME"
	ErrAttemptCompleted  ErrCode = "ATTEMPT_ALREADY_COMPLETED"
	ErrNoActiveAttempt   ErrCode = "NO_ACTIVE_ATTEMPT"
	ErrPersistenceFailed ErrCode = "PERSISTENCE_ERROR"

	// ─── AI ────────────────────────────────────────────────────────────
	ErrAIGeneration ErrCode = "AI_GENERATION_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrEmailTaken:
		return "An account with this email already exists."
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid or expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "The ID format is invalid."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The requested resource was not found."
	case ErrConflict:
		return "The resource already exists."

	// ─── Exam & attempt ────────────────────────────────────────────────
	case ErrExamNotAvailable:
		return "This exam is not available right now."
	case ErrExamNotDraft:
		return "This exam is not in DRAFT status."
	case ErrExamNotPublished:
		return "This exam has not been published."
	case ErrNoQuestions:
		return "This exam has no questions."
	case ErrSectionMismatch:
		return "Section question counts do not match the questions supplied."
	case ErrDuplicateSection:
		return "Section names must be unique within an exam."
	case ErrAttemptCompleted:
		return "This attempt has already been submitted."
	case ErrNoActiveAttempt:
		return "No active attempt exists for this exam."
	case ErrPersistenceFailed:
		return "Your result could not be saved. Please try submitting again."

	// ─── AI ────────────────────────────────────────────────────────────
	case ErrAIGeneration:
		return "The AI service could not complete the request. Please try again."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
