package code

// error code -> message
var codeMessageMap = map[int]string{
	// general
	ErrSuccess:         "success",
	ErrUnknown:         "unknown error",
	ErrBind:            "invalid request parameters",
	ErrValidation:      "request validation failed",
	ErrTokenInvalid:    "invalid or expired session",
	ErrTooManyRequests: "too many requests, please try again later",

	// identity
	ErrAuthFailed:       "failed to log in, please check your credentials",
	ErrUserAlreadyExist: "user already exists",
	ErrForbidden:        "not allowed",

	// properties
	ErrPropertyNotFound: "property not found",
	ErrInvalidPaidField: "unknown paid flag",

	// repairs
	ErrRepairNotFound:     "repair not found",
	ErrNoPhoneNumber:      "no valid phone number found for WhatsApp message",
	ErrInvalidRepairField: "invalid repair field",

	// certificates, tasks, contractors
	ErrCertificateNotFound:    "certificate not found",
	ErrInvalidCertificateType: "unknown certificate type",
	ErrTaskNotFound:           "task not found",
	ErrContractorNotFound:     "contractor not found",

	// database
	ErrDatabase:       "document store unavailable",
	ErrRecordNotFound: "record not found",
}

// error code -> HTTP status
var codeStatusMap = map[int]int{
	// general
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	// identity
	ErrAuthFailed:       StatusUnauthorized,
	ErrUserAlreadyExist: StatusBadRequest,
	ErrForbidden:        StatusForbidden,

	// properties
	ErrPropertyNotFound: StatusNotFound,
	ErrInvalidPaidField: StatusBadRequest,

	// repairs
	ErrRepairNotFound:     StatusNotFound,
	ErrNoPhoneNumber:      StatusBadRequest,
	ErrInvalidRepairField: StatusBadRequest,

	// certificates, tasks, contractors
	ErrCertificateNotFound:    StatusNotFound,
	ErrInvalidCertificateType: StatusBadRequest,
	ErrTaskNotFound:           StatusNotFound,
	ErrContractorNotFound:     StatusNotFound,

	// database
	ErrDatabase:       StatusServiceUnavailable,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage returns the message of an error code
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "unknown error"
}

// GetStatus returns the HTTP status of an error code
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
