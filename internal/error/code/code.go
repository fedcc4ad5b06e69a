package code

// HTTP status codes.
const (
	// StatusOK - 200: success.
	StatusOK = 200
	// StatusBadRequest - 400: bad request parameters.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: not signed in.
	StatusUnauthorized = 401
	// StatusForbidden - 403: forbidden.
	StatusForbidden = 403
	// StatusNotFound - 404: resource not found.
	StatusNotFound = 404
	// StatusTooManyRequests - 429: too many requests.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: internal error.
	StatusInternalServerError = 500
	// StatusServiceUnavailable - 503: document store unreachable.
	StatusServiceUnavailable = 503
)

// General error codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown error.
	ErrUnknown
	// ErrBind - 400: request body or query could not be bound.
	ErrBind
	// ErrValidation - 400: request failed validation.
	ErrValidation
	// ErrTokenInvalid - 401: missing, invalid or revoked token.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: rate limited.
	ErrTooManyRequests
)

// Identity error codes (101xxx).
const (
	// ErrAuthFailed - 401: sign-in failed. Unknown user and wrong password are not distinguished.
	ErrAuthFailed int = iota + 101000
	// ErrUserAlreadyExist - 400: email already registered.
	ErrUserAlreadyExist
	// ErrForbidden - 403: role does not allow the operation.
	ErrForbidden
)

// Property error codes (102xxx).
const (
	// ErrPropertyNotFound - 404: property not found.
	ErrPropertyNotFound int = iota + 102000
	// ErrInvalidPaidField - 400: only tenantPaid and landlordPaid can be toggled.
	ErrInvalidPaidField
)

// Repair error codes (103xxx).
const (
	// ErrRepairNotFound - 404: repair not found.
	ErrRepairNotFound int = iota + 103000
	// ErrNoPhoneNumber - 400: contractor details hold no UK mobile number.
	ErrNoPhoneNumber
	// ErrInvalidRepairField - 400: field cannot be updated or has a bad value.
	ErrInvalidRepairField
)

// Certificate, task and contractor error codes (104xxx).
const (
	// ErrCertificateNotFound - 404: certificate not found.
	ErrCertificateNotFound int = iota + 104000
	// ErrInvalidCertificateType - 400: type is not EICR, Gas Safety, EPC or License.
	ErrInvalidCertificateType
	// ErrTaskNotFound - 404: task not found.
	ErrTaskNotFound
	// ErrContractorNotFound - 404: contractor not found.
	ErrContractorNotFound
)

// Database error codes (105xxx).
const (
	// ErrDatabase - 503: document store unavailable.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: record not found.
	ErrRecordNotFound
)
