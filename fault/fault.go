// Package fault provides a single instance of errors to allow easy
// comparison, for the cross-cutting failures that have no payload of
// their own (§7's codec-adjacent errors, account decode errors). Errors
// that carry a payload — a holder, a balance, an address — live beside
// the code that raises them instead (see asset.Error, address's own
// decode errors).
package fault

// GenericError is the error base.
type GenericError string

// to allow for different classes of errors
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAssetNotFound      = NotFoundError("asset not found")
	ErrAssetRequestFail   = ProcessError("conflicting asset registration")
	ErrConfigDirPath      = InvalidError("config is not a folder")
	ErrInvalidSignature   = InvalidError("invalid signature")
	ErrJsonParseFail      = ProcessError("parse to json failed")
	ErrKeyLength          = InvalidError("key length is invalid")
	ErrNotFoundConfigFile = NotFoundError("config file is not found")
	ErrRateLimited        = ProcessError("rate limit exceeded")
	ErrRequiredConfigDir  = InvalidError("config folder is required")
	ErrTooManyItems       = InvalidError("too many items in one request")
	ErrUnmarshalTextFail  = ProcessError("unmarshal text failed")
)

func (e GenericError) Error() string { return string(e) }

func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
