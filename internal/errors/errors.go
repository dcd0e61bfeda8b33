// Package errors provides the error kinds raised while reconciling a
// project's system state.
//
// Every failure that leaves the register or remove pipeline is a
// *VHostError carrying:
//   - Code: the failure kind (PATH_NOT_FOUND, CERTIFICATE, ...)
//   - Message: human-readable description
//   - Domain: the project domain involved (if any)
//   - Step: the pipeline step that failed (if any)
//   - Err: the wrapped cause
//
// # Sentinel Errors
//
// Each kind has a sentinel usable with errors.Is, which compares codes only:
//
//	errors.ErrPathNotFound         // document root missing
//	errors.ErrPrerequisite         // mkcert / CA bootstrap failed
//	errors.ErrCertificate          // certificate generation failed
//	errors.ErrConfigWrite          // vhost or include file I/O failed
//	errors.ErrHostsUpdate          // hosts file I/O failed
//	errors.ErrServiceRestart       // web server restart failed (non-fatal)
//	errors.ErrPrivilegeRequired    // not running as root
//
// # Usage
//
//	return errors.Step(errors.ErrCodeCertificate, "obtain certificate", "demo.test", err)
//
//	if errors.Is(err, errors.ErrPathNotFound) {
//	    // nothing was mutated
//	}
//
// IsFatal reports whether an error should halt a pipeline. Only
// SERVICE_RESTART is non-fatal.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for the reconciliation failure kinds.
const (
	ErrCodePathNotFound   ErrorCode = "PATH_NOT_FOUND"  // Document root missing
	ErrCodePrerequisite   ErrorCode = "PREREQUISITE"    // mkcert install or CA setup
	ErrCodeCertificate    ErrorCode = "CERTIFICATE"     // Certificate generation
	ErrCodeConfigWrite    ErrorCode = "CONFIG_WRITE"    // VHost / include file I/O
	ErrCodeHostsUpdate    ErrorCode = "HOSTS_UPDATE"    // Hosts file I/O
	ErrCodeServiceRestart ErrorCode = "SERVICE_RESTART" // Web server restart
	ErrCodePermission     ErrorCode = "PERMISSION"      // Root required
	ErrCodeValidation     ErrorCode = "VALIDATION"      // Input validation failed
	ErrCodeConfig         ErrorCode = "CONFIG"          // User configuration error
	ErrCodeInternal       ErrorCode = "INTERNAL"        // Internal/unexpected error
)

// VHostError represents a structured error with context about the operation.
type VHostError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Domain  string    // Domain name (if applicable)
	Step    string    // Pipeline step (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *VHostError) Error() string {
	msg := e.Message
	if e.Step != "" {
		if msg == "" {
			msg = e.Step
		} else {
			msg = e.Step + ": " + msg
		}
	}

	switch {
	case e.Domain != "" && e.Err != nil && msg != "":
		return fmt.Sprintf("%s: %s: %v", e.Domain, msg, e.Err)
	case e.Domain != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Domain, e.Err)
	case e.Domain != "":
		return fmt.Sprintf("%s: %s", e.Domain, msg)
	case e.Err != nil && msg != "":
		return fmt.Sprintf("%s: %v", msg, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error for error chain traversal.
func (e *VHostError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *VHostError) Is(target error) bool {
	t, ok := target.(*VHostError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors, one per failure kind.
var (
	// ErrPathNotFound indicates the document root does not exist.
	ErrPathNotFound = &VHostError{Code: ErrCodePathNotFound, Message: "path not found"}

	// ErrPrerequisite indicates mkcert or its local CA could not be set up.
	ErrPrerequisite = &VHostError{Code: ErrCodePrerequisite, Message: "prerequisite setup failed"}

	// ErrCertificate indicates the certificate pair could not be generated.
	ErrCertificate = &VHostError{Code: ErrCodeCertificate, Message: "certificate generation failed"}

	// ErrConfigWrite indicates a vhost or include file could not be written.
	ErrConfigWrite = &VHostError{Code: ErrCodeConfigWrite, Message: "config write failed"}

	// ErrHostsUpdate indicates the hosts file could not be updated.
	ErrHostsUpdate = &VHostError{Code: ErrCodeHostsUpdate, Message: "hosts update failed"}

	// ErrServiceRestart indicates the web server restart failed.
	ErrServiceRestart = &VHostError{Code: ErrCodeServiceRestart, Message: "service restart failed"}

	// ErrPrivilegeRequired indicates root privileges are required.
	ErrPrivilegeRequired = &VHostError{Code: ErrCodePermission, Message: "root privileges required"}

	// ErrInvalidDomain indicates the domain name is not valid.
	ErrInvalidDomain = &VHostError{Code: ErrCodeValidation, Message: "invalid domain"}
)

// PathNotFound creates an error for a missing document root.
func PathNotFound(domain, path string) error {
	return &VHostError{
		Code:    ErrCodePathNotFound,
		Message: fmt.Sprintf("path does not exist: %s", path),
		Domain:  domain,
	}
}

// PrivilegeRequired creates the startup error for a non-root invocation.
func PrivilegeRequired() error {
	return &VHostError{
		Code:    ErrCodePermission,
		Message: "this tool requires root privileges. Please run with sudo",
	}
}

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &VHostError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &VHostError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// Step creates an error attributed to a pipeline step for a domain.
func Step(code ErrorCode, step, domain string, err error) error {
	return &VHostError{
		Code:   code,
		Step:   step,
		Domain: domain,
		Err:    err,
	}
}

// CodeOf returns the code of the first VHostError in err's chain,
// or ErrCodeInternal if there is none.
func CodeOf(err error) ErrorCode {
	var vErr *VHostError
	if errors.As(err, &vErr) {
		return vErr.Code
	}
	return ErrCodeInternal
}

// IsFatal reports whether err must halt a reconciliation pipeline.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) != ErrCodeServiceRestart
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
