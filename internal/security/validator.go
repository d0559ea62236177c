// Package security validates the paths and URLs a sitemap run touches.
package security

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/d-kuro/git-sitemap/internal/errors"
)

// Validator defines the validation interface.
type Validator interface {
	ValidatePath(path string) error
	ValidateURL(urlStr string) error
	SanitizePath(path string) (string, error)
}

// DefaultValidator provides default validation implementation.
type DefaultValidator struct {
	allowedPaths []string
	blockedPaths []string
}

// NewDefaultValidator creates a new default validator that refuses system directories.
func NewDefaultValidator() *DefaultValidator {
	return &DefaultValidator{
		allowedPaths: []string{},
		blockedPaths: []string{
			"/etc",
			"/usr/bin",
			"/usr/sbin",
			"/sbin",
			"/bin",
			"/sys",
			"/proc",
			"/dev",
		},
	}
}

// WithAllowedPaths restricts paths to the given directories.
func (v *DefaultValidator) WithAllowedPaths(paths []string) *DefaultValidator {
	v.allowedPaths = make([]string, len(paths))
	for i, p := range paths {
		v.allowedPaths[i] = filepath.Clean(p)
	}
	return v
}

// WithBlockedPaths adds blocked paths to the default list.
func (v *DefaultValidator) WithBlockedPaths(paths []string) *DefaultValidator {
	v.blockedPaths = append(v.blockedPaths, paths...)
	return v
}

// ValidatePath checks that an absolute path is outside blocked directories
// and, when allowed paths are set, inside one of them.
func (v *DefaultValidator) ValidatePath(path string) error {
	if !filepath.IsAbs(path) {
		return errors.Validation("path must be absolute")
	}

	cleanPath := filepath.Clean(path)
	resolvedPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		resolvedPath = cleanPath
	}

	for _, blocked := range v.blockedPaths {
		if within(resolvedPath, blocked) {
			return errors.ValidationWithDetails(
				"path is blocked",
				"path accesses restricted system directory",
			)
		}
	}

	if len(v.allowedPaths) > 0 {
		allowed := false
		for _, allowedPath := range v.allowedPaths {
			if within(resolvedPath, allowedPath) || within(cleanPath, allowedPath) {
				allowed = true
				break
			}
		}
		if !allowed {
			return errors.ValidationWithDetails(
				"path not allowed",
				"path is not in allowed directories",
			)
		}
	}

	return nil
}

// ValidateURL checks that urlStr can serve as a sitemap base URL.
func (v *DefaultValidator) ValidateURL(urlStr string) error {
	if urlStr == "" {
		return errors.Validation("URL cannot be empty")
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return errors.ValidationWithDetails(
			"invalid URL format",
			err.Error(),
		)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.ValidationWithDetails(
			"invalid URL scheme",
			"only HTTP and HTTPS are allowed",
		)
	}

	if parsedURL.Host == "" {
		return errors.Validation("URL must have a host")
	}

	if parsedURL.User != nil {
		return errors.Validation("URL must not carry credentials")
	}

	if parsedURL.RawQuery != "" || parsedURL.Fragment != "" {
		return errors.Validation("URL must not have a query or fragment")
	}

	return nil
}

// SanitizePath cleans and validates a file path.
func (v *DefaultValidator) SanitizePath(path string) (string, error) {
	if err := v.ValidatePath(path); err != nil {
		return "", err
	}

	return filepath.Clean(path), nil
}

// within reports whether path equals dir or lies beneath it.
func within(path, dir string) bool {
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator))
}
