package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedTarget        = errors.New("unsupported asset target")
	ErrSourceUnreadable         = errors.New("install source unreadable")
	ErrSourceShape              = errors.New("install source does not match asset type")
	ErrInvalidName              = errors.New("invalid asset name")
	ErrIO                       = errors.New("filesystem operation failed")
	ErrCategoryDirectoryMissing = errors.New("category directory missing")
)

// InstallError is returned by every failed install.
// Kind is one of the sentinels above, Err is the underlying cause.
type InstallError struct {
	Category Category
	Name     string
	Kind     error
	Err      error
}

func (e *InstallError) Error() string {
	target := "<nil>"
	if e.Category != nil {
		target = e.Category.String()
	}
	if e.Err == nil {
		return fmt.Sprintf("install %q as %s: %v", e.Name, target, e.Kind)
	}
	return fmt.Sprintf("install %q as %s: %v: %v", e.Name, target, e.Kind, e.Err)
}

func (e *InstallError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
