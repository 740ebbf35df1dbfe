// Package guard provides ConstructorGuard, a marker embedded in value objects,
// entities, commands and queries to tell an instance built by its constructor
// apart from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing struct was produced by its
// constructor. The zero value reports "not constructed".
//
// Example:
//
//	var ErrEvidenceIsNotConstructed = errors.New("Evidence must be created via NewEvidence")
//
//	type Evidence struct {
//	    photoURL string
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewEvidence(photoURL string) (Evidence, error) {
//	    if photoURL == "" {
//	        return Evidence{}, errors.New("photo url is required")
//	    }
//	    return Evidence{photoURL: photoURL, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (e Evidence) Validate() error {
//	    return e.guard.Validate(ErrEvidenceIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
// Call it only from the constructor of the owning type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero value it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
