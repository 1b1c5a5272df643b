package forkset

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks. The typed errors below wrap them.
var (
	// ErrConfig marks fatal configuration errors: chronology cycles,
	// missing roots, unknown chains, malformed transition definitions.
	// Nothing recovers from these; registration must be fixed.
	ErrConfig = errors.New("forkset: configuration error")

	// ErrUnsupported marks usage errors where a caller queried an attribute
	// the rule set does not support (e.g. blob schedule on a pre-blob fork).
	// Callers get this error instead of a silently coerced default.
	ErrUnsupported = errors.New("forkset: attribute unsupported")

	// ErrFeatureConflict marks violated requires/incompatibleWith relations
	// detected during composition.
	ErrFeatureConflict = errors.New("forkset: feature conflict")
)

// ConfigError is a fatal configuration error raised synchronously during
// registration or chronology construction.
type ConfigError struct {
	Op     string // the operation that failed (e.g. "OrderedList", "DefineTransition")
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("forkset: %s: %s", e.Op, e.Detail)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func configErrorf(op, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Op: op, Detail: fmt.Sprintf(format, args...)}
}

// AttributeError reports a query for an attribute a rule set does not
// support, or for an attribute name that does not exist at all.
type AttributeError struct {
	RuleSet   string
	Attribute string
	Unknown   bool // true when the attribute name is not part of the attribute set
}

func (e *AttributeError) Error() string {
	if e.Unknown {
		return fmt.Sprintf("forkset: unknown attribute %q", e.Attribute)
	}
	return fmt.Sprintf("forkset: attribute %s unsupported by rule set %q", e.Attribute, e.RuleSet)
}

func (e *AttributeError) Is(target error) bool {
	return target == ErrUnsupported
}

// FeatureConflictError reports a requires/incompatibleWith violation found
// while composing features onto a base rule set.
type FeatureConflictError struct {
	Feature  int    // the feature whose relation was violated
	Other    int    // the feature named by the relation
	Relation string // "requires" or "incompatible"
}

func (e *FeatureConflictError) Error() string {
	if e.Relation == "requires" {
		return fmt.Sprintf("forkset: EIP-%d requires EIP-%d, which is not in the composed set", e.Feature, e.Other)
	}
	return fmt.Sprintf("forkset: EIP-%d is incompatible with EIP-%d", e.Feature, e.Other)
}

func (e *FeatureConflictError) Is(target error) bool {
	return target == ErrFeatureConflict
}
