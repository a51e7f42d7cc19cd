package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrInvalidDebounce indicates an invalid watch debounce interval
	ErrInvalidDebounce = errors.New("invalid watch debounce")

	// ErrInvalidIgnorePattern indicates an unparseable ignore glob
	ErrInvalidIgnorePattern = errors.New("invalid ignore pattern")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Watch.DebounceMs < 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidDebounce, cfg.Watch.DebounceMs))
	}

	for _, pattern := range cfg.Watch.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidIgnorePattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// CompiledIgnores compiles the watch ignore patterns. Validate has already
// checked them, so compilation failures here are programmer error.
func (c *Config) CompiledIgnores() []glob.Glob {
	globs := make([]glob.Glob, 0, len(c.Watch.Ignore))
	for _, pattern := range c.Watch.Ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			continue
		}
		globs = append(globs, g)
	}
	return globs
}
