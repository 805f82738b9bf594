package jvmsig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/willhansen/jvmsig/ir"
	"github.com/willhansen/jvmsig/jvm"
	"github.com/willhansen/jvmsig/names"
)

// DefaultLanguageVersion is used when Config.LanguageVersion is empty.
const DefaultLanguageVersion = "v1.9"

var validate = validator.New()

func init() {
	// Registration only fails for an empty tag or a nil func.
	_ = validate.RegisterValidation("langversion", func(fl validator.FieldLevel) bool {
		return names.ValidVersion(fl.Field().String())
	})
}

// Config holds the configuration of a Mapper.
type Config struct {
	// LanguageVersion selects the name sanitization rules, e.g. "v1.9".
	// Versions before names.SanitizeSince keep raw names.
	// Default: DefaultLanguageVersion
	LanguageVersion string `validate:"omitempty,langversion"`

	// BigArity is the largest function arity with a dedicated carrier class.
	// Default: jvm.BigArity
	BigArity int `validate:"gte=0,lte=255"`

	// CacheSize bounds the signature cache. Zero disables caching.
	CacheSize int `validate:"gte=0"`

	// Mode is the mode used by Mapper.Signature.
	// Default: jvm.ModeDefault
	Mode jvm.Mode
}

// applyConfigDefaults returns a copy of cfg with defaults filled in.
func applyConfigDefaults(cfg Config) Config {
	if cfg.LanguageVersion == "" {
		cfg.LanguageVersion = DefaultLanguageVersion
	}
	if cfg.BigArity == 0 {
		cfg.BigArity = jvm.BigArity
	}
	return cfg
}

// Validate checks cfg and returns an *ir.Error with code invalid_config
// listing every offending field.
func (cfg Config) Validate() error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return ir.Wrap(err, ir.CodeInvalidConfig, "invalid configuration")
	}
	details := make(map[string]any, len(valErrs))
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		msg := formatValidationError(ve)
		details[ve.Field()] = msg
		messages = append(messages, ve.Field()+": "+msg)
	}
	return &ir.Error{
		Code:    ir.CodeInvalidConfig,
		Message: strings.Join(messages, "; "),
		Details: details,
	}
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "langversion":
		return fmt.Sprintf("%q is not a language version (want vMAJOR.MINOR)", ve.Value())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
