package validate

// This package adds struct and field validation as a thin wrapper around the go-playground/validator package.
//
// e.g. internal/config/config.go
//   type Config struct {
//       ZetaTerms int    `yaml:"zeta_terms" validate:"min=1,max=1000000"`
//       LogLevel  string `yaml:"log_level"  validate:"omitempty,loglevel"`
//   }
//
// Besides the built-in tags this registers "loglevel" (a logrus level name)
// and "listenaddr" (host:port where the host may be empty, e.g. ":8080").

import (
	"net"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// validatorInstance is a shared validator for the application.
// It is initialized once and reused to avoid repeated allocations.
//
//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// get returns a process-wide singleton of the validator.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
		_ = validatorInst.RegisterValidation("loglevel", isLogLevel)
		_ = validatorInst.RegisterValidation("listenaddr", isListenAddr)
	})
	return validatorInst
}

func isLogLevel(fl validator.FieldLevel) bool {
	_, err := logrus.ParseLevel(fl.Field().String())
	return err == nil
}

func isListenAddr(fl validator.FieldLevel) bool {
	_, port, err := net.SplitHostPort(fl.Field().String())
	return err == nil && port != ""
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}
