package cli

import (
	"errors"
	"fmt"

	"github.com/Wassimkraiem/plant-tracker/internal/garden"
	"github.com/Wassimkraiem/plant-tracker/internal/store"
)

// reportStoreError prints a store failure. Missing records are a failure
// (exit 1); anything else is a command error (exit 2).
func reportStoreError(f *OutputFormatter, action string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		if outErr := f.Error(ErrCodeNotFound, err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, action, err)
	}
	if outErr := f.Error(ErrCodeGeneric, fmt.Sprintf("%s: %v", action, err), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, action, err)
}

// reportValidation prints validation problems and returns a failure.
func reportValidation(f *OutputFormatter, subject string, errs []garden.ValidationError) error {
	verrs := garden.ValidationErrors(errs)
	if err := f.Error(ErrCodeValidation, fmt.Sprintf("invalid %s: %s", subject, verrs.Error()), errs); err != nil {
		return err
	}
	return WrapExitError(ExitFailure, "invalid "+subject, verrs)
}
