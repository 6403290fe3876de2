package mcp

import (
	"fmt"

	"github.com/felixgeelhaar/scripthost/internal/app"
	"github.com/felixgeelhaar/scripthost/internal/validation"
)

// ValidateLoadInput validates LoadInput fields.
func ValidateLoadInput(in *LoadInput) error {
	if err := validation.ValidateLoadTarget(in.Target); err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}
	return nil
}

// ValidateUnloadInput validates UnloadInput fields.
func ValidateUnloadInput(in *UnloadInput) error {
	if err := validation.ValidateScriptName(in.Name); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}
	return nil
}

// ValidateExecInput validates ExecInput fields.
func ValidateExecInput(in *ExecInput) error {
	if err := validation.ValidateCode(in.Code); err != nil {
		return fmt.Errorf("invalid code: %w", err)
	}
	if in.Name != "" {
		if err := validation.ValidateScriptName(in.Name); err != nil {
			return fmt.Errorf("invalid name: %w", err)
		}
	}
	return nil
}

// ValidateCompleteInput validates CompleteInput fields.
func ValidateCompleteInput(in *CompleteInput) error {
	switch in.Command {
	case app.SubcommandLoad, app.SubcommandUnload:
	default:
		return fmt.Errorf("invalid command %q: expected %q or %q", in.Command, app.SubcommandLoad, app.SubcommandUnload)
	}
	if err := validation.ValidateWord(in.Word); err != nil {
		return fmt.Errorf("invalid word: %w", err)
	}
	return nil
}
