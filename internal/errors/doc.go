// Package errors provides the coded error type used across rpg-rotation.
//
// Expected "nothing to do right now" outcomes (an unknown ability, a buff that
// is already up, a target that vanished) are never errors; dispatcher
// operations report them as false results. This package is for the rest:
// invalid configuration, and failures of the external state provider or
// injection channel that end a session.
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("snapshot not found")
//	err := errors.InvalidArgumentf("unknown plan step: %s", name)
//
// Adding metadata:
//
//	err := errors.Unavailable("game client is gone").
//	    WithMeta("ref", ref)
//
// Wrapping errors keeps the original code:
//
//	if err := provider.ReadSnapshot(ctx, ref); err != nil {
//	    return errors.Wrap(err, "failed to refresh status")
//	}
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", cfg.Name, vb)
//	errors.ValidatePercent("thresholds.min_vita_percent", cfg.MinVitaPercent, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer-Specific Guidelines
//
// Client layer (gamestate, injector):
//   - Return Unavailable when the external process cannot be reached
//   - Include the entity ref in metadata
//
// Service/Orchestrator layer:
//   - Validate configs and return InvalidArgument errors
//   - Wrap client errors with the operation that failed; never swallow them
package errors
