package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var machineSchema string

// parseCUE compiles a CUE machine description, unifies it with #Machine
// and decodes the concrete result.
func parseCUE(file string, data []byte) (*MachineSpec, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(machineSchema, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile machine schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(file))
	if err := value.Err(); err != nil {
		return nil, cueError(file, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Machine")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(file, err)
	}

	var spec MachineSpec
	if err := unified.Decode(&spec); err != nil {
		return nil, cueError(file, err)
	}
	return &spec, nil
}

// cueError keeps the first CUE error and its position.
func cueError(file string, err error) *ParseError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ParseError{File: file, Message: err.Error()}
	}

	first := errs[0]
	pe := &ParseError{File: file, Message: first.Error()}
	for _, pos := range cueerrors.Positions(first) {
		if pos.Filename() != file {
			continue
		}
		pe.Line = pos.Line()
		pe.Column = pos.Column()
		break
	}
	return pe
}
