package config

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

// parseYAML decodes a YAML machine description. Unknown fields are rejected
// so typos such as "pawl:" fail loudly.
func parseYAML(file string, data []byte) (*MachineSpec, error) {
	var spec MachineSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{File: file, Message: "configuration is empty"}
		}
		return nil, yamlError(file, err)
	}
	if err := validateSpec(file, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// yamlError converts a yaml.v3 error into a ParseError, keeping the first
// reported line number.
func yamlError(file string, err error) *ParseError {
	msg := err.Error()
	var te *yaml.TypeError
	if errors.As(err, &te) && len(te.Errors) > 0 {
		msg = te.Errors[0]
	}
	pe := &ParseError{File: file, Message: msg}
	if m := yamlLinePattern.FindStringSubmatch(msg); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
	}
	return pe
}

// EncodeYAML renders spec as YAML.
func EncodeYAML(spec *MachineSpec) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(spec); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
