// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals and validates the result as an AssignedTask.
func Parse(data []byte) (*AssignedTask, error) {
	stripped := jsonc.ToJSON(data)

	var assigned AssignedTask
	if err := json.Unmarshal(stripped, &assigned); err != nil {
		return nil, fmt.Errorf("parsing assigned task: %w", err)
	}
	if err := assigned.Validate(); err != nil {
		return nil, err
	}

	return &assigned, nil
}

// ReadFile reads a JSONC task descriptor from disk and parses it.
func ReadFile(path string) (*AssignedTask, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	assigned, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return assigned, nil
}
