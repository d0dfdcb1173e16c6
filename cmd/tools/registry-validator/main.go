// cmd/tools/registry-validator/main.go
//
// Validates the worker registry file that BPMN modelers rely on. Run it in
// CI after editing configs/registry.json.
package main

import (
	"flag"
	"fmt"
	"os"

	"return-notify-workers/pkg/registry"
)

// knownErrorCodes mirrors the codes the workers can actually throw.
var knownErrorCodes = map[string]bool{
	"EMPTY_RESELLER_ID":        true,
	"EMPTY_NOTIFICATION_TYPE":  true,
	"SELLER_NOT_FOUND":         true,
	"CLIENT_NOT_FOUND":         true,
	"EMPLOYEE_NOT_FOUND":       true,
	"TEMPLATE_DATA_INCOMPLETE": true,
	"LOOKUP_FAILED":            true,
	"VALIDATION_FAILED":        true,
	"INPUT_PARSING_FAILED":     true,
}

func main() {
	path := flag.String("path", "configs/registry.json", "Path to registry file")
	flag.Parse()

	if err := validateRegistry(*path); err != nil {
		fmt.Fprintf(os.Stderr, "registry validation failed: %v\n", err)
		os.Exit(1)
	}
}

func validateRegistry(path string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	if len(reg.Workers) == 0 {
		return fmt.Errorf("registry contains no workers")
	}

	ids := make(map[string]bool)
	taskTypes := make(map[string]bool)
	for _, w := range reg.Workers {
		if w.ID == "" {
			return fmt.Errorf("worker missing required field: ID")
		}
		if ids[w.ID] {
			return fmt.Errorf("duplicate worker ID: %s", w.ID)
		}
		ids[w.ID] = true

		if w.TaskType == "" {
			return fmt.Errorf("worker %s missing required field: TaskType", w.ID)
		}
		if taskTypes[w.TaskType] {
			return fmt.Errorf("duplicate task type: %s", w.TaskType)
		}
		taskTypes[w.TaskType] = true

		if w.DisplayName == "" {
			return fmt.Errorf("worker %s missing required field: DisplayName", w.ID)
		}
		if w.Category == "" {
			return fmt.Errorf("worker %s missing required field: Category", w.ID)
		}

		for _, code := range w.ErrorCodes {
			if !knownErrorCodes[code] {
				return fmt.Errorf("worker %s declares unknown error code: %s", w.ID, code)
			}
		}
	}

	fmt.Printf("Registry validation passed. Found %d workers.\n", len(reg.Workers))
	return nil
}
