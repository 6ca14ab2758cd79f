package store

import (
	_ "embed"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"todo/internal/service"
)

//go:embed tasks.schema.json
var taskFileSchemaJSON string

var taskFileSchema = jsonschema.MustCompileString("tasks.schema.json", taskFileSchemaJSON)

// decodeTasks validates data against the task file schema and decodes it.
// Every failure is reported as ErrCorrupt.
func decodeTasks(data []byte) ([]service.Task, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, corrupt(fmt.Errorf("parse: %w", err))
	}
	if err := taskFileSchema.Validate(doc); err != nil {
		return nil, corrupt(err)
	}

	var tasks []service.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, corrupt(fmt.Errorf("decode: %w", err))
	}
	return tasks, nil
}

// encodeTasks encodes tasks with 2-space indentation and a trailing newline.
// A nil collection is written as an empty array.
func encodeTasks(tasks []service.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []service.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("store: encode tasks: %w", err)
	}
	return append(data, '\n'), nil
}
