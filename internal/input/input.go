// Package input loads structured message definitions from JSONC files.
//
// The format command's repeatable flags get unwieldy for messages with
// many entries, so `format --from-file` accepts a JSON document carrying
// the subject and the four entry lists instead. Comments and trailing
// commas are allowed: the file is run through github.com/tidwall/jsonc
// before parsing with the standard encoding/json.
package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/mmr-tortoise/commitmsg/internal/model"
)

// LoadDefinition reads a JSONC message definition and returns the
// structured message it describes. Unknown fields are rejected so typos
// (say "context" misspelled "contexts") fail loudly instead of silently
// dropping a section.
func LoadDefinition(path string) (model.Message, error) {
	var msg model.Message

	data, err := os.ReadFile(path)
	if err != nil {
		return msg, fmt.Errorf("failed to read message definition %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&msg); err != nil {
		return msg, fmt.Errorf("failed to parse message definition %s: %w", path, err)
	}
	return msg, nil
}
