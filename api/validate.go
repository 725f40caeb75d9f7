package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonschema"
)

// Schema for job create/update bodies. No field is required (all job
// fields are optional) and unknown fields pass through unconstrained, so
// a caller-supplied postedBy is ignored rather than rejected.
const jobSchemaJSON = `{
	"type": "object",
	"properties": {
		"title": {"type": "string"},
		"company": {"type": "string"},
		"description": {"type": "string"},
		"location": {"type": "string"},
		"salary": {"type": "number", "minimum": 0}
	}
}`

var jobSchema = mustSchema(jobSchemaJSON)

func mustSchema(src string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(fmt.Sprintf("invalid embedded job schema: %v", err))
	}
	return rs
}

// validateJobPayload type-checks a job create/update body against the
// embedded schema.
func validateJobPayload(ctx context.Context, body []byte) error {
	if len(body) == 0 {
		return nil
	}

	keyErrs, err := jobSchema.ValidateBytes(ctx, body)
	if err != nil {
		return err
	}
	if len(keyErrs) > 0 {
		return fmt.Errorf("%s", keyErrs[0].Error())
	}

	return nil
}
