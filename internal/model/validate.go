package model

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/resume.schema.json
var resumeSchema []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(resumeSchema))
	})
	return schema, schemaErr
}

// ValidateRaw checks a stored row against the record schema. The result is
// advisory: callers log it and carry on, nothing is rejected because of it.
func ValidateRaw(raw RawRecord) ([]string, error) {
	s, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	doc := map[string]json.RawMessage{}
	for name, b := range map[string][]byte{
		"personal_info": raw.PersonalInfo,
		"education":     raw.Education,
		"experience":    raw.Experience,
		"skills":        raw.Skills,
		"projects":      raw.Projects,
		"awards":        raw.Awards,
	} {
		if !isNull(b) && json.Valid(b) {
			doc[name] = json.RawMessage(b)
		}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	res, err := s.Validate(gojsonschema.NewBytesLoader(b))
	if err != nil {
		return nil, err
	}
	if res.Valid() {
		return nil, nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return msgs, nil
}
