package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DeviceType is the coarse layout mode of the prototype under test.
type DeviceType string

const (
	// DeviceApp is a portrait-oriented mobile-style mockup.
	DeviceApp DeviceType = "App"
	// DeviceWeb is a landscape-oriented desktop-style mockup.
	DeviceWeb DeviceType = "Web"
)

const defaultDescription = "Sin descripción."

// TestDefinition is the immutable definition of a usability test, produced by
// canonical field mapping from the heterogeneous shapes the backend returns.
type TestDefinition struct {
	ID            string
	Title         string
	Description   string
	DeviceType    DeviceType
	PrototypeLink string
	Questions     []string
}

// The automation backend is schema-less: the same logical field arrives under
// different names depending on which flow produced the row. All synonym
// resolution happens here so the rest of the runtime only sees canonical fields.
var (
	titleKeys       = []string{"Title", "Título", "title"}
	descriptionKeys = []string{"Description", "Descripción", "description"}
	linkKeys        = []string{"Link Figma", "figmaLink", "prototypeLink"}
	deviceKeys      = []string{"tipo_dispositivo", "Tipo de Dispositivo", "deviceType"}
	questionKeys    = []string{"Preguntas (JSON)", "questions", "Preguntas"}
)

// DecodeDefinition parses a raw definition response. Sequence responses use
// their first element; an empty sequence or a body without a recognizable
// title field is ErrEmptyOrInvalidData.
func DecodeDefinition(id string, data []byte) (*TestDefinition, error) {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	if list, ok := decoded.([]any); ok {
		if len(list) == 0 {
			return nil, ErrEmptyOrInvalidData
		}
		decoded = list[0]
	}

	item, ok := decoded.(map[string]any)
	if !ok || item == nil {
		return nil, ErrEmptyOrInvalidData
	}

	title := firstString(item, titleKeys)
	if title == "" {
		return nil, fmt.Errorf("%w: no title field", ErrEmptyOrInvalidData)
	}

	description := firstString(item, descriptionKeys)
	if description == "" {
		description = defaultDescription
	}

	return &TestDefinition{
		ID:            id,
		Title:         title,
		Description:   description,
		DeviceType:    normalizeDevice(firstString(item, deviceKeys)),
		PrototypeLink: strings.TrimSpace(firstString(item, linkKeys)),
		Questions:     decodeQuestions(item),
	}, nil
}

func firstString(item map[string]any, keys []string) string {
	for _, key := range keys {
		if v, ok := item[key].(string); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func normalizeDevice(raw string) DeviceType {
	if strings.EqualFold(strings.TrimSpace(raw), string(DeviceWeb)) {
		return DeviceWeb
	}
	return DeviceApp
}

// decodeQuestions accepts either a native sequence of strings or a
// JSON-encoded string of one. Blank entries are dropped; anything
// unparseable degrades to no questions.
func decodeQuestions(item map[string]any) []string {
	var raw any
	for _, key := range questionKeys {
		if v, ok := item[key]; ok && v != nil {
			raw = v
			break
		}
	}

	switch v := raw.(type) {
	case []any:
		return filterQuestions(v)
	case string:
		var parsed []any
		if err := json.Unmarshal([]byte(v), &parsed); err != nil {
			return nil
		}
		return filterQuestions(parsed)
	default:
		return nil
	}
}

func filterQuestions(raw []any) []string {
	var questions []string
	for _, q := range raw {
		if s, ok := q.(string); ok && strings.TrimSpace(s) != "" {
			questions = append(questions, s)
		}
	}
	return questions
}
