package review

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	idKeys     = []string{"id", "ID", "id_test"}
	titleKeys  = []string{"Título", "title", "Title", "nombre"}
	linkKeys   = []string{"URL del test", "link", "url"}
	dateKeys   = []string{"Fecha de Creación", "createdAt", "fecha", "date"}
	rowsKeys   = []string{"Respuestas", "respuestas", "responses"}
	stampKeys  = []string{"timestamp", "fecha", "Timestamp"}
	qKeys      = []string{"question", "pregunta", "Question"}
	aKeys      = []string{"answer", "respuesta", "Answer", "answerText"}
	dateLayout = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02", "02/01/2006"}
)

// DecodeTestList parses the list-tests response into summaries sorted newest
// first. Rows without a link get one synthesized from the share base.
func DecodeTestList(data []byte, shareBase string) ([]TestSummary, error) {
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode test list: %w", err)
	}

	tests := make([]TestSummary, 0, len(rows))
	for _, row := range rows {
		summary := TestSummary{
			ID:    pickString(row, idKeys),
			Title: pickString(row, titleKeys),
			Link:  pickString(row, linkKeys),
		}
		if summary.Title == "" {
			summary.Title = "Test sin título"
		}
		if summary.Link == "" && summary.ID != "" && shareBase != "" {
			summary.Link = shareBase + "?id=" + summary.ID
		}

		if raw := pickString(row, dateKeys); raw != "" {
			summary.CreatedRaw = raw
			summary.CreatedAt = parseDate(raw)
		}
		tests = append(tests, summary)
	}

	sort.SliceStable(tests, func(i, j int) bool {
		return tests[i].CreatedAt.After(tests[j].CreatedAt)
	})
	return tests, nil
}

// DecodeResponses parses the fetch-responses payload. Every row carries the
// responses of one tester as a JSON-encoded string (or native sequence);
// answers get grouped by question preserving first-seen question order. Rows
// that fail to parse are skipped rather than failing the whole view.
func DecodeResponses(data []byte) (string, []QuestionResponses, error) {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", nil, fmt.Errorf("decode responses: %w", err)
	}

	rows, ok := decoded.([]any)
	if !ok {
		if wrapper, ok := decoded.(map[string]any); ok {
			rows, _ = wrapper["data"].([]any)
		}
	}

	title := ""
	var order []string
	grouped := make(map[string][]ResponseDetail)

	for _, r := range rows {
		row, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if title == "" {
			title = pickString(row, titleKeys)
		}

		entries := decodeEntries(row)
		stamp := pickString(row, stampKeys)

		for i, entry := range entries {
			question := pickString(entry, qKeys)
			if question == "" {
				question = fmt.Sprintf("Pregunta %d", i+1)
			}
			if _, seen := grouped[question]; !seen {
				order = append(order, question)
			}
			isAudio, _ := entry["isAudio"].(bool)
			grouped[question] = append(grouped[question], ResponseDetail{
				Answer:    pickString(entry, aKeys),
				Timestamp: stamp,
				IsAudio:   isAudio,
			})
		}
	}

	result := make([]QuestionResponses, 0, len(order))
	for _, q := range order {
		result = append(result, QuestionResponses{Question: q, Answers: grouped[q]})
	}
	return title, result, nil
}

func decodeEntries(row map[string]any) []map[string]any {
	var raw any
	for _, key := range rowsKeys {
		if v, ok := row[key]; ok && v != nil {
			raw = v
			break
		}
	}

	var list []any
	switch v := raw.(type) {
	case []any:
		list = v
	case string:
		if err := json.Unmarshal([]byte(v), &list); err != nil {
			return nil
		}
	default:
		return nil
	}

	entries := make([]map[string]any, 0, len(list))
	for _, e := range list {
		if entry, ok := e.(map[string]any); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

func pickString(row map[string]any, keys []string) string {
	for _, key := range keys {
		if v, ok := row[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func parseDate(raw string) time.Time {
	for _, layout := range dateLayout {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
