package scorer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// evaluationPayload is the JSON shape the persona prompt asks the model for.
type evaluationPayload struct {
	Liking         float64 `json:"liking"`
	PurchaseIntent float64 `json:"purchase_intent"`
	Commentary     string  `json:"commentary"`
	Confidence     float64 `json:"confidence"`
}

// ParseRecord extracts the evaluation JSON object from raw model output and
// turns it into a validated ScoreRecord. Models occasionally wrap the object
// in prose or code fences, so parsing starts at the first '{' and ends at the
// last '}'.
func ParseRecord(agentID, adID, raw string) (ScoreRecord, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ScoreRecord{}, fmt.Errorf("agent %s: no JSON object in model output", agentID)
	}

	var payload evaluationPayload
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return ScoreRecord{}, fmt.Errorf("agent %s: parse model output: %w", agentID, err)
	}

	rec := ScoreRecord{
		AgentID:        agentID,
		AdID:           adID,
		Liking:         payload.Liking,
		PurchaseIntent: payload.PurchaseIntent,
		Commentary:     payload.Commentary,
		Confidence:     payload.Confidence,
	}
	if err := rec.Validate(); err != nil {
		return ScoreRecord{}, err
	}
	return rec, nil
}
