package output

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/credstack/rdcalc/internal/calculation"
	"github.com/credstack/rdcalc/internal/domain"
)

// ReportEnvelope wraps a calculation result with report identity metadata.
// The envelope varies per run (id, timestamp); the wrapped result does not.
type ReportEnvelope struct {
	ReportID      string                    `json:"report_id"`
	GeneratedAt   time.Time                 `json:"generated_at"`
	EngineVersion string                    `json:"engine_version"`
	Result        *domain.CalculationResult `json:"result"`
}

// JSONFormatter produces the JSON report envelope. The zero value emits
// compact output; set Pretty for indented output.
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	envelope := ReportEnvelope{
		ReportID:      uuid.NewString(),
		GeneratedAt:   time.Now().UTC(),
		EngineVersion: calculation.EngineVersion,
		Result:        result,
	}

	if j.Pretty {
		return json.MarshalIndent(envelope, "", "  ")
	}
	return json.Marshal(envelope)
}
