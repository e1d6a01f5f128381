// internal/app/reconcile/outcome.go
package reconcile

// Outcome statuses, mirrored into the sync log and the HTTP response.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Outcome codes. A run either completes fully (200) or is reported failed
// (400), whatever the underlying cause.
const (
	CodeSuccess = 200
	CodeFailed  = 400
)

// SuccessMessage is recorded when every fetched record was applied.
const SuccessMessage = "Sync completed successfully"

// Outcome is the structured result of one reconciliation run. Callers branch
// on Status/Code; Message carries the success text or the underlying error.
type Outcome struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	RunID   string `json:"runId,omitempty"`
}

// OK reports whether the run completed fully.
func (o Outcome) OK() bool {
	return o.Status == StatusSuccess
}

func success(runID string) Outcome {
	return Outcome{Status: StatusSuccess, Code: CodeSuccess, Message: SuccessMessage, RunID: runID}
}

func failure(runID string, err error) Outcome {
	return Outcome{Status: StatusFailed, Code: CodeFailed, Message: err.Error(), RunID: runID}
}
