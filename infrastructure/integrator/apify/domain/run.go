package apifydomain

// Status possíveis de um actor run
const (
	RunStatusReady     = "READY"
	RunStatusRunning   = "RUNNING"
	RunStatusSucceeded = "SUCCEEDED"
	RunStatusFailed    = "FAILED"
	RunStatusAborted   = "ABORTED"
	RunStatusTimedOut  = "TIMED-OUT"
)

// RunEnvelope é o envelope {"data": ...} devolvido pelos endpoints de runs
type RunEnvelope struct {
	Data Run `json:"data"`
}

// Run representa um actor run
type Run struct {
	ID               string `json:"id"`
	ActID            string `json:"actId"`
	Status           string `json:"status"`
	StatusMessage    string `json:"statusMessage,omitempty"`
	DefaultDatasetID string `json:"defaultDatasetId"`
}

// IsTerminal indica se o run não vai mais mudar de status
func (r Run) IsTerminal() bool {
	switch r.Status {
	case RunStatusSucceeded, RunStatusFailed, RunStatusAborted, RunStatusTimedOut:
		return true
	}
	return false
}

// ProfileScraperInput é o input do actor instagram-profile-scraper
type ProfileScraperInput struct {
	Usernames    []string `json:"usernames"`
	ResultsLimit int      `json:"resultsLimit,omitempty"`
	ResultsType  string   `json:"resultsType,omitempty"`
}

// ErrorEnvelope é o corpo de erro devolvido pela API
type ErrorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
