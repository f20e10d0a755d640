package ingest

// Request carries the caller-supplied fields that accompany a capture
// submission. The payload itself comes from the session, not the request.
type Request struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}
