package rest

import "net/http"

// NewRouter registers every endpoint on a ServeMux.
func NewRouter(subs *SubmissionHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /collections/{collectionID}/submissions", subs.Create)
	mux.HandleFunc("GET /collections/{collectionID}/submissions", subs.List)
	mux.HandleFunc("GET /submissions/{submissionID}", subs.Get)
	mux.HandleFunc("DELETE /submissions/{submissionID}", subs.Delete)
	mux.HandleFunc("POST /submissions/{submissionID}/actions", subs.Execute)
	mux.HandleFunc("GET /submissions/{submissionID}/actions", subs.ListActions)
	mux.HandleFunc("POST /artifacts/{guid}/deleted", subs.ArtifactDeleted)

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	return mux
}
