package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/osfio/collections-moderation/internal/domain"
	"github.com/osfio/collections-moderation/internal/service/submission"
	"github.com/osfio/collections-moderation/pkg/ctxutil"
)

const maxBodyBytes = 64 << 10

type submissionService interface {
	CreateSubmission(ctx context.Context, input submission.CreateSubmissionInput) (*domain.Submission, error)
	Execute(ctx context.Context, input submission.ExecuteInput) (*domain.Submission, error)
	GetSubmission(ctx context.Context, submissionID uuid.UUID) (*submission.SubmissionView, error)
	ListSubmissions(ctx context.Context, input submission.ListSubmissionsInput) (*submission.ListResult, error)
	ListActions(ctx context.Context, submissionID uuid.UUID) ([]*domain.Action, error)
	DeleteSubmission(ctx context.Context, submissionID uuid.UUID) error
	DeleteArtifactSubmissions(ctx context.Context, input submission.DeleteArtifactInput) (int, error)
}

// SubmissionHandler serves the collection submission endpoints.
type SubmissionHandler struct {
	svc submissionService
	log *slog.Logger
}

// NewSubmissionHandler creates a SubmissionHandler.
func NewSubmissionHandler(svc submissionService, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{svc: svc, log: logger.With("handler", "submission")}
}

type createSubmissionRequest struct {
	ArtifactGUID string `json:"artifactGuid"`
	Comment      string `json:"comment"`
}

type executeRequest struct {
	Trigger string `json:"trigger"`
	Comment string `json:"comment"`
}

type submissionResponse struct {
	ID                string    `json:"id"`
	ArtifactGUID      string    `json:"artifactGuid"`
	CollectionID      string    `json:"collectionId"`
	CreatorID         string    `json:"creatorId"`
	State             string    `json:"state"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	ModerationMode    string    `json:"moderationMode,omitempty"`
	AvailableTriggers []string  `json:"availableTriggers,omitempty"`
}

type submissionListResponse struct {
	Submissions []submissionResponse `json:"submissions"`
	TotalCount  int                  `json:"totalCount"`
}

type actionResponse struct {
	ID        string    `json:"id"`
	FromState string    `json:"fromState"`
	ToState   string    `json:"toState"`
	Trigger   string    `json:"trigger"`
	CreatorID string    `json:"creatorId"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type actionListResponse struct {
	Actions []actionResponse `json:"actions"`
}

type artifactDeletedResponse struct {
	DeletedSubmissions int `json:"deletedSubmissions"`
}

// Create handles POST /collections/{collectionID}/submissions.
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	collectionID, ok := pathUUID(w, r, "collectionID")
	if !ok {
		return
	}

	var req createSubmissionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sub, err := h.svc.CreateSubmission(r.Context(), submission.CreateSubmissionInput{
		CollectionID: collectionID,
		ArtifactGUID: req.ArtifactGUID,
		Comment:      req.Comment,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Location", "/submissions/"+sub.ID.String())
	writeJSON(w, http.StatusCreated, toSubmissionResponse(sub))
}

// List handles GET /collections/{collectionID}/submissions?state=&creator=&limit=&offset=.
// creator=me filters by the caller.
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	collectionID, ok := pathUUID(w, r, "collectionID")
	if !ok {
		return
	}

	q := r.URL.Query()
	input := submission.ListSubmissionsInput{CollectionID: collectionID}
	var fieldErrs []domain.FieldError

	if v := q.Get("state"); v != "" {
		input.State = &v
	}
	switch v := q.Get("creator"); v {
	case "":
	case "me":
		if id, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
			input.CreatorID = &id
		} else {
			handleError(h.log, w, r, domain.ErrUnauthorized)
			return
		}
	default:
		id, err := uuid.Parse(v)
		if err != nil {
			fieldErrs = append(fieldErrs, domain.FieldError{Field: "creator", Message: "must be a UUID or \"me\""})
		} else {
			input.CreatorID = &id
		}
	}
	if n, err := queryInt(q.Get("limit")); err != nil {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "limit", Message: "must be an integer"})
	} else {
		input.Limit = n
	}
	if n, err := queryInt(q.Get("offset")); err != nil {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "offset", Message: "must be an integer"})
	} else {
		input.Offset = n
	}
	if len(fieldErrs) > 0 {
		handleError(h.log, w, r, domain.NewValidationErrors(fieldErrs))
		return
	}

	result, err := h.svc.ListSubmissions(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := submissionListResponse{
		Submissions: make([]submissionResponse, len(result.Submissions)),
		TotalCount:  result.TotalCount,
	}
	for i, s := range result.Submissions {
		resp.Submissions[i] = toSubmissionResponse(s)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /submissions/{submissionID}.
func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "submissionID")
	if !ok {
		return
	}

	view, err := h.svc.GetSubmission(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := toSubmissionResponse(view.Submission)
	resp.ModerationMode = view.ModerationMode.String()
	resp.AvailableTriggers = make([]string, len(view.Triggers))
	for i, t := range view.Triggers {
		resp.AvailableTriggers[i] = t.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /submissions/{submissionID}.
func (h *SubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "submissionID")
	if !ok {
		return
	}

	if err := h.svc.DeleteSubmission(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Execute handles POST /submissions/{submissionID}/actions.
func (h *SubmissionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "submissionID")
	if !ok {
		return
	}

	var req executeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sub, err := h.svc.Execute(r.Context(), submission.ExecuteInput{
		SubmissionID: id,
		Trigger:      req.Trigger,
		Comment:      req.Comment,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubmissionResponse(sub))
}

// ListActions handles GET /submissions/{submissionID}/actions.
func (h *SubmissionHandler) ListActions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "submissionID")
	if !ok {
		return
	}

	actions, err := h.svc.ListActions(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := actionListResponse{Actions: make([]actionResponse, len(actions))}
	for i, a := range actions {
		resp.Actions[i] = actionResponse{
			ID:        a.ID.String(),
			FromState: a.FromState.String(),
			ToState:   a.ToState.String(),
			Trigger:   a.Trigger.String(),
			CreatorID: a.CreatorID.String(),
			Comment:   a.Comment,
			CreatedAt: a.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ArtifactDeleted handles POST /artifacts/{guid}/deleted, the lifecycle
// hook the artifact owner calls after deleting an artifact.
func (h *SubmissionHandler) ArtifactDeleted(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.DeleteArtifactSubmissions(r.Context(), submission.DeleteArtifactInput{
		ArtifactGUID: r.PathValue("guid"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, artifactDeletedResponse{DeletedSubmissions: n})
}

func toSubmissionResponse(s *domain.Submission) submissionResponse {
	return submissionResponse{
		ID:           s.ID.String(),
		ArtifactGUID: s.ArtifactGUID,
		CollectionID: s.CollectionID.String(),
		CreatorID:    s.CreatorID.String(),
		State:        s.State.String(),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid "+name,
			domain.FieldError{Field: name, Message: "must be a UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody reads a JSON body. An empty body decodes to the zero value.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, CodeValidation, "request body too large")
		return false
	}
	writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
	return false
}

func queryInt(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
