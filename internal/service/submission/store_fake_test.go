package submission

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osfio/collections-moderation/internal/domain"
)

// memStore is an in-memory backing for every repository the service uses.
// RunInTx snapshots the store and restores the snapshot when fn fails, so
// tests can observe rollback.
type memStore struct {
	mu sync.Mutex

	submissions map[uuid.UUID]domain.Submission
	actions     []domain.Action
	collections map[uuid.UUID]domain.Collection
	moderators  map[uuid.UUID]map[uuid.UUID]bool
	artifacts   map[string]domain.Artifact
	perms       map[string]map[uuid.UUID]domain.Permission

	// failActionCreate makes the next action insert fail.
	failActionCreate error
}

func newMemStore() *memStore {
	return &memStore{
		submissions: map[uuid.UUID]domain.Submission{},
		collections: map[uuid.UUID]domain.Collection{},
		moderators:  map[uuid.UUID]map[uuid.UUID]bool{},
		artifacts:   map[string]domain.Artifact{},
		perms:       map[string]map[uuid.UUID]domain.Permission{},
	}
}

// ---------------------------------------------------------------------------
// fixtures
// ---------------------------------------------------------------------------

func (m *memStore) addCollection(mode domain.ModerationMode, public bool, moderators ...uuid.UUID) domain.Collection {
	c := domain.Collection{
		ID:             uuid.New(),
		Title:          "collection " + string(mode),
		ModerationMode: mode,
		IsPublic:       public,
		CreatedAt:      time.Now().UTC(),
	}
	m.collections[c.ID] = c
	m.moderators[c.ID] = map[uuid.UUID]bool{}
	for _, id := range moderators {
		m.moderators[c.ID][id] = true
	}
	return c
}

func (m *memStore) addArtifact(public bool, contributors map[uuid.UUID]domain.Permission) domain.Artifact {
	a := domain.Artifact{
		GUID:      uuid.NewString()[:5],
		Title:     "artifact",
		IsPublic:  public,
		CreatedAt: time.Now().UTC(),
	}
	m.artifacts[a.GUID] = a
	m.perms[a.GUID] = map[uuid.UUID]domain.Permission{}
	for id, p := range contributors {
		m.perms[a.GUID][id] = p
	}
	return a
}

func (m *memStore) submission(id uuid.UUID) domain.Submission {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submissions[id]
}

func (m *memStore) actionsFor(id uuid.UUID) []domain.Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Action
	for _, a := range m.actions {
		if a.SubmissionID == id {
			out = append(out, a)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// txManager
// ---------------------------------------------------------------------------

type snapshot struct {
	submissions map[uuid.UUID]domain.Submission
	actions     []domain.Action
	artifacts   map[string]domain.Artifact
}

func (m *memStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	snap := snapshot{
		submissions: make(map[uuid.UUID]domain.Submission, len(m.submissions)),
		actions:     append([]domain.Action(nil), m.actions...),
		artifacts:   make(map[string]domain.Artifact, len(m.artifacts)),
	}
	for k, v := range m.submissions {
		snap.submissions[k] = v
	}
	for k, v := range m.artifacts {
		snap.artifacts[k] = v
	}
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.submissions = snap.submissions
		m.actions = snap.actions
		m.artifacts = snap.artifacts
		m.mu.Unlock()
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// submissionRepo
// ---------------------------------------------------------------------------

type memSubmissions struct{ *memStore }

func (r memSubmissions) Create(_ context.Context, sub *domain.Submission) (*domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.submissions {
		if s.DeletedAt == nil && s.CollectionID == sub.CollectionID && s.ArtifactGUID == sub.ArtifactGUID {
			return nil, domain.ErrAlreadyExists
		}
	}
	r.submissions[sub.ID] = *sub
	out := *sub
	return &out, nil
}

func (r memSubmissions) GetByID(_ context.Context, id uuid.UUID) (*domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.submissions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r memSubmissions) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	return r.GetByID(ctx, id)
}

func (r memSubmissions) ExistsLive(_ context.Context, collectionID uuid.UUID, guid string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.submissions {
		if s.DeletedAt == nil && s.CollectionID == collectionID && s.ArtifactGUID == guid {
			return true, nil
		}
	}
	return false, nil
}

func (r memSubmissions) UpdateState(_ context.Context, id uuid.UUID, from, to domain.SubmissionState, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.submissions[id]
	if !ok || s.DeletedAt != nil {
		return domain.ErrNotFound
	}
	if s.State != from {
		return fmt.Errorf("state changed to %s: %w", s.State, domain.ErrInvalidTransition)
	}
	s.State = to
	s.UpdatedAt = at
	r.submissions[id] = s
	return nil
}

func (r memSubmissions) SoftDelete(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.submissions[id]
	if !ok || s.DeletedAt != nil {
		return domain.ErrNotFound
	}
	s.DeletedAt = &at
	r.submissions[id] = s
	return nil
}

func (r memSubmissions) SoftDeleteByArtifact(_ context.Context, guid string, at time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.submissions {
		if s.ArtifactGUID == guid && s.DeletedAt == nil {
			s.DeletedAt = &at
			r.submissions[id] = s
			n++
		}
	}
	return n, nil
}

func (r memSubmissions) List(_ context.Context, f domain.SubmissionFilter) ([]*domain.Submission, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []*domain.Submission
	for _, s := range r.submissions {
		if s.DeletedAt != nil || s.CollectionID != f.CollectionID {
			continue
		}
		if f.CreatorID != nil && s.CreatorID != *f.CreatorID {
			continue
		}
		if len(f.States) > 0 && !containsState(f.States, s.State) {
			continue
		}
		if f.PublicArtifactsOnly && !r.artifacts[s.ArtifactGUID].IsPublic {
			continue
		}
		sub := s
		all = append(all, &sub)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })

	total := len(all)
	if f.Offset >= total {
		return []*domain.Submission{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return all[f.Offset:end], total, nil
}

func containsState(states []domain.SubmissionState, s domain.SubmissionState) bool {
	for _, st := range states {
		if st == s {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// actionRepo
// ---------------------------------------------------------------------------

type memActions struct{ *memStore }

func (r memActions) Create(_ context.Context, a *domain.Action) (*domain.Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failActionCreate != nil {
		err := r.failActionCreate
		r.failActionCreate = nil
		return nil, err
	}
	r.actions = append(r.actions, *a)
	out := *a
	return &out, nil
}

func (r memActions) ListBySubmission(_ context.Context, id uuid.UUID) ([]*domain.Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Action
	for _, a := range r.actions {
		if a.SubmissionID == id {
			action := a
			out = append(out, &action)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// collectionRepo / artifactRepo
// ---------------------------------------------------------------------------

type memCollections struct{ *memStore }

func (r memCollections) GetByID(_ context.Context, id uuid.UUID) (*domain.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.collections[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r memCollections) IsModerator(_ context.Context, collectionID, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moderators[collectionID][userID], nil
}

type memArtifacts struct{ *memStore }

func (r memArtifacts) GetByGUID(_ context.Context, guid string) (*domain.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.artifacts[guid]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r memArtifacts) GetPermission(_ context.Context, guid string, userID uuid.UUID) (domain.Permission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.perms[guid][userID], nil
}

func (r memArtifacts) MarkDeleted(_ context.Context, guid string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.artifacts[guid]
	if !ok {
		return domain.ErrNotFound
	}
	a.DeletedAt = &at
	r.artifacts[guid] = a
	return nil
}
