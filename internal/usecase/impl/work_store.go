package impl

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"canopus/internal/api"
	"canopus/internal/domain/entity"
	domainerrors "canopus/internal/domain/errors"
	"canopus/internal/errors"
	"canopus/internal/usecase"

	"go.uber.org/fx"
)

// workStore implements the WorkUsecase interface. The collection is
// owned exclusively by this store; the mutex preserves the single-owner
// rule for mutation.
type workStore struct {
	mu     sync.Mutex
	client *api.Client
	logger *slog.Logger

	works    []entity.Work
	state    usecase.State
	fetchSeq uint64
}

// WorkStoreParams holds dependencies for the work store, injected by Fx.
type WorkStoreParams struct {
	fx.In

	Client *api.Client
	Logger *slog.Logger
}

// NewWorkStore is the constructor for workStore.
func NewWorkStore(params WorkStoreParams) usecase.WorkUsecase {
	return &workStore{
		client: params.Client,
		logger: params.Logger,
		state:  usecase.StateIdle,
	}
}

// workResponse wraps the canonical work returned by mutating calls.
type workResponse struct {
	Work *entity.Work `json:"work"`
}

// Fetch replaces the collection with the server's list. Fetches are
// tagged with a sequence number; a response that resolves after a newer
// fetch has been issued is discarded rather than clobbering its state.
func (s *workStore) Fetch(ctx context.Context) ([]entity.Work, error) {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.state = usecase.StateLoading
	s.mu.Unlock()

	var works []entity.Work
	err := s.client.Get(ctx, "/work", nil, &works)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.fetchSeq {
		s.logger.Debug("discarding stale work list response")
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch works")
		}

		return works, nil
	}
	if err != nil {
		s.state = usecase.StateError

		return nil, errors.Wrap(err, "failed to fetch works")
	}

	s.works = works
	s.state = usecase.StateReady

	return slices.Clone(works), nil
}

// Works returns a snapshot copy of the collection.
func (s *workStore) Works() []entity.Work {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.works)
}

// State returns the store lifecycle state.
func (s *workStore) State() usecase.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// workPayload is the create request body: the validated input fields
// plus the expanded assignment records.
type workPayload struct {
	usecase.CreateWorkInput
	AssignedTo           []entity.StaffAssignment `json:"assignedTo"`
	OverallPaymentStatus entity.PaymentStatus     `json:"overallPaymentStatus"`
}

// Create validates the input locally, posts it, and appends the
// server's canonical work.
func (s *workStore) Create(ctx context.Context, input usecase.CreateWorkInput) (*entity.Work, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	payload := workPayload{
		CreateWorkInput:      input,
		AssignedTo:           expandAssignments(input.AssignedTo),
		OverallPaymentStatus: entity.PaymentPending,
	}
	if payload.TotalMembers == 0 {
		payload.TotalMembers = len(payload.AssignedTo)
	}

	var resp workResponse
	if err := s.client.Post(ctx, "/work", payload, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to create work")
	}
	if resp.Work == nil {
		return nil, domainerrors.ErrServer.WithDetails("create response missing work")
	}

	s.mu.Lock()
	s.works = append(s.works, *resp.Work)
	s.mu.Unlock()

	s.logger.Info("work created", slog.String("work_id", resp.Work.ID))

	return resp.Work, nil
}

// updateWorkPayload carries partial fields plus optionally re-expanded
// assignments.
type updateWorkPayload struct {
	usecase.UpdateWorkInput
	AssignedTo []entity.StaffAssignment `json:"assignedTo,omitempty"`
}

// Update sends partial fields and replaces the matching entity with the
// server's canonical response. No client-side merge of old and partial.
func (s *workStore) Update(ctx context.Context, id string, input usecase.UpdateWorkInput) (*entity.Work, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	payload := updateWorkPayload{UpdateWorkInput: input}
	if len(input.AssignedTo) > 0 {
		payload.AssignedTo = expandAssignments(input.AssignedTo)
	}

	var resp workResponse
	if err := s.client.Put(ctx, "/work/"+id, payload, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to update work")
	}
	if resp.Work == nil {
		return nil, domainerrors.ErrServer.WithDetails("update response missing work")
	}

	s.replace(*resp.Work)

	return resp.Work, nil
}

// Remove deletes the work and drops it from the collection.
func (s *workStore) Remove(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/work/"+id, nil); err != nil {
		return errors.Wrap(err, "failed to delete work")
	}

	s.mu.Lock()
	s.works = slices.DeleteFunc(s.works, func(w entity.Work) bool { return w.ID == id })
	s.mu.Unlock()

	return nil
}

// UpdateStaffPayment patches one assignment's payment record. The
// work-level payment status is then recomputed from the canonical
// assignment list; when the recomputed value differs from the one the
// server returned, a follow-up update pushes it back.
func (s *workStore) UpdateStaffPayment(ctx context.Context, workID, staffID string, input usecase.StaffPaymentInput) (*entity.Work, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Violations == nil {
		input.Violations = []entity.Violation{}
	}

	var resp workResponse
	if err := s.client.Patch(ctx, "/work/"+workID+"/staff/"+staffID, input, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to update staff payment")
	}
	if resp.Work == nil {
		return nil, domainerrors.ErrServer.WithDetails("staff payment response missing work")
	}

	canonical := resp.Work
	if recomputed := canonical.OverallPayment(); recomputed != canonical.OverallPaymentStatus {
		body := map[string]entity.PaymentStatus{"overallPaymentStatus": recomputed}

		var followUp workResponse
		if err := s.client.Put(ctx, "/work/"+workID, body, &followUp); err != nil {
			return nil, errors.Wrap(err, "failed to push recomputed payment status")
		}
		if followUp.Work == nil {
			return nil, domainerrors.ErrServer.WithDetails("payment status response missing work")
		}
		canonical = followUp.Work
	}

	s.replace(*canonical)

	return canonical, nil
}

// UpdateStatus is a restricted single-field status update bypassing
// full-object editing.
func (s *workStore) UpdateStatus(ctx context.Context, workID string, status entity.WorkStatus) (*entity.Work, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidation.WithDetails("invalid work status: " + string(status))
	}

	body := map[string]entity.WorkStatus{"status": status}

	var resp workResponse
	if err := s.client.Patch(ctx, "/work/"+workID+"/status", body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to update work status")
	}
	if resp.Work == nil {
		return nil, domainerrors.ErrServer.WithDetails("status response missing work")
	}

	s.replace(*resp.Work)

	return resp.Work, nil
}

// replace swaps the entity matching the canonical object's identifier.
func (s *workStore) replace(work entity.Work) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.works {
		if s.works[i].ID == work.ID {
			s.works[i] = work

			return
		}
	}
}

// expandAssignments turns staff user identifiers into fresh assignment
// records with zeroed payment state.
func expandAssignments(userIDs []string) []entity.StaffAssignment {
	assignments := make([]entity.StaffAssignment, 0, len(userIDs))
	for _, id := range userIDs {
		assignments = append(assignments, entity.StaffAssignment{
			UserID:        id,
			AmountPaid:    0,
			PaymentStatus: entity.PaymentPending,
			Violations:    []entity.Violation{},
		})
	}

	return assignments
}
