package correction

type Event string

const (
	EventManagerApprove Event = "manager_approve"
	EventHRApprove      Event = "hr_approve"
	EventReject         Event = "reject"
	EventEscalate       Event = "escalate"
)

// transitions is the workflow's single source of truth: event -> allowed
// current states -> next state. Guard checks live nowhere else.
var transitions = map[Event]struct {
	from map[Status]bool
	to   Status
}{
	// Manager review moves a fresh request into HR's queue.
	EventManagerApprove: {
		from: map[Status]bool{StatusSubmitted: true},
		to:   StatusInReview,
	},
	// HR sign-off is the second and final approval stage.
	EventHRApprove: {
		from: map[Status]bool{StatusInReview: true},
		to:   StatusApproved,
	},
	// Reject is allowed from any non-approved state.
	EventReject: {
		from: map[Status]bool{
			StatusSubmitted: true,
			StatusInReview:  true,
			StatusEscalated: true,
			StatusRejected:  true,
		},
		to: StatusRejected,
	},
	// Escalate carries no guard at all, terminal states included. The
	// source system behaves this way; kept as-is rather than silently
	// tightened.
	EventEscalate: {
		from: nil,
		to:   StatusEscalated,
	},
}

// Transition applies event to the current status, returning the new status or
// a StateConflictError naming what was expected.
func Transition(current Status, event Event) (Status, error) {
	t, ok := transitions[event]
	if !ok {
		return current, &StateConflictError{Event: event, Current: current}
	}
	if t.from != nil && !t.from[current] {
		expected := make([]Status, 0, len(t.from))
		for _, s := range []Status{StatusSubmitted, StatusInReview, StatusEscalated, StatusRejected, StatusApproved} {
			if t.from[s] {
				expected = append(expected, s)
			}
		}
		return current, &StateConflictError{Event: event, Current: current, Expected: expected}
	}
	return t.to, nil
}

// FinalizeResult is the advisory output computed for any status: how the
// request should be handled downstream. It never mutates state.
type FinalizeResult struct {
	Status                Status   `json:"status"`
	CanApplyCorrection    bool     `json:"can_apply_correction"`
	RequiresManagerReview bool     `json:"requires_manager_review"`
	SuggestedActions      []string `json:"suggested_actions"`
	Message               string   `json:"message"`
}

// Finalize computes the recommendation for the request's current status.
func Finalize(req CorrectionRequest) FinalizeResult {
	switch req.Status {
	case StatusSubmitted:
		return FinalizeResult{
			Status:                req.Status,
			RequiresManagerReview: true,
			SuggestedActions:      []string{"notify_manager"},
			Message:               "correction awaits manager review",
		}
	case StatusInReview:
		return FinalizeResult{
			Status:           req.Status,
			SuggestedActions: []string{"notify_hr"},
			Message:          "correction awaits HR approval",
		}
	case StatusApproved:
		return FinalizeResult{
			Status:             req.Status,
			CanApplyCorrection: true,
			SuggestedActions:   []string{"apply_to_attendance_record", "notify_employee"},
			Message:            "correction approved; punches may be amended",
		}
	case StatusRejected:
		return FinalizeResult{
			Status:           req.Status,
			SuggestedActions: []string{"notify_employee"},
			Message:          "correction rejected",
		}
	case StatusEscalated:
		return FinalizeResult{
			Status:                req.Status,
			RequiresManagerReview: true,
			SuggestedActions:      []string{"manual_review"},
			Message:               "correction escalated for manual handling",
		}
	default:
		return FinalizeResult{
			Status:  req.Status,
			Message: "unknown correction status",
		}
	}
}
