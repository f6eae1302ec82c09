package chore

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/perryvale/hearth/internal/allowance"
	"github.com/perryvale/hearth/internal/model"
	"github.com/perryvale/hearth/internal/recurrence"
	"github.com/perryvale/hearth/internal/store"
	"github.com/perryvale/hearth/internal/websocket"
)

// Service is the completion engine: it owns the pending → completed/rejected
// state machine, the weekly point aggregation, and the event publishes that
// follow each committed transition. Every transition runs in one database
// transaction; events are published only after commit.
type Service struct {
	db          *sql.DB
	chores      *store.ChoreStore
	members     *store.MemberStore
	rooms       *store.RoomStore
	completions *store.CompletionStore
	weekly      *store.WeeklyPointsStore
	allowances  *store.AllowanceStore
	hub         *websocket.Hub
	logger      *slog.Logger

	now func() time.Time
}

func NewService(db *sql.DB, hub *websocket.Hub, logger *slog.Logger) *Service {
	return &Service{
		db:          db,
		chores:      store.NewChoreStore(db),
		members:     store.NewMemberStore(db),
		rooms:       store.NewRoomStore(db),
		completions: store.NewCompletionStore(db),
		weekly:      store.NewWeeklyPointsStore(db),
		allowances:  store.NewAllowanceStore(db),
		hub:         hub,
		logger:      logger,
		now:         time.Now,
	}
}

// Complete records a member's claim that a chore is done. The chore must be
// in the derived available state: active, past its recurrence window, and
// with no unresolved completion. The new completion is pending until a
// parent confirms or rejects it.
func (s *Service) Complete(choreID, memberID int64) (*model.Completion, error) {
	now := s.now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	ch, err := s.chores.WithTx(tx).GetByID(choreID)
	if err != nil {
		return nil, err
	}
	if ch == nil || !ch.IsActive {
		return nil, notFound("chore %d not found", choreID)
	}

	member, err := s.members.WithTx(tx).GetByID(memberID)
	if err != nil {
		return nil, err
	}
	if member == nil || !member.IsActive {
		return nil, notFound("member %d not found", memberID)
	}

	comps := s.completions.WithTx(tx)
	hasPending, err := comps.PendingExistsForChore(choreID)
	if err != nil {
		return nil, err
	}
	if hasPending {
		return nil, conflict("chore %q already has a pending completion", ch.Name)
	}

	if status, next := ComputeStatus(*ch, false, now); status == StatusDisabled {
		return nil, conflict("chore %q is not available until %s", ch.Name, next.Format(time.RFC3339))
	}

	completion, err := comps.CreatePending(choreID, memberID, ch.Points, now, recurrence.WeekStart(now))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit complete: %w", err)
	}

	s.publishCompletion(websocket.EventChoreCompleted, completion, ch, member)
	return completion, nil
}

// Confirm approves a pending completion: the transition, the chore's
// last-completed stamp, and the weekly point increment commit atomically.
func (s *Service) Confirm(completionID, approverID int64) (*model.Completion, error) {
	return s.resolve(completionID, approverID, true)
}

// Reject declines a pending completion. The recorded points stay on the row
// for audit but never reach weekly aggregation, and the chore is available
// again immediately since no confirmed completion happened.
func (s *Service) Reject(completionID, approverID int64) (*model.Completion, error) {
	return s.resolve(completionID, approverID, false)
}

func (s *Service) resolve(completionID, approverID int64, confirmed bool) (*model.Completion, error) {
	now := s.now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	comps := s.completions.WithTx(tx)
	completion, err := comps.GetByID(completionID)
	if err != nil {
		return nil, err
	}
	if completion == nil {
		return nil, notFound("completion %d not found", completionID)
	}

	chores := s.chores.WithTx(tx)
	ch, err := chores.GetByID(completion.ChoreID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, notFound("chore %d not found", completion.ChoreID)
	}

	approver, err := s.members.WithTx(tx).GetByID(approverID)
	if err != nil {
		return nil, err
	}
	if approver == nil || !approver.IsActive {
		return nil, notFound("approver %d not found", approverID)
	}
	if !approver.IsParent || approver.HouseholdID != ch.HouseholdID {
		return nil, validation("member %d cannot approve completions for household %d", approverID, ch.HouseholdID)
	}

	target := model.CompletionCompleted
	if !confirmed {
		target = model.CompletionRejected
	}

	// The status guard in Transition is the atomic check-and-transition:
	// of two concurrent approvals, exactly one sees a row flip.
	ok, err := comps.Transition(completionID, target, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, invalidState("completion %d is %s, not pending", completionID, completion.Status)
	}

	if confirmed {
		if err := chores.SetLastCompleted(ch.ID, completion.CompletedAt); err != nil {
			return nil, err
		}
		weekEnd := completion.WeekStart.AddDate(0, 0, 6)
		if _, err := s.weekly.WithTx(tx).AddConfirmedPoints(
			completion.MemberID, completion.WeekStart, weekEnd,
			completion.PointsEarned, allowance.WeeklyCap,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit resolve: %w", err)
	}

	completion.Status = target
	completion.ConfirmedAt = &now

	eventType := websocket.EventCompletionConfirmed
	if !confirmed {
		eventType = websocket.EventCompletionRejected
	}
	member, err := s.members.GetByID(completion.MemberID)
	if err != nil {
		s.logger.Warn("load member for event", "member_id", completion.MemberID, "error", err)
	}
	s.publishCompletion(eventType, completion, ch, member)

	return completion, nil
}

// BatchItemError reports one failed id in a batch; the rest of the batch is
// unaffected.
type BatchItemError struct {
	CompletionID int64     `json:"completion_id"`
	Kind         ErrorKind `json:"error_kind"`
	Message      string    `json:"error"`
}

// BatchResult summarizes a batch approval. ProcessedCount always equals the
// number of requested ids, and SuccessfulCount+FailedCount == ProcessedCount.
type BatchResult struct {
	ProcessedCount  int                `json:"processed_count"`
	SuccessfulCount int                `json:"successful_count"`
	FailedCount     int                `json:"failed_count"`
	Results         []model.Completion `json:"results"`
	Errors          []BatchItemError   `json:"errors"`
}

// BatchResolve applies confirm (or reject) to each id independently. There
// is no cross-item transaction: one invalid id fails alone, and each
// successful item publishes its own event.
func (s *Service) BatchResolve(completionIDs []int64, confirmed bool, approverID int64) BatchResult {
	result := BatchResult{
		ProcessedCount: len(completionIDs),
		Results:        []model.Completion{},
		Errors:         []BatchItemError{},
	}

	for _, id := range completionIDs {
		completion, err := s.resolve(id, approverID, confirmed)
		if err != nil {
			kind := Kind(err)
			if kind == "" {
				kind = "internal"
			}
			result.Errors = append(result.Errors, BatchItemError{
				CompletionID: id,
				Kind:         kind,
				Message:      err.Error(),
			})
			result.FailedCount++
			continue
		}
		result.Results = append(result.Results, *completion)
		result.SuccessfulCount++
	}

	return result
}

// WeeklyStatus reports the member's progress against the weekly cap for the
// current week. The stored capped value is read as-is; it was computed
// inside the confirming transaction.
func (s *Service) WeeklyStatus(memberID int64) (*model.WeeklyStatus, error) {
	member, err := s.members.GetByID(memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, notFound("member %d not found", memberID)
	}

	weekStart := recurrence.WeekStart(s.now().UTC())
	wp, err := s.weekly.Get(memberID, weekStart)
	if err != nil {
		return nil, err
	}

	capped := 0
	if wp != nil {
		capped = wp.PointsCapped
	}

	return &model.WeeklyStatus{
		MemberID:          memberID,
		WeekStart:         weekStart,
		CurrentWeekPoints: capped,
		MaxWeeklyPoints:   allowance.WeeklyCap,
		PointsRemaining:   allowance.Remaining(capped),
		IsAtCap:           allowance.IsAtCap(capped),
	}, nil
}

// CalculateAllowance derives the member's allowance for a month given as
// "YYYY-MM". The row is recomputed in full from the overlapping weekly
// points and upserted; recalculating is always idempotent.
func (s *Service) CalculateAllowance(memberID int64, monthYear string) (*model.AllowanceCalculation, error) {
	month, err := time.Parse("2006-01", monthYear)
	if err != nil {
		return nil, validation("month %q is not in YYYY-MM format", monthYear)
	}

	member, err := s.members.GetByID(memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, notFound("member %d not found", memberID)
	}

	monthStart, monthEnd := recurrence.MonthBounds(month)
	weeks, err := s.weekly.ListOverlappingMonth(memberID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	totalEarned := 0
	for _, wp := range weeks {
		totalEarned += wp.PointsEarned
	}

	totalPossible, err := s.pointsPossible(member.HouseholdID, len(weeks))
	if err != nil {
		return nil, err
	}

	percentage := 0.0
	if totalPossible > 0 {
		percentage = float64(totalEarned) / float64(totalPossible)
	}

	now := s.now().UTC()
	category := member.Category(now)
	calc := model.AllowanceCalculation{
		MemberID:             memberID,
		MonthYear:            monthYear,
		TotalPointsEarned:    totalEarned,
		TotalPointsPossible:  totalPossible,
		CompletionPercentage: percentage,
		AllowanceAmount:      allowance.Amount(totalEarned, category, member.Age(now)),
		AgeCategory:          category,
	}

	return s.allowances.Upsert(calc)
}

// pointsPossible sums the household's active chore points over the month's
// weeks: daily and weekly chores contribute per week, monthly chores once
// for the month.
func (s *Service) pointsPossible(householdID int64, weekCount int) (int, error) {
	if weekCount == 0 {
		return 0, nil
	}

	chores, err := s.chores.ListByHousehold(householdID)
	if err != nil {
		return 0, err
	}

	perWeek, perMonth := 0, 0
	for _, c := range chores {
		if c.Frequency == model.FrequencyMonthly {
			perMonth += c.Points
			continue
		}
		perWeek += c.Points * recurrence.WeeklyOccurrences(c.Frequency)
	}
	return weekCount*perWeek + perMonth, nil
}

// ChoresWithStatus lists the household's active chores with their derived
// status, computed fresh from stored state on every call.
func (s *Service) ChoresWithStatus(householdID int64) ([]ChoreWithStatus, error) {
	chores, err := s.chores.ListByHousehold(householdID)
	if err != nil {
		return nil, err
	}

	pending, err := s.completions.PendingChoreIDs(householdID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.ListByHousehold(householdID)
	if err != nil {
		return nil, err
	}
	roomNames := make(map[int64]string, len(rooms))
	for _, r := range rooms {
		roomNames[r.ID] = r.Name
	}

	now := s.now().UTC()
	out := make([]ChoreWithStatus, 0, len(chores))
	for _, c := range chores {
		status, next := ComputeStatus(c, pending[c.ID], now)
		out = append(out, ChoreWithStatus{
			Chore:           c,
			Status:          status,
			NextAvailableAt: next,
			RoomName:        roomNames[c.RoomID],
		})
	}
	return out, nil
}

// PendingCompletions lists the household's completions awaiting review.
func (s *Service) PendingCompletions(householdID int64) ([]model.Completion, error) {
	return s.completions.ListPendingByHousehold(householdID)
}

// publishCompletion pushes a completion lifecycle event to the chore's
// household. Delivery is best-effort and never affects the caller.
func (s *Service) publishCompletion(t websocket.EventType, completion *model.Completion, ch *model.Chore, member *model.Member) {
	ev := websocket.CompletionEvent{
		CompletionID: completion.ID,
		ChoreID:      ch.ID,
		ChoreName:    ch.Name,
		MemberID:     completion.MemberID,
		PointsEarned: completion.PointsEarned,
		Status:       completion.Status,
	}
	if member != nil {
		ev.MemberName = member.Name
	}
	if room, err := s.rooms.GetByID(ch.RoomID); err == nil && room != nil {
		ev.RoomName = room.Name
	}

	s.hub.Publish(ch.HouseholdID, websocket.Event{Type: t, Data: ev})
}
