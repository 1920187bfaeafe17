package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	attendanceerrors "go-gym/internal/attendance/errors"
	"go-gym/internal/events"
	"go-gym/internal/messaging/kafka"
	"go-gym/internal/shared/apperror"
	"go-gym/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	lockKeyPrefix = "checkin:lock:"
	lockTTL       = 10 * time.Second
)

func GetLockKey(memberID string) string {
	return lockKeyPrefix + memberID
}

// CredentialVerifier reports whether a presented QR value matches the gym's
// current credential. Satisfied by gym.Service.
type CredentialVerifier interface {
	VerifyCredential(ctx context.Context, gymID, presented string) (bool, error)
}

type Service interface {
	Scan(ctx context.Context, gymID, memberID string, req ScanRequest) (SessionOutcome, error)
	Manual(ctx context.Context, gymID, staffUserID string, req ManualRequest) (SessionOutcome, error)
	History(ctx context.Context, gymID, actorMemberID string, canReadAll bool) ([]SessionResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	verifier CredentialVerifier
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	verifier CredentialVerifier,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.reconciler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.reconciler")
	}
	return &service{
		db:       db,
		repo:     repo,
		verifier: verifier,
		outbox:   outboxRepo,
		rdb:      rdb,
		logger:   l,
	}
}

func (s *service) Scan(ctx context.Context, gymID, memberID string, req ScanRequest) (SessionOutcome, error) {
	if _, err := uuid.Parse(memberID); err != nil {
		return SessionOutcome{}, attendanceerrors.ErrInvalidMemberID
	}

	ok, err := s.verifier.VerifyCredential(ctx, gymID, req.Code)
	if err != nil {
		s.logger.Error("credential verification failed",
			zap.String("gym_id", gymID),
			zap.Error(err),
		)
		return SessionOutcome{}, err
	}
	if !ok {
		s.logger.Warn("credential mismatch on scan",
			zap.String("gym_id", gymID),
			zap.String("member_id", memberID),
		)
		return SessionOutcome{}, attendanceerrors.ErrInvalidCredential
	}

	return s.reconcile(ctx, gymID, memberID, SourceQRScan, nil)
}

func (s *service) Manual(ctx context.Context, gymID, staffUserID string, req ManualRequest) (SessionOutcome, error) {
	if _, err := uuid.Parse(req.MemberID); err != nil {
		return SessionOutcome{}, attendanceerrors.ErrInvalidMemberID
	}

	var recordedBy *uuid.UUID
	if id, err := uuid.Parse(staffUserID); err == nil {
		recordedBy = &id
	}

	return s.reconcile(ctx, gymID, req.MemberID, SourceManual, recordedBy)
}

// reconcile toggles the member's session state: no open session means a new
// one is opened, an open session means the newest one is closed. After the
// write it re-reads the store and refuses to report success if an open
// session (other than the ones it already knows about) is still there.
func (s *service) reconcile(
	ctx context.Context,
	gymID, memberID, source string,
	recordedBy *uuid.UUID,
) (SessionOutcome, error) {
	rid := contextutil.GetRequestID(ctx)

	if s.rdb != nil {
		lockKey := GetLockKey(memberID)
		acquired, err := s.rdb.SetNX(ctx, lockKey, "locked", lockTTL).Result()
		if err != nil {
			s.logger.Warn("reconcile lock unavailable, proceeding without it",
				zap.String("member_id", memberID),
				zap.Error(err),
			)
		} else if !acquired {
			return SessionOutcome{}, attendanceerrors.ErrReconcileInProgress
		} else {
			defer s.rdb.Del(context.WithoutCancel(ctx), lockKey)
		}
	}

	inGym, err := s.repo.MemberInGym(ctx, gymID, memberID)
	if err != nil {
		s.logger.Error("member lookup failed", zap.String("request_id", rid), zap.Error(err))
		return SessionOutcome{}, apperror.Wrap(err,
			apperror.CodeServiceUnavailable,
			attendanceerrors.ErrStoreUnavailable.Message,
			attendanceerrors.ErrStoreUnavailable.HTTPStatus,
		)
	}
	if !inGym {
		return SessionOutcome{}, attendanceerrors.ErrMemberNotInGym
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reconcile begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return SessionOutcome{}, apperror.Wrap(err,
			apperror.CodeServiceUnavailable,
			attendanceerrors.ErrStoreUnavailable.Message,
			attendanceerrors.ErrStoreUnavailable.HTTPStatus,
		)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	open, err := qtx.FindOpenSessions(ctx, gymID, memberID)
	if err != nil {
		s.logger.Error("open session lookup failed", zap.String("request_id", rid), zap.Error(err))
		return SessionOutcome{}, apperror.Wrap(err,
			apperror.CodeServiceUnavailable,
			attendanceerrors.ErrStoreUnavailable.Message,
			attendanceerrors.ErrStoreUnavailable.HTTPStatus,
		)
	}

	now := time.Now().UTC()

	if len(open) == 0 {
		return s.openSession(ctx, tx, qtx, gymID, memberID, source, recordedBy, now, rid)
	}
	return s.closeSession(ctx, tx, qtx, gymID, memberID, open, now, rid)
}

func (s *service) openSession(
	ctx context.Context,
	tx *sql.Tx,
	qtx Repository,
	gymID, memberID, source string,
	recordedBy *uuid.UUID,
	now time.Time,
	rid string,
) (SessionOutcome, error) {
	row := &Session{
		ID:         uuid.New(),
		GymID:      uuid.MustParse(gymID),
		MemberID:   uuid.MustParse(memberID),
		CheckIn:    now,
		Source:     source,
		RecordedBy: recordedBy,
	}
	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("open session persist failed", zap.String("request_id", rid), zap.Error(err))
		return SessionOutcome{}, apperror.Wrap(err,
			apperror.CodeServiceUnavailable,
			attendanceerrors.ErrStoreUnavailable.Message,
			attendanceerrors.ErrStoreUnavailable.HTTPStatus,
		)
	}

	if err := s.enqueueCheckinEvent(ctx, tx, row, events.CheckinActionCheckedIn, nil, rid); err != nil {
		return SessionOutcome{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return SessionOutcome{}, apperror.Wrap(err,
			apperror.CodeServiceUnavailable,
			attendanceerrors.ErrStoreUnavailable.Message,
			attendanceerrors.ErrStoreUnavailable.HTTPStatus,
		)
	}

	if err := s.verifyWrite(ctx, gymID, memberID, []uuid.UUID{row.ID}, rid); err != nil {
		return SessionOutcome{}, err
	}

	s.logger.Info("member checked in",
		zap.String("request_id", rid),
		zap.String("gym_id", gymID),
		zap.String("member_id", memberID),
		zap.String("session_id", row.ID.String()),
		zap.String("source", source),
	)

	return SessionOutcome{
		Action:    events.CheckinActionCheckedIn,
		SessionID: row.ID.String(),
		GymID:     gymID,
		MemberID:  memberID,
		OpenedAt:  row.CheckIn.Format(time.RFC3339),
	}, nil
}

func (s *service) closeSession(
	ctx context.Context,
	tx *sql.Tx,
	qtx Repository,
	gymID, memberID string,
	open []Session,
	now time.Time,
	rid string,
) (SessionOutcome, error) {
	newest := open[0]
	orphans := open[1:]

	affected, err := qtx.Close(ctx, newest.ID, now)
	if err != nil {
		s.logger.Error("close session failed", zap.String("request_id", rid), zap.Error(err))
		return SessionOutcome{}, apperror.Wrap(err,
			apperror.CodeServiceUnavailable,
			attendanceerrors.ErrStoreUnavailable.Message,
			attendanceerrors.ErrStoreUnavailable.HTTPStatus,
		)
	}
	if affected == 0 {
		// The row we just read as open is no longer open. The store changed
		// under us and the outcome cannot be reported truthfully.
		s.logger.Error("open session vanished before close",
			zap.String("request_id", rid),
			zap.String("session_id", newest.ID.String()),
		)
		return SessionOutcome{}, attendanceerrors.ErrInconsistentState
	}

	duration := int(now.Sub(newest.CheckIn).Minutes())
	if duration < 0 {
		duration = 0
	}

	closed := newest
	closed.CheckOut = &now
	if err := s.enqueueCheckinEvent(ctx, tx, &closed, events.CheckinActionCheckedOut, &duration, rid); err != nil {
		return SessionOutcome{}, err
	}

	orphanIDs := make([]uuid.UUID, 0, len(orphans))
	orphanStrs := make([]string, 0, len(orphans))
	for _, o := range orphans {
		orphanIDs = append(orphanIDs, o.ID)
		orphanStrs = append(orphanStrs, o.ID.String())
	}
	if len(orphans) > 0 {
		if err := s.enqueueAnomalyEvent(ctx, tx, gymID, memberID, newest.ID.String(), orphanStrs, rid); err != nil {
			return SessionOutcome{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return SessionOutcome{}, apperror.Wrap(err,
			apperror.CodeServiceUnavailable,
			attendanceerrors.ErrStoreUnavailable.Message,
			attendanceerrors.ErrStoreUnavailable.HTTPStatus,
		)
	}

	if len(orphans) > 0 {
		s.logger.Warn("duplicate open sessions found, closed newest only",
			zap.String("request_id", rid),
			zap.String("member_id", memberID),
			zap.String("closed_session_id", newest.ID.String()),
			zap.Strings("orphaned_session_ids", orphanStrs),
		)
	}

	if err := s.verifyWrite(ctx, gymID, memberID, orphanIDs, rid); err != nil {
		return SessionOutcome{}, err
	}

	closedAt := now.Format(time.RFC3339)
	s.logger.Info("member checked out",
		zap.String("request_id", rid),
		zap.String("gym_id", gymID),
		zap.String("member_id", memberID),
		zap.String("session_id", newest.ID.String()),
		zap.Int("duration_minutes", duration),
	)

	out := SessionOutcome{
		Action:          events.CheckinActionCheckedOut,
		SessionID:       newest.ID.String(),
		GymID:           gymID,
		MemberID:        memberID,
		OpenedAt:        newest.CheckIn.Format(time.RFC3339),
		ClosedAt:        &closedAt,
		DurationMinutes: &duration,
	}
	if len(orphanStrs) > 0 {
		out.OrphanedSessionIDs = orphanStrs
	}
	return out, nil
}

// verifyWrite re-reads open sessions after the commit. Rows it already knows
// about (the one just opened, or orphans it chose to leave) are excluded;
// anything else still open means the write did not land the way it was
// reported and the caller gets an error instead of a false success.
func (s *service) verifyWrite(ctx context.Context, gymID, memberID string, known []uuid.UUID, rid string) error {
	remaining, err := s.repo.FindOpenSessionsExcluding(ctx, gymID, memberID, known)
	if err != nil {
		s.logger.Error("post-write verification read failed", zap.String("request_id", rid), zap.Error(err))
		return apperror.Wrap(err,
			apperror.CodeServiceUnavailable,
			attendanceerrors.ErrStoreUnavailable.Message,
			attendanceerrors.ErrStoreUnavailable.HTTPStatus,
		)
	}
	if len(remaining) > 0 {
		ids := make([]string, len(remaining))
		for i, r := range remaining {
			ids[i] = r.ID.String()
		}
		s.logger.Error("post-write verification found unexpected open sessions",
			zap.String("request_id", rid),
			zap.String("member_id", memberID),
			zap.Strings("session_ids", ids),
		)
		return attendanceerrors.ErrInconsistentState
	}
	return nil
}

func (s *service) enqueueCheckinEvent(
	ctx context.Context,
	tx *sql.Tx,
	row *Session,
	action string,
	duration *int,
	rid string,
) error {
	if s.outbox == nil {
		return nil
	}

	event := events.CheckinRecordedEvent{
		EventType:       "checkin_recorded",
		RequestID:       rid,
		SessionID:       row.ID.String(),
		GymID:           row.GymID.String(),
		MemberID:        row.MemberID.String(),
		Action:          action,
		DurationMinutes: duration,
		OccurredAt:      time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal checkin event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "checkin",
		AggregateID:   row.ID.String(),
		EventType:     event.EventType,
		Topic:         events.CheckinRecordedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) enqueueAnomalyEvent(
	ctx context.Context,
	tx *sql.Tx,
	gymID, memberID, keptID string,
	orphanIDs []string,
	rid string,
) error {
	if s.outbox == nil {
		return nil
	}

	event := events.DuplicateOpenSessionEvent{
		EventType:          "duplicate_open_session",
		RequestID:          rid,
		GymID:              gymID,
		MemberID:           memberID,
		KeptSessionID:      keptID,
		OrphanedSessionIDs: orphanIDs,
		OccurredAt:         time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal anomaly event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "checkin",
		AggregateID:   keptID,
		EventType:     event.EventType,
		Topic:         events.CheckinAnomalyTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) History(ctx context.Context, gymID, actorMemberID string, canReadAll bool) ([]SessionResponse, error) {
	var (
		rows []Session
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindAllByGym(ctx, gymID)
	} else {
		if _, parseErr := uuid.Parse(actorMemberID); parseErr != nil {
			return nil, attendanceerrors.ErrInvalidMemberID
		}
		rows, err = s.repo.FindAllByMember(ctx, gymID, actorMemberID)
	}
	if err != nil {
		return nil, err
	}

	res := make([]SessionResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func mapToResponse(s Session) SessionResponse {
	resp := SessionResponse{
		ID:       s.ID.String(),
		GymID:    s.GymID.String(),
		MemberID: s.MemberID.String(),
		CheckIn:  s.CheckIn.Format(time.RFC3339),
		Source:   s.Source,
	}
	if s.Member != nil {
		resp.MemberName = s.Member.Name
	}
	if s.CheckOut != nil {
		v := s.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
		d := int(s.CheckOut.Sub(s.CheckIn).Minutes())
		if d < 0 {
			d = 0
		}
		resp.DurationMinutes = &d
	}
	return resp
}
