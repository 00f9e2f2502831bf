package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/grishdev/slotbot/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Коды ошибок PostgreSQL, которые мы переводим в доменные ошибки
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
	pgLockNotAvailable   = "55P03"
	pgSerializationFail  = "40001"
	pgDeadlockDetected   = "40P01"
)

type SlotRepository struct {
	pool *pgxpool.Pool
}

var _ SlotStore = (*SlotRepository)(nil)

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

const slotColumns = `
	s.id, s.owner_id, s.start_time, s.end_time, s.subject, s.state, s.requester_id, s.created_at,
	u.id, u.telegram_id, u.username, u.first_name, u.last_name, u.created_at
`

// scanSlot читает слот вместе с данными заявителя (LEFT JOIN users)
func scanSlot(row pgx.Row) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	var (
		reqID        *int64
		reqTgID      *int64
		reqUsername  *string
		reqFirstName *string
		reqLastName  *string
		reqCreatedAt *time.Time
	)

	err := row.Scan(
		&slot.ID,
		&slot.OwnerID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Subject,
		&slot.State,
		&slot.RequesterID,
		&slot.CreatedAt,
		&reqID,
		&reqTgID,
		&reqUsername,
		&reqFirstName,
		&reqLastName,
		&reqCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reqID != nil {
		slot.Requester = &model.User{
			ID:         *reqID,
			TelegramID: *reqTgID,
			Username:   *reqUsername,
			FirstName:  *reqFirstName,
			LastName:   *reqLastName,
			CreatedAt:  *reqCreatedAt,
		}
	}

	return &slot, nil
}

// Create сохраняет новый слот со статусом free
func (r *SlotRepository) Create(ctx context.Context, slot *model.TimeSlot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Явная проверка пересечения внутри транзакции. Exclusion constraint в
	// схеме остаётся последним рубежом на случай гонки.
	var overlaps bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM time_slots
			WHERE owner_id = $1 AND start_time < $3 AND end_time > $2
		)
	`, slot.OwnerID, slot.StartTime, slot.EndTime).Scan(&overlaps)
	if err != nil {
		return fmt.Errorf("check slot overlap: %w", err)
	}
	if overlaps {
		return model.ErrOverlap
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO time_slots (owner_id, start_time, end_time, subject, state, requester_id)
		VALUES ($1, $2, $3, $4, $5, NULL)
		RETURNING id, created_at
	`, slot.OwnerID, slot.StartTime, slot.EndTime, slot.Subject, slot.State).
		Scan(&slot.ID, &slot.CreatedAt)
	if err != nil {
		if isConstraintViolation(err) {
			return model.ErrOverlap
		}
		return fmt.Errorf("create slot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isConstraintViolation(err) {
			return model.ErrOverlap
		}
		return fmt.Errorf("commit create slot: %w", err)
	}

	return nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.TimeSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM time_slots s
		LEFT JOIN users u ON u.id = s.requester_id
		WHERE s.id = $1
	`

	slot, err := scanSlot(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return slot, nil
}

// List получает слоты по фильтру
func (r *SlotRepository) List(ctx context.Context, filter SlotFilter) ([]*model.TimeSlot, error) {
	query, args := buildListQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []*model.TimeSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slots: %w", err)
	}

	return slots, nil
}

// buildListQuery собирает SQL запрос по фильтру
func buildListQuery(filter SlotFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT ` + slotColumns + `
		FROM time_slots s
		LEFT JOIN users u ON u.id = s.requester_id
		WHERE s.owner_id = $1
	`)

	args := []any{filter.OwnerID}

	if filter.RequesterID != nil {
		args = append(args, *filter.RequesterID)
		fmt.Fprintf(&sb, " AND s.requester_id = $%d", len(args))
	}

	if len(filter.States) > 0 {
		states := make([]string, 0, len(filter.States))
		for _, st := range filter.States {
			states = append(states, string(st))
		}
		args = append(args, states)
		fmt.Fprintf(&sb, " AND s.state = ANY($%d)", len(args))
	}

	if filter.From != nil {
		args = append(args, *filter.From)
		fmt.Fprintf(&sb, " AND s.start_time >= $%d", len(args))
	}

	if filter.To != nil {
		args = append(args, *filter.To)
		fmt.Fprintf(&sb, " AND s.start_time <= $%d", len(args))
	}

	sb.WriteString(" ORDER BY s.start_time")

	return sb.String(), args
}

// FreeDates получает даты со свободными слотами владельца в диапазоне
func (r *SlotRepository) FreeDates(ctx context.Context, ownerID int64, from, to time.Time) ([]time.Time, error) {
	query := `
		SELECT DISTINCT date_trunc('day', start_time) AS day
		FROM time_slots
		WHERE owner_id = $1
		  AND state = $2
		  AND start_time >= $3
		  AND start_time <= $4
		ORDER BY day
	`

	rows, err := r.pool.Query(ctx, query, ownerID, model.SlotStateFree, from, to)
	if err != nil {
		return nil, fmt.Errorf("get free dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scan free date: %w", err)
		}
		dates = append(dates, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate free dates: %w", err)
	}

	return dates, nil
}

// Mutate выполняет fn над слотом, заблокированным SELECT FOR UPDATE.
// NOWAIT вместо ожидания: конфликт за строку отдаём наверх как ErrConflict,
// координатор сам решает сколько раз повторить.
func (r *SlotRepository) Mutate(ctx context.Context, id int64, fn func(slot *model.TimeSlot) error) (*model.TimeSlot, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		SELECT ` + slotColumns + `
		FROM time_slots s
		LEFT JOIN users u ON u.id = s.requester_id
		WHERE s.id = $1
		FOR UPDATE OF s NOWAIT
	`

	slot, err := scanSlot(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		if isLockConflict(err) {
			return nil, model.ErrConflict
		}
		return nil, fmt.Errorf("lock slot: %w", err)
	}

	if err := fn(slot); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE time_slots
		SET state = $1, requester_id = $2
		WHERE id = $3
	`, slot.State, slot.RequesterID, id)
	if err != nil {
		return nil, fmt.Errorf("update slot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isLockConflict(err) {
			return nil, model.ErrConflict
		}
		return nil, fmt.Errorf("commit slot update: %w", err)
	}

	return slot, nil
}

// Delete удаляет слот и возвращает удалённую запись
func (r *SlotRepository) Delete(ctx context.Context, id int64) (*model.TimeSlot, error) {
	// Сначала читаем с данными заявителя, потом удаляем: после DELETE
	// RETURNING заявителя уже не достать одним запросом.
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		SELECT ` + slotColumns + `
		FROM time_slots s
		LEFT JOIN users u ON u.id = s.requester_id
		WHERE s.id = $1
		FOR UPDATE OF s NOWAIT
	`

	slot, err := scanSlot(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		if isLockConflict(err) {
			return nil, model.ErrConflict
		}
		return nil, fmt.Errorf("lock slot for delete: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM time_slots WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete slot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit slot delete: %w", err)
	}

	return slot, nil
}

func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation || pgErr.Code == pgExclusionViolation
}

func isLockConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgLockNotAvailable ||
		pgErr.Code == pgSerializationFail ||
		pgErr.Code == pgDeadlockDetected
}
