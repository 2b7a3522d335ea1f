package repository

import (
	"context"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/pkg/pgconv"
	"roombook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RecurrenceRepository struct {
	db db.DBTX
}

func NewRecurrenceRepository(dbtx db.DBTX) shared.RecurrenceRepository {
	return &RecurrenceRepository{db: dbtx}
}

func (r *RecurrenceRepository) Create(ctx context.Context, rule *booking.Rule) error {
	const query = `
		INSERT INTO recurrence_rules (id, frequency, repeat_interval, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		rule.ID, string(rule.Frequency), rule.Interval,
		rule.StartDate, pgconv.TimePtrToPgtype(rule.EndDate),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create recurrence rule", err)
	}
	return nil
}

func (r *RecurrenceRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Rule, error) {
	const query = `
		SELECT id, frequency, repeat_interval, start_date, end_date, created_at
		FROM recurrence_rules
		WHERE id = $1`

	var (
		ruleID    uuid.UUID
		frequency string
		interval  int
		startDate time.Time
		endDate   pgtype.Timestamptz
		createdAt time.Time
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&ruleID, &frequency, &interval, &startDate, &endDate, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("recurrence rule not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find recurrence rule", err)
	}

	return &booking.Rule{
		ID:        ruleID,
		Frequency: booking.Frequency(frequency),
		Interval:  interval,
		StartDate: startDate,
		EndDate:   pgconv.TimePtrFromPgtype(endDate),
		CreatedAt: createdAt,
	}, nil
}
