package exercises

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bvelickovic/gymtracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrExerciseNotFound = errors.New("exercise not found")

type ExerciseParams struct {
	UserID      string
	MachineName string
	From        *time.Time
	To          *time.Time
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO exercise
				(user_id, machine_name, weight, reps, sets, date, machine_image, machine_notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id;`,
		exercise.UserID, exercise.MachineName,
		exercise.Weight, exercise.Reps, exercise.Sets,
		exercise.Date, exercise.MachineImage, exercise.MachineNotes,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("exercise.id", id))

	exercise.ID = id
	return &exercise, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, machine_name, weight, reps, sets, date, machine_image, machine_notes
			FROM exercise
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	exercises, err := rows2exercises(rows)
	if err != nil {
		return nil, err
	}

	if len(exercises) != 1 {
		return nil, ErrExerciseNotFound
	}

	return &exercises[0], nil
}

// ListAll returns exercises matching the given params, newest first.
// Empty param fields do not filter.
func (r *Repo) ListAll(ctx context.Context, params ExerciseParams) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", params.UserID))
	span.SetAttributes(attribute.String("machine_name", params.MachineName))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, machine_name, weight, reps, sets, date, machine_image, machine_notes
			FROM exercise
			WHERE ($1::text = '' OR user_id = $1)
			AND ($2::text = '' OR machine_name = $2)
			AND ($3::timestamptz IS NULL OR date >= $3)
			AND ($4::timestamptz IS NULL OR date <= $4)
		ORDER BY date DESC;`,
		params.UserID, params.MachineName,
		params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	exercises, err := rows2exercises(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2exercises: %w", err)
	}
	return exercises, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM exercise WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

func rows2exercises(rows pgx.Rows) ([]Exercise, error) {
	var exercises []Exercise
	for rows.Next() {
		var id int
		var userID string
		var machineName string
		var weight float64
		var reps int
		var sets int
		var date time.Time
		var machineImage string
		var machineNotes string
		if err := rows.Scan(
			&id, &userID, &machineName,
			&weight, &reps, &sets,
			&date, &machineImage, &machineNotes,
		); err != nil {
			return nil, err
		}

		exercises = append(exercises, Exercise{
			ID:           id,
			UserID:       userID,
			MachineName:  machineName,
			Weight:       weight,
			Reps:         reps,
			Sets:         sets,
			Date:         date,
			MachineImage: machineImage,
			MachineNotes: machineNotes,
		})
	}

	if exercises == nil {
		exercises = make([]Exercise, 0)
	}

	return exercises, nil
}
