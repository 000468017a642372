package machines

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

var ErrMachineNotFound = errors.New("machine not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, machine Machine) (_ *Machine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.machines.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO machine (name, image, notes, created_at)
			VALUES ($1, $2, $3, $4)
		RETURNING id;`,
		machine.Name, machine.Image, machine.Notes, machine.CreatedAt,
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

	span.SetAttributes(attribute.Int("machine.id", id))

	machine.ID = id
	return &machine, nil
}

// List returns all machines, oldest first. There is no pagination on
// purpose, the client always renders the full catalogue.
func (r *Repo) List(ctx context.Context) (_ []Machine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.machines.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, image, notes, created_at FROM machine ORDER BY id;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return rows2machines(rows)
}

// GetByName returns the machine with the given name. Names are not unique,
// so on duplicates the most recently created one wins.
func (r *Repo) GetByName(ctx context.Context, name string) (_ *Machine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.machines.getbyname")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("machine.name", name))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, image, notes, created_at FROM machine
			WHERE name = $1
		ORDER BY id DESC
		LIMIT 1;`,
		name,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	machines, err := rows2machines(rows)
	if err != nil {
		return nil, err
	}

	if len(machines) != 1 {
		return nil, ErrMachineNotFound
	}

	return &machines[0], nil
}

func rows2machines(rows pgx.Rows) ([]Machine, error) {
	var machines []Machine
	for rows.Next() {
		var id int
		var name string
		var image string
		var notes string
		var createdAt time.Time
		if err := rows.Scan(&id, &name, &image, &notes, &createdAt); err != nil {
			return nil, err
		}

		machines = append(machines, Machine{
			ID:        id,
			Name:      name,
			Image:     image,
			Notes:     notes,
			CreatedAt: createdAt,
		})
	}

	if machines == nil {
		machines = make([]Machine, 0)
	}

	return machines, nil
}
