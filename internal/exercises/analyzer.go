package exercises

import (
	"context"
	"time"

	"github.com/bvelickovic/gymtracker/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// ProgressHistory is the per-day progress of one user on one machine,
// used by the client to render the progress chart.
type ProgressHistory struct {
	UserID      string                 `json:"userId"`
	MachineName string                 `json:"machineName"`
	Stats       map[time.Time]DayStats `json:"stats"`
}

type DayStats struct {
	AvgWeight float64 `json:"avgWeight"`
	AvgReps   int     `json:"avgReps"`
	Sets      int     `json:"sets"`
}

type Analyzer struct {
	repo exercisesRepo
}

func NewAnalyzer(repo exercisesRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// ProgressHistory aggregates, for each day with logged entries, the average
// weight and reps plus the total number of sets.
func (a *Analyzer) ProgressHistory(
	ctx context.Context,
	userID, machineName string,
) (_ *ProgressHistory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.exercises.progressHistory")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))
	span.SetAttributes(attribute.String("machine_name", machineName))

	exercises, err := a.repo.ListAll(ctx, ExerciseParams{
		UserID:      userID,
		MachineName: machineName,
	})
	if err != nil {
		return nil, err
	}

	day2exercises := make(map[time.Time][]Exercise)
	for _, ex := range exercises {
		day := ex.Date.Truncate(24 * time.Hour)
		day2exercises[day] = append(day2exercises[day], ex)
	}

	stats := make(map[time.Time]DayStats)
	for day, dayExercises := range day2exercises {
		var totalWeight float64
		var totalReps, totalSets int
		for _, ex := range dayExercises {
			totalWeight += ex.Weight
			totalReps += ex.Reps
			totalSets += ex.Sets
		}
		stats[day] = DayStats{
			AvgWeight: totalWeight / float64(len(dayExercises)),
			AvgReps:   totalReps / len(dayExercises),
			Sets:      totalSets,
		}
	}

	return &ProgressHistory{
		UserID:      userID,
		MachineName: machineName,
		Stats:       stats,
	}, nil
}
