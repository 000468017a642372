package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bvelickovic/gymtracker/internal/machines"
	"github.com/bvelickovic/gymtracker/internal/telemetry/metrics"
	"github.com/bvelickovic/gymtracker/internal/telemetry/tracing"
	"github.com/bvelickovic/gymtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=exercises_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	Add(ctx context.Context, exercise Exercise) (*Exercise, error)
	Get(ctx context.Context, id int) (*Exercise, error)
	ListAll(ctx context.Context, params ExerciseParams) ([]Exercise, error)
	Delete(ctx context.Context, id int) error
}

// machineCatalog is the machine lookup used for the copy-at-log-time step.
type machineCatalog interface {
	GetByName(ctx context.Context, name string) (*machines.Machine, error)
}

type Handler struct {
	repo     exercisesRepo
	catalog  machineCatalog
	analyzer *Analyzer
	metrics  *metrics.Manager
}

func NewHandler(repo exercisesRepo, catalog machineCatalog, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:     repo,
		catalog:  catalog,
		analyzer: NewAnalyzer(repo),
		metrics:  metrics,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.add")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var exercise Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Tracef("new exercise, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	if exercise.UserID == "" || exercise.MachineName == "" {
		pkg.WriteJSONError(w, "error, user id or machine name empty", http.StatusBadRequest)
		return
	}

	if exercise.Date.IsZero() {
		exercise.Date = time.Now()
	}

	if err := handler.copyMachineDetails(ctx, &exercise); err != nil {
		log.Errorf("failed to get machine [%s] for new exercise: %s", exercise.MachineName, err)
		pkg.WriteJSONError(w, "failed to add new exercise", http.StatusInternalServerError)
		return
	}

	addedExercise, err := handler.repo.Add(ctx, exercise)
	if err != nil {
		log.Errorf("failed to add new exercise [%s], [%s]: %s", exercise.UserID, exercise.MachineName, err)
		pkg.WriteJSONError(w, "failed to add new exercise", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterExercises.Inc()

	addedExJson, err := json.Marshal(addedExercise)
	if err != nil {
		log.Errorf("failed to marshal new exercise: %s", err)
		pkg.WriteJSONError(w, "failed to add new exercise", http.StatusInternalServerError)
		return
	}

	log.Debugf("new exercise added: %s", addedExJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedExJson, http.StatusCreated)
}

// copyMachineDetails fills the exercise machine image/notes from the machine
// catalogue when the client did not send them. The copy happens at log time
// on purpose: a later machine edit must not rewrite stored exercises.
func (handler *Handler) copyMachineDetails(ctx context.Context, exercise *Exercise) error {
	if exercise.MachineImage != "" && exercise.MachineNotes != "" {
		return nil
	}

	machine, err := handler.catalog.GetByName(ctx, exercise.MachineName)
	if errors.Is(err, machines.ErrMachineNotFound) {
		// free text machine name, logging against an unknown machine is fine
		log.Tracef("machine [%s] not in catalogue, storing exercise without machine details", exercise.MachineName)
		return nil
	}
	if err != nil {
		return err
	}

	if exercise.MachineImage == "" {
		exercise.MachineImage = machine.Image
	}
	if exercise.MachineNotes == "" {
		exercise.MachineNotes = machine.Notes
	}
	return nil
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		pkg.WriteJSONError(w, "userId required", http.StatusBadRequest)
		return
	}

	exercises, err := handler.repo.ListAll(ctx, ExerciseParams{
		UserID: userID,
	})
	if err != nil {
		log.Errorf("list exercises error: %s", err)
		pkg.WriteJSONError(w, "failed to get exercises", http.StatusInternalServerError)
		return
	}

	exercisesJson, err := json.Marshal(exercises)
	if err != nil {
		log.Errorf("marshal exercises error: %s", err)
		pkg.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exercisesJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "DELETE, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		pkg.WriteJSONError(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		pkg.WriteJSONError(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	// delete is idempotent: removing an absent exercise is not an error
	if err := handler.repo.Delete(ctx, id); err != nil && !errors.Is(err, ErrExerciseNotFound) {
		log.Errorf("failed to delete exercise %d: %s", id, err)
		pkg.WriteJSONError(w, "exercise not deleted", http.StatusInternalServerError)
		return
	}

	log.Debugf("exercise %d deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.stats")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		pkg.WriteJSONError(w, "userId required", http.StatusBadRequest)
		return
	}
	machineName := r.URL.Query().Get("machineName")
	if machineName == "" {
		pkg.WriteJSONError(w, "machineName required", http.StatusBadRequest)
		return
	}

	history, err := handler.analyzer.ProgressHistory(ctx, userID, machineName)
	if err != nil {
		log.Errorf("failed to get progress history [%s] [%s]: %s", userID, machineName, err)
		pkg.WriteJSONError(w, "failed to get progress history", http.StatusInternalServerError)
		return
	}

	historyJson, err := json.Marshal(history)
	if err != nil {
		log.Errorf("failed to marshal progress history: %s", err)
		pkg.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, historyJson, http.StatusOK)
}
