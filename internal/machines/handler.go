package machines

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bvelickovic/gymtracker/internal/telemetry/metrics"
	"github.com/bvelickovic/gymtracker/internal/telemetry/tracing"
	"github.com/bvelickovic/gymtracker/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=machines_mocks_test.go -package=machines_test

type machinesRepo interface {
	Add(ctx context.Context, machine Machine) (*Machine, error)
	List(ctx context.Context) ([]Machine, error)
	GetByName(ctx context.Context, name string) (*Machine, error)
}

type Handler struct {
	repo    machinesRepo
	metrics *metrics.Manager
}

func NewHandler(repo machinesRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.machines.add")
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

	var machine Machine
	if err := json.NewDecoder(r.Body).Decode(&machine); err != nil {
		log.Tracef("new machine, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "add machine failed", http.StatusBadRequest)
		return
	}

	if machine.Name == "" {
		pkg.WriteJSONError(w, "error, machine name empty", http.StatusBadRequest)
		return
	}

	machine.CreatedAt = time.Now()

	addedMachine, err := handler.repo.Add(ctx, machine)
	if err != nil {
		log.Errorf("failed to add new machine [%s]: %s", machine.Name, err)
		pkg.WriteJSONError(w, "failed to add new machine", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterMachines.Inc()

	addedMachineJson, err := json.Marshal(addedMachine)
	if err != nil {
		log.Errorf("failed to marshal new machine: %s", err)
		pkg.WriteJSONError(w, "failed to add new machine", http.StatusInternalServerError)
		return
	}

	log.Debugf("new machine added: [%d] %s", addedMachine.ID, addedMachine.Name)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedMachineJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.machines.list")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	machines, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list machines error: %s", err)
		pkg.WriteJSONError(w, "failed to get machines", http.StatusInternalServerError)
		return
	}

	machinesJson, err := json.Marshal(machines)
	if err != nil {
		log.Errorf("marshal machines error: %s", err)
		pkg.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, machinesJson, http.StatusOK)
}
