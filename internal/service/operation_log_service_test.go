package service

import (
	"encoding/json"
	"testing"
	"time"

	"cantera-backend/internal/model"
	"cantera-backend/internal/repository"
)

// Fakes embed the interfaces; only the methods the write path touches are
// implemented.

type fakeMachineRepo struct {
	repository.MachineRepository
	machine *model.Machine
	def     *model.MaintenanceDefinition
}

func (r *fakeMachineRepo) GetByID(uint) (*model.Machine, error) { return r.machine, nil }

func (r *fakeMachineRepo) GetDefinition(uint) (*model.MaintenanceDefinition, error) {
	return r.def, nil
}

type fakeLogRepo struct {
	repository.OperationLogRepository
	logs         []*model.OperationLog
	savedMachine *model.Machine
	savedDef     *model.MaintenanceDefinition
}

func (r *fakeLogRepo) CreateWithSideEffects(log *model.OperationLog, machine *model.Machine, def *model.MaintenanceDefinition) error {
	r.logs = append(r.logs, log)
	r.savedMachine = machine
	r.savedDef = def
	return nil
}

func levelsInput(machineID uint, hours float64) CreateLogInput {
	payload, _ := json.Marshal(model.LevelsPayload{EngineOilLitres: 2})
	return CreateLogInput{
		Date:             time.Now(),
		WorkerID:         1,
		MachineID:        machineID,
		HoursAtExecution: f(hours),
		Type:             model.LogTypeLevels,
		Payload:          payload,
	}
}

// TestCreateLogMonotonicHours: each confirmed write with an increasing
// reading becomes the machine's current hours; a decreasing reading is
// rejected before the store.
func TestCreateLogMonotonicHours(t *testing.T) {
	machine := &model.Machine{CurrentHours: 100, RequiresHours: true}
	machine.ID = 7
	logs := &fakeLogRepo{}
	svc := NewOperationLogService(logs, &fakeMachineRepo{machine: machine}, NewMaintenanceService(), nil)

	for _, hours := range []float64{105, 110, 200} {
		if _, _, err := svc.CreateLog(levelsInput(7, hours)); err != nil {
			t.Fatalf("write at %vh: %v", hours, err)
		}
		if machine.CurrentHours != hours {
			t.Errorf("currentHours = %v, want %v", machine.CurrentHours, hours)
		}
		if logs.savedMachine == nil {
			t.Error("hour-carrying write did not persist the machine update")
		}
	}

	_, _, err := svc.CreateLog(levelsInput(7, 150))
	if err == nil {
		t.Fatal("decreasing reading accepted")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Errorf("error type = %T, want *ValidationError", err)
	}
	if machine.CurrentHours != 200 {
		t.Errorf("rejected write moved the hour-meter to %v", machine.CurrentHours)
	}
}

func TestCreateLogRequiresHours(t *testing.T) {
	machine := &model.Machine{CurrentHours: 10, RequiresHours: true}
	machine.ID = 1
	svc := NewOperationLogService(&fakeLogRepo{}, &fakeMachineRepo{machine: machine}, NewMaintenanceService(), nil)

	input := levelsInput(1, 0)
	input.HoursAtExecution = nil
	if _, _, err := svc.CreateLog(input); err == nil {
		t.Error("missing reading accepted on a machine that requires hours")
	}

	relaxed := &model.Machine{CurrentHours: 10, RequiresHours: false}
	relaxed.ID = 2
	svc = NewOperationLogService(&fakeLogRepo{}, &fakeMachineRepo{machine: relaxed}, NewMaintenanceService(), nil)
	input.MachineID = 2
	if _, _, err := svc.CreateLog(input); err != nil {
		t.Errorf("hour-less write on a relaxed machine rejected: %v", err)
	}
}

// TestCreateLogScheduledAdvancesBaseline: a SCHEDULED log updates the
// definition baseline in the same repository call as the log insert, and the
// returned statuses already reflect the new baseline.
func TestCreateLogScheduledAdvancesBaseline(t *testing.T) {
	def := hoursDef(50, 10, f(50)) // due at 100
	def.ID = 3
	machine := &model.Machine{CurrentHours: 99, RequiresHours: true}
	machine.ID = 7
	def.MachineID = 7
	machine.MaintenanceDefinitions = []model.MaintenanceDefinition{def}

	logs := &fakeLogRepo{}
	svc := NewOperationLogService(logs, &fakeMachineRepo{machine: machine, def: &def}, NewMaintenanceService(), nil)

	payload, _ := json.Marshal(model.ScheduledPayload{MaintenanceDefID: 3, Description: "oil + filters"})
	input := CreateLogInput{
		Date:             time.Now(),
		WorkerID:         1,
		MachineID:        7,
		HoursAtExecution: f(101),
		Type:             model.LogTypeScheduled,
		Payload:          payload,
	}

	_, statuses, err := svc.CreateLog(input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if logs.savedDef == nil {
		t.Fatal("definition update not included in the write")
	}
	if *logs.savedDef.LastMaintenanceHours != 101 {
		t.Errorf("baseline = %v, want 101", *logs.savedDef.LastMaintenanceHours)
	}
	if len(statuses) != 1 || statuses[0].Status != StatusOK {
		t.Errorf("post-execution status = %+v, want OK against the new baseline", statuses)
	}
}

func TestCreateLogNotifiesThresholds(t *testing.T) {
	def := hoursDef(50, 10, f(50)) // due at 100
	machine := &model.Machine{CurrentHours: 90, RequiresHours: true}
	machine.ID = 7
	machine.MaintenanceDefinitions = []model.MaintenanceDefinition{def}

	notifier := &recordingNotifier{}
	svc := NewOperationLogService(&fakeLogRepo{}, &fakeMachineRepo{machine: machine}, NewMaintenanceService(), notifier)

	if _, _, err := svc.CreateLog(levelsInput(7, 95)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(notifier.statuses) != 1 || notifier.statuses[0].Status != StatusWarning {
		t.Fatalf("notifications = %+v, want one WARNING", notifier.statuses)
	}
}

func TestCreateLogUnknownType(t *testing.T) {
	svc := NewOperationLogService(&fakeLogRepo{}, &fakeMachineRepo{machine: &model.Machine{}}, NewMaintenanceService(), nil)
	input := levelsInput(1, 5)
	input.Type = "REPAIR"
	if _, _, err := svc.CreateLog(input); err == nil {
		t.Error("unknown operation type accepted")
	}
}
