package service

import (
	"encoding/json"
	"fmt"
	"time"

	"cantera-backend/internal/model"
	"cantera-backend/internal/repository"
)

// ValidationError rejects an operation before it reaches the store. The
// message is meant for the user, not the log.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// CreateLogInput carries one worker action. It is also the payload format
// for LOG entries in the offline queue, so replayed writes travel the exact
// same path as online ones.
type CreateLogInput struct {
	Date             time.Time       `json:"date"`
	WorkerID         uint            `json:"worker_id"`
	MachineID        uint            `json:"machine_id"`
	HoursAtExecution *float64        `json:"hours_at_execution"`
	Type             string          `json:"type"`
	Payload          json.RawMessage `json:"payload"`
}

// OperationLogService owns the operation log write path: validation, the
// machine hour update, the scheduled-maintenance baseline advance, and the
// synchronous threshold notification.
type OperationLogService interface {
	CreateLog(input CreateLogInput) (*model.OperationLog, []DueStatus, error)
}

type operationLogService struct {
	logs        repository.OperationLogRepository
	machines    repository.MachineRepository
	maintenance MaintenanceService
	notifier    Notifier
}

func NewOperationLogService(
	logs repository.OperationLogRepository,
	machines repository.MachineRepository,
	maintenance MaintenanceService,
	notifier Notifier,
) OperationLogService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &operationLogService{logs: logs, machines: machines, maintenance: maintenance, notifier: notifier}
}

var validLogTypes = map[string]bool{
	model.LogTypeLevels:      true,
	model.LogTypeBreakdown:   true,
	model.LogTypeMaintenance: true,
	model.LogTypeScheduled:   true,
	model.LogTypeRefueling:   true,
}

func (s *operationLogService) CreateLog(input CreateLogInput) (*model.OperationLog, []DueStatus, error) {
	if !validLogTypes[input.Type] {
		return nil, nil, &ValidationError{Msg: fmt.Sprintf("unknown operation type %q", input.Type)}
	}

	machine, err := s.machines.GetByID(input.MachineID)
	if err != nil {
		return nil, nil, err
	}

	// 1. Validate the hour reading before anything touches the store.
	if machine.RequiresHours && input.HoursAtExecution == nil {
		return nil, nil, &ValidationError{Msg: "this machine requires an hour-meter reading"}
	}
	if input.HoursAtExecution != nil && *input.HoursAtExecution < machine.CurrentHours {
		return nil, nil, &ValidationError{
			Msg: fmt.Sprintf("hour reading %.1f is below the machine's current %.1f", *input.HoursAtExecution, machine.CurrentHours),
		}
	}

	log := &model.OperationLog{
		Date:             input.Date,
		WorkerID:         input.WorkerID,
		MachineID:        input.MachineID,
		HoursAtExecution: input.HoursAtExecution,
		Type:             input.Type,
		Payload:          input.Payload,
	}

	// 2. A SCHEDULED execution advances the definition baseline in the same
	// transaction as the log insert.
	var def *model.MaintenanceDefinition
	if input.Type == model.LogTypeScheduled {
		var p model.ScheduledPayload
		if err := json.Unmarshal(input.Payload, &p); err != nil || p.MaintenanceDefID == 0 {
			return nil, nil, &ValidationError{Msg: "scheduled log needs a maintenance_def_id"}
		}
		def, err = s.machines.GetDefinition(p.MaintenanceDefID)
		if err != nil {
			return nil, nil, err
		}
		if def.MachineID != machine.ID {
			return nil, nil, &ValidationError{Msg: "maintenance definition belongs to another machine"}
		}
		s.maintenance.AdvanceBaseline(def, input.HoursAtExecution)
	}

	// 3. The hour reading becomes the machine's new odometer value.
	var machineUpdate *model.Machine
	if input.HoursAtExecution != nil {
		machine.CurrentHours = *input.HoursAtExecution
		machineUpdate = machine
	}

	if err := s.logs.CreateWithSideEffects(log, machineUpdate, def); err != nil {
		return nil, nil, err
	}

	// 4. Recompute due status and fire threshold notifications synchronously,
	// within the same logical operation.
	if def != nil {
		for i := range machine.MaintenanceDefinitions {
			if machine.MaintenanceDefinitions[i].ID == def.ID {
				machine.MaintenanceDefinitions[i] = *def
			}
		}
	}
	statuses := s.maintenance.Evaluate(machine)
	if input.HoursAtExecution != nil {
		s.maintenance.NotifyThresholds(s.notifier, machine)
	}

	return log, statuses, nil
}
