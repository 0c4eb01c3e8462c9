package service

import (
	"encoding/json"
	"fmt"

	"cantera-backend/internal/model"
	"cantera-backend/internal/repository"
)

// SyncService replays queued offline actions against the store, dispatching
// each entry to the same create path the online handlers use. The writes are
// plain inserts, so an entry replayed twice becomes a duplicate row; removal
// on confirmed success is the only duplicate prevention.
type SyncService struct {
	queue      *Queue
	logs       OperationLogService
	production repository.ProductionReportRepository
	personal   repository.PersonalReportRepository
}

func NewSyncService(
	queue *Queue,
	logs OperationLogService,
	production repository.ProductionReportRepository,
	personal repository.PersonalReportRepository,
) *SyncService {
	return &SyncService{queue: queue, logs: logs, production: production, personal: personal}
}

func (s *SyncService) Queue() *Queue { return s.queue }

// Run executes one sync pass. Callers invoke it only after detecting
// connectivity; the queue itself enforces single-flight.
func (s *SyncService) Run() (SyncResult, error) {
	return s.queue.Sync(s)
}

func (s *SyncService) Replay(action QueuedAction) error {
	switch action.Type {
	case ActionLog:
		var input CreateLogInput
		if err := json.Unmarshal(action.Payload, &input); err != nil {
			return err
		}
		_, _, err := s.logs.CreateLog(input)
		return err

	case ActionCPReport:
		var report model.CPDailyReport
		if err := json.Unmarshal(action.Payload, &report); err != nil {
			return err
		}
		return s.production.CreateCP(&report)

	case ActionCRReport:
		var report model.CRDailyReport
		if err := json.Unmarshal(action.Payload, &report); err != nil {
			return err
		}
		return s.production.CreateCR(&report)

	case ActionPersonalReport:
		var report model.PersonalReport
		if err := json.Unmarshal(action.Payload, &report); err != nil {
			return err
		}
		return s.personal.Create(&report)

	default:
		return fmt.Errorf("unknown queued action type %q", action.Type)
	}
}
