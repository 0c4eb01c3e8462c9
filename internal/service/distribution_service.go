package service

import (
	"fmt"
	"math"
	"sort"

	"cantera-backend/internal/model"
)

// GeneralMachineCode is the target-machine bucket for amounts assigned to a
// cost center as a whole.
const GeneralMachineCode = "GENERAL"

// AdmonCenterCode is the administrative bucket for external cost entries
// that match no worker with worked hours. They are fixed costs, not noise;
// dropping them silently would understate the month.
const AdmonCenterCode = "ADMON"

// SummaryRow is one aggregated allocation, keyed by target cost-center code
// and target machine code (or GENERAL).
type SummaryRow struct {
	CenterCode  string  `json:"center_code"`
	MachineCode string  `json:"machine_code"`
	Amount      float64 `json:"amount"`
}

// ExternalCostEntry is one row of the externally supplied, name-keyed wage /
// social-security cost table.
type ExternalCostEntry struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// DistributionInput bundles the reference data one month's distribution
// needs. PersonalReports must cover exactly the reporting period.
type DistributionInput struct {
	Machines        []model.Machine
	Centers         []model.CostCenter
	Rules           []model.SpecificCostRule
	PersonalReports []model.PersonalReport
}

// DistributionService spreads per-machine monthly totals (fuel litres or
// labour cost) across cost centers and target machines.
type DistributionService interface {
	// Distribute allocates each source machine's total: fixed-percentage
	// rules first, worked-hour ratios as fallback, the machine's own cost
	// center when no hours exist. Amounts stay unrounded; round only at
	// presentation.
	Distribute(totals map[uint]float64, input DistributionInput) []SummaryRow
	// DistributeWorkerCosts matches a name-keyed external cost table against
	// the roster, spreads each matched worker's cost over the machines they
	// worked (by their own hour ratios), then distributes the per-machine
	// totals like Distribute. Unmatched entries land in the ADMON bucket.
	DistributeWorkerCosts(entries []ExternalCostEntry, workers []model.Worker, input DistributionInput) []SummaryRow
}

type distributionService struct{}

func NewDistributionService() DistributionService {
	return &distributionService{}
}

func (s *distributionService) Distribute(totals map[uint]float64, input DistributionInput) []SummaryRow {
	acc := newAllocationAccumulator(input)
	for machineID, total := range totals {
		acc.distributeMachine(machineID, total)
	}
	return acc.rows()
}

func (s *distributionService) DistributeWorkerCosts(entries []ExternalCostEntry, workers []model.Worker, input DistributionInput) []SummaryRow {
	// Roster index by normalized name.
	workerByName := make(map[string]uint, len(workers))
	for _, w := range workers {
		workerByName[NormalizeName(w.Name)] = w.ID
	}

	// Worked hours per worker per machine, from the period's personal reports.
	hoursByWorker := make(map[uint]float64)
	hoursByWorkerMachine := make(map[uint]map[uint]float64)
	for _, pr := range input.PersonalReports {
		hoursByWorker[pr.WorkerID] += pr.Hours
		if hoursByWorkerMachine[pr.WorkerID] == nil {
			hoursByWorkerMachine[pr.WorkerID] = make(map[uint]float64)
		}
		hoursByWorkerMachine[pr.WorkerID][pr.MachineID] += pr.Hours
	}

	acc := newAllocationAccumulator(input)
	machineTotals := make(map[uint]float64)

	for _, entry := range entries {
		workerID, matched := workerByName[NormalizeName(entry.Name)]
		if !matched || hoursByWorker[workerID] == 0 {
			// Fixed-cost (administrative) entry: no worked hours to spread
			// over, assign wholesale.
			acc.add(AdmonCenterCode, GeneralMachineCode, entry.Amount)
			continue
		}

		total := hoursByWorker[workerID]
		for machineID, hours := range hoursByWorkerMachine[workerID] {
			machineTotals[machineID] += entry.Amount * (hours / total)
		}
	}

	for machineID, total := range machineTotals {
		acc.distributeMachine(machineID, total)
	}
	return acc.rows()
}

// RoundAmount rounds for presentation only.
func RoundAmount(v float64) float64 {
	return math.Round(v*100) / 100
}

// ValidateRulePercentage enforces the write-time cap: the rules of one origin
// machine may not sum past 100%. Exactly 100 is fine; staying below 100 is
// fine too (the remainder just stays undistributed).
func ValidateRulePercentage(existingSum, percentage float64) error {
	if percentage <= 0 {
		return &ValidationError{Msg: "percentage must be greater than 0"}
	}
	if existingSum+percentage > 100 {
		return &ValidationError{
			Msg: fmt.Sprintf("rules for this machine already allocate %.2f%%; adding %.2f%% would exceed 100%%", existingSum, percentage),
		}
	}
	return nil
}

// allocationAccumulator holds the lookup maps and summary-row aggregation
// for one distribution run.
type allocationAccumulator struct {
	centerCode    map[uint]string
	machineCode   map[uint]string
	machineCenter map[uint]uint
	rulesByOrigin map[uint][]model.SpecificCostRule
	hoursByCenter map[uint]map[uint]float64 // machineID -> centerID -> hours
	sums          map[[2]string]float64
}

func newAllocationAccumulator(input DistributionInput) *allocationAccumulator {
	acc := &allocationAccumulator{
		centerCode:    make(map[uint]string, len(input.Centers)),
		machineCode:   make(map[uint]string, len(input.Machines)),
		machineCenter: make(map[uint]uint, len(input.Machines)),
		rulesByOrigin: make(map[uint][]model.SpecificCostRule),
		hoursByCenter: make(map[uint]map[uint]float64),
		sums:          make(map[[2]string]float64),
	}
	for _, c := range input.Centers {
		acc.centerCode[c.ID] = c.Code
	}
	for _, m := range input.Machines {
		code := m.CompanyCode
		if code == "" {
			code = m.Name
		}
		acc.machineCode[m.ID] = code
		acc.machineCenter[m.ID] = m.CostCenterID
	}
	for _, r := range input.Rules {
		acc.rulesByOrigin[r.MachineOriginID] = append(acc.rulesByOrigin[r.MachineOriginID], r)
	}
	for _, pr := range input.PersonalReports {
		if acc.hoursByCenter[pr.MachineID] == nil {
			acc.hoursByCenter[pr.MachineID] = make(map[uint]float64)
		}
		acc.hoursByCenter[pr.MachineID][pr.CostCenterID] += pr.Hours
	}
	return acc
}

func (a *allocationAccumulator) distributeMachine(machineID uint, total float64) {
	if total == 0 {
		return
	}

	// 1. Fixed-percentage rules. Percentages summing below 100 leave the
	// remainder undistributed on purpose (partial costing).
	if rules := a.rulesByOrigin[machineID]; len(rules) > 0 {
		for _, rule := range rules {
			machineCode := GeneralMachineCode
			if rule.TargetMachineID != nil {
				machineCode = a.machineCodeFor(*rule.TargetMachineID)
			}
			a.add(a.centerCodeFor(rule.TargetCenterID), machineCode, total*rule.Percentage/100)
		}
		return
	}

	// 2. Worked-hour ratios across cost centers.
	centerHours := a.hoursByCenter[machineID]
	var machineHours float64
	for _, h := range centerHours {
		machineHours += h
	}
	if machineHours > 0 {
		for centerID, h := range centerHours {
			a.add(a.centerCodeFor(centerID), GeneralMachineCode, total*(h/machineHours))
		}
		return
	}

	// 3. No hours in the period: the machine's own cost center takes it all.
	a.add(a.centerCodeFor(a.machineCenter[machineID]), GeneralMachineCode, total)
}

func (a *allocationAccumulator) add(centerCode, machineCode string, amount float64) {
	a.sums[[2]string{centerCode, machineCode}] += amount
}

func (a *allocationAccumulator) centerCodeFor(id uint) string {
	if code, ok := a.centerCode[id]; ok {
		return code
	}
	return AdmonCenterCode
}

func (a *allocationAccumulator) machineCodeFor(id uint) string {
	if code, ok := a.machineCode[id]; ok {
		return code
	}
	return GeneralMachineCode
}

func (a *allocationAccumulator) rows() []SummaryRow {
	rows := make([]SummaryRow, 0, len(a.sums))
	for key, amount := range a.sums {
		rows = append(rows, SummaryRow{CenterCode: key[0], MachineCode: key[1], Amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CenterCode != rows[j].CenterCode {
			return rows[i].CenterCode < rows[j].CenterCode
		}
		return rows[i].MachineCode < rows[j].MachineCode
	})
	return rows
}
