package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pedreb/cronogramadefolgas/schedule"
)

func TestClassify_ReferenceInsideWindow_OnLeave(t *testing.T) {
	// GIVEN: Bruno on leave [Mar 1, Mar 10]
	// WHEN: Classifying with reference date Mar 5
	// THEN: Bruno is on leave

	records := []schedule.LeaveRecord{
		{
			Employee:    "Bruno",
			Start:       d(2024, time.March, 1),
			End:         d(2024, time.March, 10),
			Origin:      "Belém",
			Destination: "Santarém",
			Supervisor:  "Silva",
		},
	}

	report := schedule.Classify(records, d(2024, time.March, 5))

	require.Len(t, report.OnLeave, 1)
	assert.Empty(t, report.Active)
	assert.Empty(t, report.Unscheduled)

	e := report.OnLeave[0]
	assert.Equal(t, "Bruno", e.Employee)
	assert.Equal(t, d(2024, time.March, 1), e.Start)
	assert.Equal(t, d(2024, time.March, 10), e.End)
	assert.Equal(t, "Belém", e.Origin)
	assert.Equal(t, "Santarém", e.Destination)
	assert.Equal(t, "Silva", e.Supervisor)
}

func TestClassify_ReferenceOutsideWindow_Active(t *testing.T) {
	// GIVEN: Bruno on leave [Mar 1, Mar 10]
	// WHEN: Classifying with reference date Apr 1
	// THEN: Bruno is active

	records := []schedule.LeaveRecord{
		{Employee: "Bruno", Start: d(2024, time.March, 1), End: d(2024, time.March, 10), Origin: "Belém", Supervisor: "Silva"},
	}

	report := schedule.Classify(records, d(2024, time.April, 1))

	require.Len(t, report.Active, 1)
	assert.Empty(t, report.OnLeave)
	assert.Empty(t, report.Unscheduled)
	assert.Equal(t, "Bruno", report.Active[0].Employee)
	assert.Equal(t, "Belém", report.Active[0].Origin)
}

func TestClassify_WindowEndsInclusive(t *testing.T) {
	// GIVEN: A leave window [Mar 1, Mar 10]
	// WHEN: Classifying exactly at each boundary
	// THEN: Both boundary dates count as on leave; one day out does not

	records := []schedule.LeaveRecord{
		leave("Bruno", d(2024, time.March, 1), d(2024, time.March, 10)),
	}

	assert.Len(t, schedule.Classify(records, d(2024, time.March, 1)).OnLeave, 1)
	assert.Len(t, schedule.Classify(records, d(2024, time.March, 10)).OnLeave, 1)
	assert.Len(t, schedule.Classify(records, d(2024, time.February, 29)).Active, 1)
	assert.Len(t, schedule.Classify(records, d(2024, time.March, 11)).Active, 1)
}

func TestClassify_MissingDates_Unscheduled(t *testing.T) {
	// GIVEN: Carla with no dates at all, Davi with only a start date
	// WHEN: Classifying
	// THEN: Both are unscheduled, never on leave or active

	records := []schedule.LeaveRecord{
		{Employee: "Carla", Supervisor: "Souza"},
		{Employee: "Davi", Start: d(2024, time.March, 1)},
	}

	report := schedule.Classify(records, d(2024, time.March, 5))

	assert.Empty(t, report.OnLeave)
	assert.Empty(t, report.Active)
	require.Len(t, report.Unscheduled, 2)
	assert.Equal(t, "Carla", report.Unscheduled[0].Employee)
	assert.Equal(t, "Souza", report.Unscheduled[0].Supervisor)
	assert.Equal(t, "Davi", report.Unscheduled[1].Employee)
}

func TestClassify_PerRecordNotPerEmployee(t *testing.T) {
	// GIVEN: One employee with a past and a current leave period
	// WHEN: Classifying
	// THEN: The employee appears once in each bucket (known flattening)

	records := []schedule.LeaveRecord{
		leave("Ana", d(2024, time.January, 1), d(2024, time.January, 10)),
		leave("Ana", d(2024, time.March, 1), d(2024, time.March, 10)),
	}

	report := schedule.Classify(records, d(2024, time.March, 5))

	assert.Len(t, report.OnLeave, 1)
	assert.Len(t, report.Active, 1)
}

func TestClassify_PartitionIsExhaustive(t *testing.T) {
	// GIVEN: A mixed schedule
	// WHEN: Classifying
	// THEN: Every record lands in exactly one bucket

	records := []schedule.LeaveRecord{
		leave("Ana", d(2024, time.March, 1), d(2024, time.March, 10)),
		leave("Bruno", d(2024, time.June, 1), d(2024, time.June, 10)),
		{Employee: "Carla"},
		{Employee: "Davi", End: d(2024, time.March, 20)},
	}

	report := schedule.Classify(records, d(2024, time.March, 5))

	total := len(report.OnLeave) + len(report.Active) + len(report.Unscheduled)
	assert.Equal(t, len(records), total)
}
