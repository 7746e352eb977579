package importer

import "time"

// Mark is one raw clock punch. The clock does not say whether a punch is an
// entry or an exit; the classifier decides that from timing alone.
type Mark struct {
	Badge string
	At    time.Time
}

type ShiftKind string

const (
	ShiftComplete  ShiftKind = "complete"
	ShiftEntryOnly ShiftKind = "entry_only"
	ShiftExitOnly  ShiftKind = "exit_only"
)

// ResolvedShift is the classifier's output for one worked day. Entry always
// holds the raw mark when one exists; ScheduleEntry carries the
// scheduled-equivalent entry when it differs.
type ResolvedShift struct {
	Badge         string
	Entry         *time.Time
	Exit          *time.Time
	ScheduleEntry *time.Time
	Kind          ShiftKind
}

// Stage names identify where in the pipeline a shift failed.
const (
	StageGrouping       = "grouping"
	StageClassification = "classification"
	StageResolution     = "resolution"
	StageSynthesis      = "synthesis"
	StagePersistence    = "persistence"
)

type ShiftFailure struct {
	Badge  string      `json:"badge"`
	Date   string      `json:"date,omitempty"`
	Stage  string      `json:"stage"`
	Reason string      `json:"reason"`
	Marks  []time.Time `json:"marks,omitempty"`
}

// BatchSummary reports one workbook import. A failure for one employee never
// aborts the batch.
type BatchSummary struct {
	Imported int            `json:"imported"`
	Skipped  int            `json:"skipped"`
	Failed   int            `json:"failed"`
	Failures []ShiftFailure `json:"failures,omitempty"`
}
