package session

// ScanFeedback is the typed result of processing a card scan.
type ScanFeedback struct {
	Kind   ScanFeedbackKind
	CardID string
}

type ScanFeedbackKind string

const (
	ScanClockedIn       ScanFeedbackKind = "clocked_in"
	ScanClockedOut      ScanFeedbackKind = "clocked_out"
	ScanIgnoredPaused   ScanFeedbackKind = "ignored_paused"
	ScanIgnoredFinished ScanFeedbackKind = "ignored_finished"
)

// LunchFeedback is the typed result of a lunch request.
type LunchFeedback string

const (
	LunchStarted          LunchFeedback = "started"
	LunchIgnoredPaused    LunchFeedback = "ignored_paused"
	LunchIgnoredNoWorkers LunchFeedback = "ignored_no_workers"
	LunchIgnoredUsed      LunchFeedback = "ignored_already_used"
	LunchIgnoredFinished  LunchFeedback = "ignored_finished"
)

// SaveFeedback is the typed result of a save-to-queue request.
type SaveFeedback string

const (
	SaveQueued          SaveFeedback = "queued"
	SaveMissingMetadata SaveFeedback = "missing_metadata"
	SaveFailed          SaveFeedback = "failed"
)

// ResumeFeedback is the typed result of a generic resume request.
type ResumeFeedback string

const (
	ResumeOK              ResumeFeedback = "resumed"
	ResumeIgnoredGated    ResumeFeedback = "ignored_credential_gated"
	ResumeIgnoredFinished ResumeFeedback = "ignored_finished"
)
