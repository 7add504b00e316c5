package constant

// Telegram hard limit for a single message body.
const MaxMessageLength = 4096

// Callback data payloads. Mode values double as the persisted session mode.
const (
	CallbackModeDrilling   = "mode:drilling"
	CallbackModeCompletion = "mode:completion"
	CallbackWellPrefix     = "well:"
	CallbackEnter          = "nav:enter"
	CallbackBackToWells    = "nav:wells"
	CallbackBackToModes    = "nav:modes"
	CallbackBackToStart    = "nav:start"
)

const (
	ModeDrilling   = "drilling"
	ModeCompletion = "completion"
)

// User-facing texts.
const (
	TextWelcome        = "Daily well reports. Press the button below to begin."
	TextChooseMode     = "Choose a report type:"
	TextChooseWell     = "Choose a well:"
	TextSelectModeHint = "Select a report type first."
	TextStoreError     = "Temporary storage error, please try again."
	TextListError      = "Could not load the well list, please try again."
	TextDetailError    = "Could not load the well report, please try again."
	TextNoWells        = "No wells reported today."
	TextWellNotFound   = "No report for this well today."

	ButtonEnter       = "Open reports"
	ButtonDrilling    = "Drilling"
	ButtonCompletion  = "Completion"
	ButtonBackToWells = "Back to wells"
	ButtonBackToModes = "Report types"
	ButtonBackToStart = "Main menu"
)

// Topic carrying summary requests from the navigation service to the
// background consumer.
const SummaryTopicName = "SUMMARIZE_WELL_REPORT"

// Prompt for the summary enrichment model.
const SummaryPrompt = "You are a drilling and well completion specialist. Summarize the report below briefly and to the point:\n%s"
