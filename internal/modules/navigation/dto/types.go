package dto

type StateOutput struct {
	Mode          string
	View          string
	HistoryCursor int
}

// SampleInput is one polled button level. NowMillis is a wrapping
// millisecond tick; only differences are compared.
type SampleInput struct {
	Button    string
	Pressed   bool
	NowMillis uint32
}

type PressInput struct {
	Button string
	Hold   bool
}

type PressOutput struct {
	State   StateOutput
	Message string
	Changed bool
}
