package dto

type StartInput struct {
	InitialWeight     float64
	TargetLossPercent float64
}

type StartOutput struct {
	SessionID     string
	InitialWeight float64
	TargetLoss    float64
}

type RecordOutput struct {
	Day         int
	Timestamp   uint32
	Weight      float64
	LossPercent float64
	DayChange   float64
}

type StatusOutput struct {
	Active              bool
	SessionID           string
	InitialWeight       float64
	TargetLossPercent   float64
	CurrentLossPercent  float64
	RemainingPercent    float64
	CurrentDay          int
	RecordCount         int
	DaysRemaining       int
	Ready               bool
	StartTimestamp      uint32
	LastRecordTimestamp uint32
}
