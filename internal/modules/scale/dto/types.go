package dto

type ReadingOutput struct {
	RawGrams  float64
	Display   float64
	Unit      string
	Precision int
}
