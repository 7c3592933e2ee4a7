package domain

// Unit is the displayed weight unit. Cycling wraps through the four units
// in this order.
type Unit int

const (
	Grams Unit = iota
	Kilograms
	Ounces
	Pounds

	unitCount = 4
)

const (
	ouncesPerGram = 0.035274
	poundsPerGram = 0.00220462
)

func (u Unit) String() string {
	switch u {
	case Kilograms:
		return "kg"
	case Ounces:
		return "oz"
	case Pounds:
		return "lb"
	default:
		return "g"
	}
}

func (u Unit) Next() Unit {
	return (u + 1) % unitCount
}

// Convert maps a gram measurement into this unit.
func (u Unit) Convert(grams float64) float64 {
	switch u {
	case Kilograms:
		return grams / 1000.0
	case Ounces:
		return grams * ouncesPerGram
	case Pounds:
		return grams * poundsPerGram
	default:
		return grams
	}
}

// DecimalPlaces matches the firmware's per-unit display precision.
func (u Unit) DecimalPlaces() int {
	switch u {
	case Kilograms, Pounds:
		return 3
	case Ounces:
		return 2
	default:
		return 1
	}
}

func ParseUnit(s string) Unit {
	switch s {
	case "kg":
		return Kilograms
	case "oz":
		return Ounces
	case "lb":
		return Pounds
	default:
		return Grams
	}
}

// Settings is the persisted scale configuration. Calibration itself happens
// out of band; the factor is only round-tripped so it survives restart.
type Settings struct {
	Unit              string  `json:"unit"`
	CalibrationFactor float64 `json:"cal_factor"`
	TareOffset        int64   `json:"tare_offset"`
	Calibrated        bool    `json:"calibrated"`
}

func DefaultSettings() Settings {
	return Settings{Unit: Grams.String(), CalibrationFactor: 1.0}
}
