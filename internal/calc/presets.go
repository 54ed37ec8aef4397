package calc

// Preset is a one-key shortcut that fills the calculator input.
type Preset struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Presets returns the quick calculations offered for mode.
func Presets(mode Mode) []Preset {
	switch mode {
	case ModeZeta:
		return []Preset{
			{Label: "ζ(2)", Value: "2", Description: "Famous result: π²/6"},
			{Label: "ζ(3)", Value: "3", Description: "Apéry's constant"},
			{Label: "ζ(4)", Value: "4", Description: "π⁴/90"},
			{Label: "ζ(1.5)", Value: "1.5", Description: "Convergent value"},
		}
	case ModePrime:
		return []Preset{
			{Label: "π(100)", Value: "100", Description: "Primes up to 100"},
			{Label: "π(1000)", Value: "1000", Description: "Primes up to 1000"},
			{Label: "π(10000)", Value: "10000", Description: "Primes up to 10,000"},
			{Label: "π(50)", Value: "50", Description: "Primes up to 50"},
		}
	case ModeGeneral:
		return []Preset{
			{Label: "π", Value: "pi", Description: "Pi constant"},
			{Label: "e", Value: "e", Description: "Euler's number"},
			{Label: "log(10)", Value: "log(10)", Description: "Natural logarithm"},
			{Label: "sqrt(2)", Value: "sqrt(2)", Description: "Square root of 2"},
		}
	}
	return nil
}
