package installment

// Medical underwriting by height and weight. Factors: 1.00 standard, 1.25
// loaded tariff, x means a medical exam is required before any quote.

const x = -1.0

const (
	factorStandard = 1.0
	factorLoaded   = 1.25
)

// Weight band upper bounds in kg; a weight maps to the first band it is
// below, the last column catches everything heavier.
var weightBounds = []int{39, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 105, 110, 115, 120, 125, 130, 135, 140}

var underwritingTable = map[int]map[string][]float64{
	140: {
		"16-29": {1.25, 1, 1, 1, 1, 1.25, x, x, x, x, x, x, x, x, x, x, x, x, x, x, x, x, x},
		"30-45": {1.25, 1, 1, 1, 1, 1.25, 1.25, x, x, x, x, x, x, x, x, x, x, x, x, x, x, x, x},
		"46-59": {1.25, 1, 1, 1, 1, 1, 1.25, x, x, x, x, x, x, x, x, x, x, x, x, x, x, x, x},
		"60+":   {1.25, 1, 1, 1, 1, 1, 1, 1.25, 1.25, x, x, x, x, x, x, x, x, x, x, x, x, x, x},
	},
	150: {
		"16-29": {x, 1, 1, 1, 1, 1, 1, 1.25, 1.25, 1.25, x, x, x, x, x, x, x, x, x, x, x, x, x},
		"30-45": {x, 1.25, 1, 1, 1, 1, 1, 1.25, 1.25, x, x, x, x, x, x, x, x, x, x, x, x, x, x},
		"46-59": {x, 1.25, 1, 1, 1, 1, 1, 1, 1.25, x, x, x, x, x, x, x, x, x, x, x, x, x, x},
		"60+":   {x, 1.25, 1, 1, 1, 1, 1, 1, 1, 1.25, 1.25, x, x, x, x, x, x, x, x, x, x, x, x},
	},
	160: {
		"16-29": {x, x, 1.25, 1, 1, 1, 1, 1, 1, 1.25, x, x, x, x, x, x, x, x, x, x, x, x, x},
		"30-45": {x, x, 1.25, 1, 1, 1, 1, 1, 1, 1.25, 1.25, x, x, x, x, x, x, x, x, x, x, x, x},
		"46-59": {x, x, 1.25, 1, 1, 1, 1, 1, 1, 1, 1.25, 1.25, x, x, x, x, x, x, x, x, x, x, x},
		"60+":   {x, x, 1.25, 1, 1, 1, 1, 1, 1, 1, 1.25, 1.25, x, x, x, x, x, x, x, x, x, x, x},
	},
	170: {
		"16-29": {x, x, x, 1.25, 1, 1, 1, 1, 1, 1, 1.25, 1.25, x, x, x, x, x, x, x, x, x, x, x},
		"30-45": {x, x, x, 1.25, 1, 1, 1, 1, 1, 1, 1.25, 1.25, x, x, x, x, x, x, x, x, x, x, x},
		"46-59": {x, x, x, x, 1, 1, 1, 1, 1, 1, 1, 1.25, 1.25, x, x, x, x, x, x, x, x, x, x},
		"60+":   {x, x, x, x, 1, 1, 1, 1, 1, 1, 1, 1.25, 1.25, 1.25, x, x, x, x, x, x, x, x, x},
	},
	180: {
		"16-29": {x, x, x, x, 1.25, 1.25, 1, 1, 1, 1, 1, 1, 1.25, x, x, x, x, x, x, x, x, x, x},
		"30-45": {x, x, x, x, x, 1.25, 1, 1, 1, 1, 1, 1, 1.25, 1.25, x, x, x, x, x, x, x, x, x},
		"46-59": {x, x, x, x, x, 1.25, 1, 1, 1, 1, 1, 1, 1, 1.25, 1.25, x, x, x, x, x, x, x, x},
		"60+":   {x, x, x, x, x, 1.25, 1, 1, 1, 1, 1, 1, 1, 1.25, 1.25, 1.25, x, x, x, x, x, x, x},
	},
	190: {
		"16-29": {x, x, x, x, x, x, 1.25, 1, 1, 1, 1, 1, 1, 1.25, x, x, x, x, x, x, x, x, x},
		"30-45": {x, x, x, x, x, x, 1.25, 1, 1, 1, 1, 1, 1, 1.25, 1.25, 1.25, x, x, x, x, x, x, x},
		"46-59": {x, x, x, x, x, x, 1.25, 1, 1, 1, 1, 1, 1, 1, 1.25, 1.25, 1.25, x, x, x, x, x, x},
		"60+":   {x, x, x, x, x, x, 1.25, 1, 1, 1, 1, 1, 1, 1, 1, 1.25, 1.25, 1.25, x, x, x, x, x},
	},
}

func ageGroup(age int) string {
	switch {
	case age <= 29:
		return "16-29"
	case age <= 45:
		return "30-45"
	case age <= 59:
		return "46-59"
	}
	return "60+"
}

func closestHeight(height int) int {
	best, bestDiff := 0, 1<<30
	for h := range underwritingTable {
		d := h - height
		if d < 0 {
			d = -d
		}
		if d < bestDiff || (d == bestDiff && h < best) {
			best, bestDiff = h, d
		}
	}
	return best
}

func weightIndex(weight int) int {
	for i, b := range weightBounds {
		if weight < b {
			return i
		}
	}
	return len(weightBounds)
}

// UnderwritingFactor maps age, height and weight to a tariff factor.
// Returns x when a medical exam is required; missing measurements yield the
// standard factor.
func UnderwritingFactor(age, heightCM, weightKG int) float64 {
	if age == 0 || heightCM == 0 || weightKG == 0 {
		return factorStandard
	}
	row, ok := underwritingTable[closestHeight(heightCM)][ageGroup(age)]
	if !ok {
		return factorStandard
	}
	return row[weightIndex(weightKG)]
}
