package index

import "github.com/guttosm/marketpulse/internal/domain/models"

// DefaultTable is the name of the weight table used when none is configured.
const DefaultTable = "market"

// NamedTables are the weight tables shipped with the binary.
// Additional tables can be supplied through a YAML file (see config.ResolveWeights).
var NamedTables = map[string]models.WeightTable{
	DefaultTable: {
		"ABC":  0.1,
		"MEGA": 0.3,
		"NGL":  0.4,
		"TRX":  0.2,
	},
}
