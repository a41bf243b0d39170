package consts

// Closed set of business units. Schema, seeding and API validation all
// reference this list; anything outside it is rejected.
const (
	UnitMercadoLibre  = "Mercado Libre"
	UnitMercadoPago   = "Mercado Pago"
	UnitMercadoEnvios = "Mercado Envíos"
)

var BusinessUnits = []string{
	UnitMercadoLibre,
	UnitMercadoPago,
	UnitMercadoEnvios,
}

func IsBusinessUnit(unit string) bool {
	for _, u := range BusinessUnits {
		if u == unit {
			return true
		}
	}
	return false
}

const DefaultTargetYear = 2024
