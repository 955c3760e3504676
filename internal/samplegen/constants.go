package samplegen

// Default sizes.
const (
	DefaultProducts = 500
	DefaultSellers  = 120
	DefaultCities   = 12
)

// Score generation.
const (
	minScore        = 1.0
	maxScore        = 5.0
	outOfDomainMean = 6.2
	maxOrders       = 40
	geoJitter       = 0.35
	geoPerCity      = 25
)

const directoryPermission = 0o750

// city is a seed city with a rough center.
type city struct {
	name     string
	lat, lng float64
}

var seedCities = []city{
	{"sao paulo", -23.55, -46.63},
	{"rio de janeiro", -22.91, -43.17},
	{"belo horizonte", -19.92, -43.94},
	{"brasilia", -15.79, -47.88},
	{"curitiba", -25.43, -49.27},
	{"campinas", -22.91, -47.06},
	{"porto alegre", -30.03, -51.23},
	{"salvador", -12.97, -38.50},
	{"guarulhos", -23.45, -46.53},
	{"sao bernardo do campo", -23.69, -46.56},
	{"niteroi", -22.88, -43.10},
	{"santo andre", -23.66, -46.53},
	{"osasco", -23.53, -46.79},
	{"santos", -23.96, -46.33},
	{"goiania", -16.68, -49.25},
	{"fortaleza", -3.73, -38.52},
}
