package generator

import "time"

// Template provider: ready-made GeneratorConfig values per domain tag.
// This is pure data, not part of the engine (spec §6). Times are
// relative to a caller-supplied "now" so the same template is usable at
// any point without baking in a stale absolute window.

func f(v float64) *float64 { return &v }

func beta(mean, std, min, max float64) DistributionSpec {
	return DistributionSpec{Kind: DistributionBeta, Mean: mean, Std: f(std), MinValue: f(min), MaxValue: f(max)}
}

func gamma(mean, std, min, max float64) DistributionSpec {
	return DistributionSpec{Kind: DistributionGamma, Mean: mean, Std: f(std), MinValue: f(min), MaxValue: f(max)}
}

func poisson(mean, std float64) DistributionSpec {
	return DistributionSpec{Kind: DistributionPoisson, Mean: mean, Std: f(std)}
}

func normal(mean, std, min, max float64) DistributionSpec {
	return DistributionSpec{Kind: DistributionNormal, Mean: mean, Std: f(std), MinValue: f(min), MaxValue: f(max)}
}

func lognormal(mean, std, min float64) DistributionSpec {
	return DistributionSpec{Kind: DistributionLogNormal, Mean: mean, Std: f(std), MinValue: f(min)}
}

// TelecomTemplate returns a core-network preset: call setup/success rate
// and latency, negatively correlated latency→success.
func TelecomTemplate(now time.Time) GeneratorConfig {
	return GeneratorConfig{
		Seed:       42,
		DomainType: "telecom",
		TimeWindow: TimeWindow{Start: now, End: now.Add(24 * time.Hour), GranularityMinutes: 5},
		Entities: []Entity{{
			ID: "CORE_NET_01", Type: "CoreNetwork", Capacity: f(100000),
			Metadata: map[string]string{"location": "datacenter", "tier": "core"},
			Metrics: []Metric{
				{Name: "call_setup_rate", DisplayName: "Call Setup Rate", Unit: "calls/min", Category: "performance", Distribution: poisson(100, 10)},
				{Name: "call_success_rate", DisplayName: "Call Success Rate", Unit: "%", Category: "quality", Distribution: beta(99.5, 0.3, 95, 100)},
				{Name: "latency", DisplayName: "Network Latency", Unit: "ms", Category: "performance", Distribution: gamma(50, 15, 10, 200)},
			},
		}},
		Seasonality: &SeasonalitySpec{PeriodHours: 24, Amplitude: 0.3, Harmonics: 2},
		ARMA:        &ARMASpec{AROrder: 2, MAOrder: 1, ARCoef: []float64{0.6, 0.3}, MACoef: []float64{0.4}, NoiseStd: 0.05},
		Correlations: []CorrelationEdge{
			{SourceKey: "CORE_NET_01_latency", TargetKey: "CORE_NET_01_call_success_rate", Coefficient: -0.6},
		},
	}
}

// FinanceTemplate returns a trading-system preset.
func FinanceTemplate(now time.Time) GeneratorConfig {
	return GeneratorConfig{
		Seed:       42,
		DomainType: "finance",
		TimeWindow: TimeWindow{Start: now, End: now.Add(24 * time.Hour), GranularityMinutes: 1},
		Entities: []Entity{{
			ID: "TRADING_SYS_01", Type: "TradingSystem", Capacity: f(50000),
			Metadata: map[string]string{"exchange": "NYSE", "asset_class": "equity"},
			Metrics: []Metric{
				{Name: "transaction_volume", DisplayName: "Transaction Volume", Unit: "transactions/min", Category: "volume", Distribution: lognormal(10000, 3000, 0)},
				{Name: "execution_latency", DisplayName: "Execution Latency", Unit: "ms", Category: "performance", Distribution: gamma(10, 3, 1, 100)},
				{Name: "success_rate", DisplayName: "Transaction Success Rate", Unit: "%", Category: "quality", Distribution: beta(99.9, 0.1, 99, 100)},
				{Name: "order_book_depth", DisplayName: "Order Book Depth", Unit: "orders", Category: "market", Distribution: normal(500, 100, 0, 1e9)},
			},
		}},
		Seasonality: &SeasonalitySpec{PeriodHours: 24, Amplitude: 0.4, Harmonics: 3},
		Correlations: []CorrelationEdge{
			{SourceKey: "TRADING_SYS_01_transaction_volume", TargetKey: "TRADING_SYS_01_execution_latency", Coefficient: 0.5},
		},
	}
}

// HealthcareTemplate returns an ICU-unit preset.
func HealthcareTemplate(now time.Time) GeneratorConfig {
	return GeneratorConfig{
		Seed:       42,
		DomainType: "healthcare",
		TimeWindow: TimeWindow{Start: now, End: now.Add(7 * 24 * time.Hour), GranularityMinutes: 30},
		Entities: []Entity{{
			ID: "ICU_UNIT_01", Type: "ICU", Capacity: f(20),
			Metadata: map[string]string{"hospital": "General Hospital", "department": "ICU"},
			Metrics: []Metric{
				{Name: "patient_admissions", DisplayName: "Patient Admissions", Unit: "patients/hour", Category: "operations", Distribution: poisson(3, 1.5)},
				{Name: "bed_occupancy_rate", DisplayName: "Bed Occupancy Rate", Unit: "%", Category: "capacity", Distribution: beta(75, 10, 0, 100)},
				{Name: "response_time", DisplayName: "Emergency Response Time", Unit: "minutes", Category: "performance", Distribution: gamma(5, 2, 1, 30)},
				{Name: "equipment_utilization", DisplayName: "Equipment Utilization", Unit: "%", Category: "resources", Distribution: beta(60, 15, 0, 100)},
			},
		}},
		Seasonality: &SeasonalitySpec{PeriodHours: 24, Amplitude: 0.2, Harmonics: 1},
	}
}

// ManufacturingTemplate returns a production-line preset.
func ManufacturingTemplate(now time.Time) GeneratorConfig {
	return GeneratorConfig{
		Seed:       42,
		DomainType: "manufacturing",
		TimeWindow: TimeWindow{Start: now, End: now.Add(24 * time.Hour), GranularityMinutes: 10},
		Entities: []Entity{{
			ID: "PROD_LINE_01", Type: "ProductionLine", Capacity: f(1000),
			Metadata: map[string]string{"plant": "Factory A", "shift": "day"},
			Metrics: []Metric{
				{Name: "throughput", DisplayName: "Production Throughput", Unit: "units/hour", Category: "production", Distribution: normal(100, 10, 0, 1e9)},
				{Name: "defect_rate", DisplayName: "Defect Rate", Unit: "%", Category: "quality", Distribution: beta(2, 0.5, 0, 10)},
				{Name: "machine_utilization", DisplayName: "Machine Utilization", Unit: "%", Category: "efficiency", Distribution: beta(85, 5, 0, 100)},
				{Name: "cycle_time", DisplayName: "Production Cycle Time", Unit: "seconds", Category: "performance", Distribution: gamma(45, 10, 20, 120)},
			},
		}},
		Seasonality: &SeasonalitySpec{PeriodHours: 8, Amplitude: 0.15, Harmonics: 1},
		Correlations: []CorrelationEdge{
			{SourceKey: "PROD_LINE_01_machine_utilization", TargetKey: "PROD_LINE_01_throughput", Coefficient: 0.7},
		},
	}
}

// EcommerceTemplate returns a web-storefront preset.
func EcommerceTemplate(now time.Time) GeneratorConfig {
	return GeneratorConfig{
		Seed:       42,
		DomainType: "ecommerce",
		TimeWindow: TimeWindow{Start: now, End: now.Add(24 * time.Hour), GranularityMinutes: 15},
		Entities: []Entity{{
			ID: "WEBSTORE_01", Type: "OnlineStore", Capacity: f(100000),
			Metadata: map[string]string{"platform": "web", "region": "US"},
			Metrics: []Metric{
				{Name: "page_views", DisplayName: "Page Views", Unit: "views/min", Category: "traffic", Distribution: poisson(500, 50)},
				{Name: "conversion_rate", DisplayName: "Conversion Rate", Unit: "%", Category: "sales", Distribution: beta(3.5, 0.8, 0, 10)},
				{Name: "cart_abandonment_rate", DisplayName: "Cart Abandonment Rate", Unit: "%", Category: "behavior", Distribution: beta(70, 5, 50, 90)},
				{Name: "avg_order_value", DisplayName: "Average Order Value", Unit: "USD", Category: "revenue", Distribution: lognormal(75, 30, 10)},
			},
		}},
		Seasonality: &SeasonalitySpec{PeriodHours: 24, Amplitude: 0.4, Harmonics: 2},
		Correlations: []CorrelationEdge{
			{SourceKey: "WEBSTORE_01_page_views", TargetKey: "WEBSTORE_01_conversion_rate", Coefficient: 0.3},
		},
	}
}

// IoTTemplate returns a sensor-cluster preset.
func IoTTemplate(now time.Time) GeneratorConfig {
	return GeneratorConfig{
		Seed:       42,
		DomainType: "iot",
		TimeWindow: TimeWindow{Start: now, End: now.Add(24 * time.Hour), GranularityMinutes: 5},
		Entities: []Entity{{
			ID: "SENSOR_CLUSTER_01", Type: "SensorCluster", Capacity: f(10000),
			Metadata: map[string]string{"deployment": "smart_city", "location": "downtown"},
			Metrics: []Metric{
				{Name: "temperature", DisplayName: "Temperature", Unit: "C", Category: "environmental", Distribution: normal(22, 3, -10, 50)},
				{Name: "humidity", DisplayName: "Humidity", Unit: "%", Category: "environmental", Distribution: beta(60, 10, 0, 100)},
				{Name: "data_rate", DisplayName: "Data Transmission Rate", Unit: "packets/sec", Category: "network", Distribution: poisson(50, 10)},
				{Name: "battery_level", DisplayName: "Battery Level", Unit: "%", Category: "power", Distribution: beta(75, 15, 0, 100)},
			},
		}},
		Seasonality: &SeasonalitySpec{PeriodHours: 24, Amplitude: 0.25, Harmonics: 2},
		Correlations: []CorrelationEdge{
			{SourceKey: "SENSOR_CLUSTER_01_temperature", TargetKey: "SENSOR_CLUSTER_01_humidity", Coefficient: -0.4},
		},
	}
}

// Templates maps a domain tag to its constructor. The HTTP /api/templates
// handler and the CLI "templates" subcommand both walk this map.
var Templates = map[string]func(time.Time) GeneratorConfig{
	"telecom":       TelecomTemplate,
	"finance":       FinanceTemplate,
	"healthcare":    HealthcareTemplate,
	"manufacturing": ManufacturingTemplate,
	"ecommerce":     EcommerceTemplate,
	"iot":           IoTTemplate,
}
