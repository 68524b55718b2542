package config

const (
	defaultOutputDir           = "data/inventory"
	defaultOutputPrefix        = "plates"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultHeaderScanRows      = 5
	defaultDataStartRow        = 2
	defaultSimilarityThreshold = 0.7
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
		},
		Sheet: Sheet{
			HeaderScanRows:      defaultHeaderScanRows,
			DefaultDataStartRow: defaultDataStartRow,
			SimilarityThreshold: defaultSimilarityThreshold,
		},
		Output: Output{
			Prefix: defaultOutputPrefix,
			Pretty: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
