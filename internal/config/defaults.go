package config

const (
	defaultLogDir    = "~/.local/share/lrsort/logs"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
	defaultNaming    = NamingNatural
)

// Naming scheme values accepted by Organize.Naming.
const (
	NamingNatural = "natural"
	NamingIndexed = "indexed"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Organize: Organize{
			Naming:             defaultNaming,
			ExifDisambiguation: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
