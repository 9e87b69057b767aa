package logger

// Console switches logging to stdout.
type Console struct {
	Enabled bool `toml:"enabled"`
	// UseConsoleWriter prints human readable lines instead of JSON.
	UseConsoleWriter bool
}

// LogFile names the rolling files below Path, one per level plus the
// request log. Sizes are in MB, ages in days, backups a file count.
type LogFile struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	AccessLog        string `toml:"access"`
	AccessMaxSize    int    `toml:"accessMaxSize"`
	AccessMaxBackups int    `toml:"accessMaxBackups"`
	AccessMaxAge     int    `toml:"accessMaxAge"`

	ErrorLog        string `toml:"error"`
	ErrorMaxSize    int    `toml:"errorMaxSize"`
	ErrorMaxBackups int    `toml:"errorMaxBackups"`
	ErrorMaxAge     int    `toml:"errorMaxAge"`

	InfoLog        string `toml:"info"`
	InfoMaxSize    int    `toml:"infoMaxSize"`
	InfoMaxBackups int    `toml:"infoMaxBackups"`
	InfoMaxAge     int    `toml:"infoMaxAge"`

	TraceLog        string `toml:"trace"`
	TraceMaxSize    int    `toml:"traceMaxSize"`
	TraceMaxBackups int    `toml:"traceMaxBackups"`
	TraceMaxAge     int    `toml:"traceMaxAge"`

	WarnLog        string `toml:"warn"`
	WarnMaxSize    int    `toml:"warnMaxSize"`
	WarnMaxBackups int    `toml:"warnMaxBackups"`
	WarnMaxAge     int    `toml:"warnMaxAge"`
}

// Log is the [Log] section of main.toml.
type Log struct {
	LogLevel string // trace, debug, info, warn or error; LOG_LEVEL wins

	// EnableAccessLogToConsole adds the request log to stdout, only when
	// Console.Enabled is set as well.
	EnableAccessLogToConsole bool
	ReportCaller             bool // file:line on every entry
	DisableCheckAlive        bool // keep the checkalive route out of the request log

	AppName     string // "app" field on every entry
	ServiceName string // "service" label of log_statements_total

	Console Console

	File LogFile `toml:"file"`
}
