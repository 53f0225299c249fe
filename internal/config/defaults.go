package config

// Default configuration values.
const (
	DefaultScriptsDir = "scripts"
	DefaultTargetType = "duckdb"
)

// ApplyDefaults applies default values to a ProjectConfig.
func (c *ProjectConfig) ApplyDefaults() {
	if c == nil {
		return
	}
	if c.ScriptsDir == "" {
		c.ScriptsDir = DefaultScriptsDir
	}
	if c.Target == nil {
		c.Target = &TargetConfig{}
	}
	if c.Target.Type == "" {
		c.Target.Type = DefaultTargetType
	}
}
