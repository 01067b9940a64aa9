package log

type LoggerConfig struct {
	Level   string `yaml:"level" mapstructure:"level"`
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
	Time    string `yaml:"time" mapstructure:"time"`
}

func defaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:   "info",
		Pattern: "%time [%level] %caller: %msg%n",
		Time:    "2006-01-02 15:04:05",
	}
}
