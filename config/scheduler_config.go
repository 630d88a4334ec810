package config

// SchedulerConfig holds scheduler settings
type SchedulerConfig struct {
	Enabled         bool `mapstructure:"enabled" json:"enabled"`
	IntervalMinutes int  `mapstructure:"interval_minutes" json:"interval_minutes"`
}

// RetentionConfig holds data retention settings
type RetentionConfig struct {
	JobDays int `mapstructure:"job_days" json:"job_days"`
	LogDays int `mapstructure:"log_days" json:"log_days"`
}
