package model

// GeneralTask is an untimed, non-recurring item in the flat general list.
type GeneralTask struct {
	ID        string `json:"id" yaml:"id" toml:"id" db:"id"`
	Name      string `json:"name" yaml:"name" toml:"name" db:"name"`
	Color     string `json:"color" yaml:"color" toml:"color" db:"color"`
	Completed bool   `json:"completed" yaml:"completed" toml:"completed" db:"completed"`
}
