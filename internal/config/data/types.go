// Package data provides configuration data types for the vdash application.
package data

// Flags represents CLI command-line flags for the vdash application.
// Nil or zero values leave the file configuration alone.
type Flags struct {
	RefreshRate *float32 // Refresh rate in seconds
	LogLevel    *string  // Log level (e.g., debug, info, warn, error)
	LogFile     *string  // Path to log file
	Command     *string  // Startup command/view
	ReadOnly    *bool    // Run in read-only mode
	Write       *bool    // Enable write operations
	Store       *string  // Store kind
	StorePath   *string  // File or SQLite store location
	Bucket      *string  // S3 store bucket
	Profile     *string  // AWS profile to use
	Region      *string  // AWS region to use
	PageSize    *int     // Page size override for every list
}

// UI represents user interface configuration settings.
type UI struct {
	EnableMouse bool `yaml:"enableMouse"`
	Logoless    bool `yaml:"logoless"`
	Crumbsless  bool `yaml:"crumbsless"`
	Menuless    bool `yaml:"menuless"`
}

// Logger represents logging configuration settings.
type Logger struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Store selects the record backend.
type Store struct {
	Kind    string `yaml:"kind"`
	Path    string `yaml:"path"`
	Bucket  string `yaml:"bucket"`
	Prefix  string `yaml:"prefix"`
	Profile string `yaml:"profile"`
	Region  string `yaml:"region"`
}

// NewFlags creates a new Flags instance with all pointer fields initialized.
// All pointers are allocated but their values are not set.
func NewFlags() *Flags {
	return &Flags{
		RefreshRate: new(float32),
		LogLevel:    new(string),
		LogFile:     new(string),
		Command:     new(string),
		ReadOnly:    new(bool),
		Write:       new(bool),
		Store:       new(string),
		StorePath:   new(string),
		Bucket:      new(string),
		Profile:     new(string),
		Region:      new(string),
		PageSize:    new(int),
	}
}
