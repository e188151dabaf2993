// Package config manages user-level settings stored at ~/.extsrc/config.yaml.
// Settings can be overridden with EXTSRC_* environment variables; the most
// important one is the location of the sources file.
package config
