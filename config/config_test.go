// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestNew_defaults(t *testing.T) {
	viper.Reset()

	c := New()

	if c.RAMFraction != DefaultRAMFraction {
		t.Errorf("RAMFraction = %v, want %v", c.RAMFraction, DefaultRAMFraction)
	}
	if c.Workers < 1 {
		t.Errorf("Workers = %d, want >= 1", c.Workers)
	}
	if c.Columns.Protein != "Protein" || c.Columns.Variant != "Variant" {
		t.Errorf("unexpected column defaults: %+v", c.Columns)
	}
	if c.Dataset.Rows != AFMRows {
		t.Errorf("Dataset.Rows = %d, want %d", c.Dataset.Rows, AFMRows)
	}
	if !c.UseAlias {
		t.Error("UseAlias should default to true")
	}
}

func TestNew_lowMem(t *testing.T) {
	viper.Reset()
	viper.Set("low-mem", true)

	c := New()

	if c.RAMFraction != LowMemRAMFraction {
		t.Errorf("RAMFraction = %v, want %v in low-mem mode", c.RAMFraction, LowMemRAMFraction)
	}
}
