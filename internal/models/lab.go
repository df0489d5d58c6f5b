package models

import "time"

// Lab is a physical room holding a fixed-capacity set of computers.
// Labs come from static configuration and are never mutated at runtime.
type Lab struct {
	ID             string    `json:"id" mapstructure:"id"`
	Name           string    `json:"name" mapstructure:"name"`
	Location       string    `json:"location" mapstructure:"location"`
	InCharge       string    `json:"inCharge" mapstructure:"in_charge"`
	TotalComputers int       `json:"totalComputers" mapstructure:"total_computers"`
	LastUpdated    time.Time `json:"lastUpdated" mapstructure:"last_updated"`
}
