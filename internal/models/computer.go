package models

import "time"

// ComputerStatus is the raw status reported for a single machine.
type ComputerStatus string

const (
	StatusWorking     ComputerStatus = "working"
	StatusMaintenance ComputerStatus = "maintenance"
	StatusNotWorking  ComputerStatus = "not_working"
)

// Specs is display-only hardware information.
type Specs struct {
	CPU     string `json:"cpu"`
	RAM     string `json:"ram"`
	Storage string `json:"storage"`
	OS      string `json:"os"`
}

// Computer is one machine inside a lab. LabID is a back-reference only.
type Computer struct {
	ID          string         `json:"id"` // unique within its lab, e.g. PC-01
	Name        string         `json:"name"`
	LabID       string         `json:"labId"`
	Status      ComputerStatus `json:"status"`
	LastChecked time.Time      `json:"lastChecked"`
	Issues      []string       `json:"issues"` // empty when working
	Specs       Specs          `json:"specs"`
}
