package exercises

import "time"

// Exercise is one logged workout entry: weight (kilos), reps and sets for
// a named machine. MachineName is free text, not a foreign key; the
// machine's image and notes are copied into the entry at log time, so a
// later machine edit never rewrites workout history.
type Exercise struct {
	ID           int       `json:"id"`
	UserID       string    `json:"userId"`
	MachineName  string    `json:"machineName"`
	Weight       float64   `json:"weight"`
	Reps         int       `json:"reps"`
	Sets         int       `json:"sets"`
	Date         time.Time `json:"date"`
	MachineImage string    `json:"machineImage"`
	MachineNotes string    `json:"machineNotes"`
}
