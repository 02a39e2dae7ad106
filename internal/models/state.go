package models

import "time"

// AppState is the whole application state: the roster tables (immutable
// between imports), the override deltas, and the casual directory. It is
// serialized as a single snapshot blob after every mutation.
type AppState struct {
	Teachers                []Teacher               `json:"teachers"`
	DutySlots               []DutySlot              `json:"duty_slots"`
	RFFRoster               []RFFRosterEntry        `json:"rff_roster"`
	ManualDuties            []DutyAssignment        `json:"manual_duties"`
	ModifiedInheritedDuties []ModifiedInheritedDuty `json:"modified_inherited_duties"`
	ModifiedRFFs            []ModifiedRFF           `json:"modified_rffs"`
	Casuals                 []CasualTeacher         `json:"casuals"`
	RosterLoaded            bool                    `json:"roster_loaded"`
	LastDataUpdate          time.Time               `json:"last_data_update"`
}

// Pagination describes the list slice returned by paginated endpoints.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
