package roster

// Participant is one enrolled person in the currently selected class.
// The set is replaced wholesale whenever a class is selected.
type Participant struct {
	ID       int    `json:"Id"`
	FullName string `json:"FullName"`
}

// Servant is an operator who may run the scanner and stamp attendance.
type Servant struct {
	ID       int    `json:"Id"`
	FullName string `json:"FullName"`
}

// Class is one selectable class from the remote roster service.
type Class struct {
	ID    int    `json:"Id"`
	Title string `json:"ClassTitle"`
}
