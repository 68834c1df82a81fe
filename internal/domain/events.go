package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventResultsLoaded     EventType = "ResultsLoaded"
	EventResultsFailed     EventType = "ResultsFailed"
	EventCameraFitted      EventType = "CameraFitted"
	EventExpansionChanged  EventType = "ExpansionChanged"
	EventSelectionSurfaced EventType = "SelectionSurfaced"
	EventConfigLoaded      EventType = "ConfigLoaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ResultsLoadedEvent is emitted when a result source produced a full result set
type ResultsLoadedEvent struct {
	Source string
	Places []Place
}

func (e ResultsLoadedEvent) Type() EventType { return EventResultsLoaded }

// ResultsFailedEvent is emitted when a result source could not produce results
type ResultsFailedEvent struct {
	Source string
	Err    error
}

func (e ResultsFailedEvent) Type() EventType { return EventResultsFailed }

// CameraFittedEvent is emitted when the camera was framed around the results
type CameraFittedEvent struct {
	Region Region
	Places int
}

func (e CameraFittedEvent) Type() EventType { return EventCameraFitted }

// ExpansionChangedEvent is emitted when the panel expansion level changes.
// Forced is set when the change was caused by a selection, not by the user.
type ExpansionChangedEvent struct {
	From   string
	To     string
	Forced bool
}

func (e ExpansionChangedEvent) Type() EventType { return EventExpansionChanged }

// SelectionSurfacedEvent is emitted when a selected place is shown in the panel
type SelectionSurfacedEvent struct {
	ID         PlaceID
	FromList   bool
	Recentered bool
}

func (e SelectionSurfacedEvent) Type() EventType { return EventSelectionSurfaced }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }
