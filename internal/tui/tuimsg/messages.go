package tuimsg

import (
	"github.com/rgehrsitz/tedori/internal/domain"
)

// ReportLoadedMsg carries the advisory report for the loaded profile
type ReportLoadedMsg struct {
	Report *domain.Report
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// SelectionChangedMsg signals the picker selection has changed
type SelectionChangedMsg struct {
	Session domain.ComparisonSession
}

// ComparisonRequestedMsg asks for the current selection to be compared
type ComparisonRequestedMsg struct {
	Session domain.ComparisonSession
}

// ComparisonCompleteMsg signals a comparison has finished
type ComparisonCompleteMsg struct {
	Session domain.ComparisonSession
	Err     error
}
