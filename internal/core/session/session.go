// Package session holds the state of one interactive export session and
// the single function that moves it from one state to the next.
//
// State is a value: Update never mutates its argument, it returns the
// next State. Documents and Results referenced from a State are treated
// as immutable, so copies of a State can be compared and kept around.
package session

import (
	"fmt"

	"github.com/custodia-labs/gifex/internal/core/domain"
)

// Status summarises what a State is showing.
type Status int

const (
	// StatusNoDocument means nothing has been loaded yet.
	StatusNoDocument Status = iota
	// StatusLoaded means a document is loaded but not searched.
	StatusLoaded
	// StatusResults means the last search found entries in the list, even
	// if the policy skipped all of them.
	StatusResults
	// StatusEmpty means the last search found the list but it had no entries.
	StatusEmpty
	// StatusError means the last operation failed.
	StatusError
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusNoDocument:
		return "no_document"
	case StatusLoaded:
		return "loaded"
	case StatusResults:
		return "results"
	case StatusEmpty:
		return "empty"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the full session state.
type State struct {
	// Document is the last successfully loaded document.
	Document *domain.Document

	// Result is the outcome of the last successful search, nil if none.
	Result *domain.Result

	// Err is the error of the last failed operation, cleared on success.
	Err error

	// LastDispatch is the report of the last bulk open.
	LastDispatch *domain.DispatchReport
}

// Event is something that happened to the session.
type Event interface {
	event()
}

// Loaded reports a successful load.
type Loaded struct{ Document *domain.Document }

// LoadFailed reports a load that failed; the previous document is kept.
type LoadFailed struct{ Err error }

// Searched reports a successful search.
type Searched struct{ Result *domain.Result }

// SearchFailed reports a failed search.
type SearchFailed struct{ Err error }

// Dispatched reports a finished bulk open.
type Dispatched struct{ Report *domain.DispatchReport }

// Reset returns the session to its initial state.
type Reset struct{}

func (Loaded) event()       {}
func (LoadFailed) event()   {}
func (Searched) event()     {}
func (SearchFailed) event() {}
func (Dispatched) event()   {}
func (Reset) event()        {}

// Update returns the state that follows s after ev.
func Update(s State, ev Event) State {
	switch ev := ev.(type) {
	case Loaded:
		if ev.Document == nil {
			return s
		}
		return State{Document: ev.Document}

	case LoadFailed:
		s.Err = ev.Err
		return s

	case Searched:
		if ev.Result == nil {
			return s
		}
		s.Result = ev.Result
		s.Err = nil
		return s

	case SearchFailed:
		s.Result = nil
		s.Err = ev.Err
		return s

	case Dispatched:
		s.LastDispatch = ev.Report
		return s

	case Reset:
		return State{}
	}
	return s
}

// Status derives the display status from s.
func (s State) Status() Status {
	switch {
	case s.Err != nil:
		return StatusError
	case s.Result != nil && s.Result.Empty():
		return StatusEmpty
	case s.Result != nil:
		return StatusResults
	case s.Document != nil:
		return StatusLoaded
	default:
		return StatusNoDocument
	}
}

// Count returns the number of links in the current result.
func (s State) Count() int {
	if s.Result == nil {
		return 0
	}
	return s.Result.Set.Len()
}

// Banner returns the message shown for the current status: the error, the
// result count, or the empty-list notice. It is empty otherwise.
func (s State) Banner() string {
	switch s.Status() {
	case StatusError:
		return domain.UserMessage(s.Err)
	case StatusEmpty:
		return fmt.Sprintf("The list %q is empty.", s.Result.Path.List)
	case StatusResults:
		return fmt.Sprintf("Found %d GIFs", s.Count())
	case StatusNoDocument, StatusLoaded:
	}
	return ""
}
