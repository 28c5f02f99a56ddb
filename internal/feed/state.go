package feed

import "github.com/baitwatch/baitwatch/internal/api"

// Status identifies which variant a State holds.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the published feed state. Articles is only meaningful for
// StatusSuccess and Message only for StatusError.
type State struct {
	Status   Status
	Articles []api.Article
	Message  string
}

func Loading() State {
	return State{Status: StatusLoading}
}

// Success copies articles so later appends never alias a published slice.
func Success(articles []api.Article) State {
	out := make([]api.Article, len(articles))
	copy(out, articles)
	return State{Status: StatusSuccess, Articles: out}
}

func Failure(message string) State {
	return State{Status: StatusError, Message: message}
}

func (s State) IsLoading() bool { return s.Status == StatusLoading }
func (s State) IsSuccess() bool { return s.Status == StatusSuccess }
func (s State) IsError() bool   { return s.Status == StatusError }
