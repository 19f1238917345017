package multimap

// ProblemKind enumerates why a frame could not be rendered.
type ProblemKind int

const (
	// ProblemCountIsZero: datasets exist but all of them are hidden.
	ProblemCountIsZero ProblemKind = iota + 1
	// ProblemWidthSmallerThanColorBar: the raster is narrower than the colorbar.
	ProblemWidthSmallerThanColorBar
	// ProblemNoData: no dataset was ever registered.
	ProblemNoData
	// ProblemClipboardIssue: exporting the view failed.
	ProblemClipboardIssue
)

func (k ProblemKind) String() string {
	switch k {
	case ProblemCountIsZero:
		return "all datasets are hidden"
	case ProblemWidthSmallerThanColorBar:
		return "width is smaller than the colorbar"
	case ProblemNoData:
		return "no data"
	case ProblemClipboardIssue:
		return "clipboard issue"
	}
	return "unknown problem"
}

// RenderProblem is the error type of the engine. Compare with errors.Is
// against the Err* values; the kind decides equality.
type RenderProblem struct {
	Kind    ProblemKind
	Message string
}

var (
	ErrCountIsZero              = &RenderProblem{Kind: ProblemCountIsZero}
	ErrWidthSmallerThanColorBar = &RenderProblem{Kind: ProblemWidthSmallerThanColorBar}
	ErrNoData                   = &RenderProblem{Kind: ProblemNoData}
)

// NewClipboardIssue wraps a failure of the image sink.
func NewClipboardIssue(msg string) *RenderProblem {
	return &RenderProblem{Kind: ProblemClipboardIssue, Message: msg}
}

func (p *RenderProblem) Error() string {
	if p.Message == "" {
		return p.Kind.String()
	}
	return p.Kind.String() + ": " + p.Message
}

// Is matches any problem of the same kind.
func (p *RenderProblem) Is(target error) bool {
	t, ok := target.(*RenderProblem)
	return ok && t.Kind == p.Kind
}
