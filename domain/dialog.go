package domain

// DialogState is either DialogClosed or DialogOpen.
// At most one dialog is open; opening another replaces it.
type DialogState interface {
	isDialogState()
}

type DialogClosed struct{}

type DialogOpen struct {
	PostID string
	Title  string
}

func (DialogClosed) isDialogState() {}
func (DialogOpen) isDialogState()   {}

// OpenPostID returns the post id of an open dialog.
func OpenPostID(s DialogState) (string, bool) {
	switch st := s.(type) {
	case DialogOpen:
		return st.PostID, true
	case DialogClosed, nil:
		return "", false
	default:
		return "", false
	}
}

// DialogSnapshot is a point-in-time copy of the comment dialog
type DialogSnapshot struct {
	State     DialogState
	Loading   bool
	Thread    []Comment
	LoadError string
	CanRetry  bool
	Draft     string
	Posting   bool
	PostError string
}
