package models

// Document is a rendered solution or project file waiting to be written.
type Document struct {
	TargetPath string
	Content    string
}

type DocumentResult struct {
	TargetPath string
	Err        error
}

// SyncReport records the outcome of every document write of one sync, in
// write order.
type SyncReport struct {
	Documents []DocumentResult
}

func (r SyncReport) Failed() []DocumentResult {
	var failed []DocumentResult
	for _, d := range r.Documents {
		if d.Err != nil {
			failed = append(failed, d)
		}
	}
	return failed
}

func (r SyncReport) Written() []string {
	var written []string
	for _, d := range r.Documents {
		if d.Err == nil {
			written = append(written, d.TargetPath)
		}
	}
	return written
}

func (r SyncReport) OK() bool {
	return len(r.Failed()) == 0
}
