package tui

import "github.com/mobil-koeln/railsearch/internal/dataset"

// datasetResultMsg carries a loaded dataset back to the model.
// seq is used for stale-result detection.
type datasetResultMsg struct {
	seq        int
	store      *dataset.Store
	err        error
	background bool // reload triggered by a file change
}

// ReloadMsg asks the model to reload the offline dataset file. It is sent
// by the file watcher.
type ReloadMsg struct {
	Path string
}

// clearNoticeMsg expires the status line notice with the same id.
type clearNoticeMsg struct {
	id int
}
