package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	loadTimeout    = 60 * time.Second
	noticeDuration = 4 * time.Second
)

// loadDataset returns a tea.Cmd that loads the dataset, falling back to
// the offline file.
func loadDataset(loader Loader, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		store, err := loader.Load(ctx)
		return datasetResultMsg{
			seq:   seq,
			store: store,
			err:   err,
		}
	}
}

// reloadOffline returns a tea.Cmd that re-reads the offline dataset file.
func reloadOffline(loader Loader, seq int) tea.Cmd {
	return func() tea.Msg {
		store, err := loader.LoadOffline()
		return datasetResultMsg{
			seq:        seq,
			store:      store,
			err:        err,
			background: true,
		}
	}
}

// clearNoticeAfter returns a tea.Cmd that expires a notice.
func clearNoticeAfter(id int) tea.Cmd {
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}
