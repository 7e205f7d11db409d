package api

const (
	// DefaultDatasetURL is the versioned CDN location of the station dataset.
	DefaultDatasetURL = "https://cdn.jsdelivr.net/gh/corover/assets@UIChange/askdisha-bucket/stationupdated.json"

	// userAgent identifies the client to the dataset host.
	userAgent = "railsearch (+https://github.com/mobil-koeln/railsearch)"
)
