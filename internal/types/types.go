package types

// Bulletin is one published monthly bulletin. URL is its identity.
type Bulletin struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Snapshot is every bulletin visible on the listing page at one point in time,
// in page order.
type Snapshot []Bulletin

// URLSet returns the identity keys of the snapshot.
func (s Snapshot) URLSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s))
	for _, b := range s {
		set[b.URL] = struct{}{}
	}
	return set
}

// Outcome records how far a new bulletin got through the pipeline.
type Outcome struct {
	Bulletin
	FileName   string
	RemotePath string
	Downloaded bool
	Uploaded   bool
	Notified   bool
	Err        error
}
