package catalog

// Album is one folder or album node in the catalog hierarchy. Lightroom
// stores the hierarchy as an adjacency list; Tree resolves it into linked
// Album values.
type Album struct {
	DocID    int64
	ID       string
	Name     string
	NameLC   string
	ParentID string
	Subtype  string
	Children []*Album
}

// Asset is one photo or video record. CaptureDate is kept as the raw catalog
// string; it is only ever compared, never computed with.
type Asset struct {
	ID          string
	Filename    string
	FilenameLC  string
	CaptureDate string
}
