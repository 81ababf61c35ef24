package workload

// Tag is one workload tag attached to an entry.
type Tag struct {
	GroupName string `json:"tag_group_name"`
	TagName   string `json:"tag_name"`
}

// Entry is one time-tracking record. ProjectID may dangle (no matching
// project in the fetched set); the pipeline tolerates that and reports the
// entry with empty project fields.
type Entry struct {
	ID         int64  `json:"id"`
	PersonName string `json:"person_name"`
	ProjectID  int64  `json:"project_id"`
	Memo       string `json:"memo"`
	Minutes    int    `json:"minutes"`
	Tags       []Tag  `json:"workload_tags"`
}
