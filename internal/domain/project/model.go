package project

// Tag is one project tag, e.g. {"社内", "共通業務"}. Order within a
// project's tag list is meaningful: classification takes the first match.
type Tag struct {
	GroupName string `json:"tag_group_name"`
	TagName   string `json:"tag_name"`
}

// Project is a freee project as fetched for one run. Immutable after fetch.
type Project struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	Tags []Tag  `json:"project_tags"`
}
