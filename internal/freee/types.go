package freee

import (
	"github.com/ma6uchi/freee-api-export/internal/domain/project"
	"github.com/ma6uchi/freee-api-export/internal/domain/workload"
)

// Wire types for the freee pm API. Missing fields decode to zero values on
// purpose: the join layer favors best-effort reporting over strict
// validation.

type pageMeta struct {
	TotalCount int `json:"total_count"`
}

type apiTag struct {
	TagGroupName string `json:"tag_group_name"`
	TagName      string `json:"tag_name"`
}

type apiProject struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Code        string   `json:"code"`
	ProjectTags []apiTag `json:"project_tags"`
}

type projectsPage struct {
	Projects []apiProject `json:"projects"`
	Meta     pageMeta     `json:"meta"`
}

type apiWorkload struct {
	ID           int64    `json:"id"`
	PersonName   string   `json:"person_name"`
	ProjectID    int64    `json:"project_id"`
	Memo         string   `json:"memo"`
	Minutes      int      `json:"minutes"`
	WorkloadTags []apiTag `json:"workload_tags"`
}

type workloadsPage struct {
	Workloads []apiWorkload `json:"workloads"`
	Meta      pageMeta      `json:"meta"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (p apiProject) toDomain() project.Project {
	tags := make([]project.Tag, 0, len(p.ProjectTags))
	for _, t := range p.ProjectTags {
		tags = append(tags, project.Tag{GroupName: t.TagGroupName, TagName: t.TagName})
	}
	return project.Project{ID: p.ID, Name: p.Name, Code: p.Code, Tags: tags}
}

func (w apiWorkload) toDomain() workload.Entry {
	tags := make([]workload.Tag, 0, len(w.WorkloadTags))
	for _, t := range w.WorkloadTags {
		tags = append(tags, workload.Tag{GroupName: t.TagGroupName, TagName: t.TagName})
	}
	minutes := w.Minutes
	if minutes < 0 {
		minutes = 0
	}
	return workload.Entry{
		ID:         w.ID,
		PersonName: w.PersonName,
		ProjectID:  w.ProjectID,
		Memo:       w.Memo,
		Minutes:    minutes,
		Tags:       tags,
	}
}
