package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultProjectStatus is the lifecycle label of a freshly created project.
const DefaultProjectStatus = "Draft"

// Project represents a client project stored in MongoDB
type Project struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Client      string             `json:"client" bson:"client"` // free text, not a reference to a Client row
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Status      string             `json:"status" bson:"status"`
	DueDate     *time.Time         `json:"due_date,omitempty" bson:"due_date,omitempty"`
	Logo        string             `json:"logo,omitempty" bson:"logo,omitempty"`
	FinalFile   string             `json:"final_file" bson:"final_file"`
	Versions    []Version          `json:"versions" bson:"versions"`
	Reactions   Reactions          `json:"reactions" bson:"reactions"`
	Decision    Decision           `json:"decision" bson:"decision"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`

	// Files is the untyped attachment list of pre-migration documents.
	// It is only read, see LegacyView.
	Files []bson.RawValue `json:"-" bson:"files,omitempty"`
}

// CurrentDecision treats documents written before the decision field existed as Pending.
func (p *Project) CurrentDecision() Decision {
	if p.Decision == "" {
		return DecisionPending
	}
	return p.Decision
}

// LegacyFile is the read-only view of one pre-migration attachment.
type LegacyFile struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// LegacyView projects the untyped files list into displayable entries.
// Entries that are neither a URL string nor a document with a url are skipped.
func (p *Project) LegacyView() []LegacyFile {
	if len(p.Files) == 0 {
		return nil
	}
	files := make([]LegacyFile, 0, len(p.Files))
	for _, raw := range p.Files {
		if s, ok := raw.StringValueOK(); ok {
			if s != "" {
				files = append(files, LegacyFile{URL: s})
			}
			continue
		}
		doc, ok := raw.DocumentOK()
		if !ok {
			continue
		}
		url, _ := doc.Lookup("url").StringValueOK()
		if url == "" {
			continue
		}
		name, ok := doc.Lookup("name").StringValueOK()
		if !ok {
			name, _ = doc.Lookup("nombre").StringValueOK()
		}
		files = append(files, LegacyFile{URL: url, Name: name})
	}
	return files
}

// ProjectDetail is a project together with its derived views.
type ProjectDetail struct {
	*Project
	VersionGroups []VersionGroup `json:"version_groups"`
	LegacyFiles   []LegacyFile   `json:"legacy_files,omitempty"`
}

// NewProjectDetail computes the derived views of p.
func NewProjectDetail(p *Project) *ProjectDetail {
	return &ProjectDetail{
		Project:       p,
		VersionGroups: GroupVersions(p.Versions),
		LegacyFiles:   p.LegacyView(),
	}
}

// CreateProjectRequest defines the form fields for creating a new project
type CreateProjectRequest struct {
	Title       string `form:"title" json:"title" validate:"required,min=1,max=200"`
	Client      string `form:"client" json:"client" validate:"required,min=1,max=200"`
	Description string `form:"description" json:"description" validate:"omitempty,max=5000"`
	Status      string `form:"status" json:"status" validate:"omitempty,max=50"`
	DueDate     string `form:"due_date" json:"due_date" validate:"omitempty"`
}

// UpdateDecisionRequest defines the request body for toggling a decision
type UpdateDecisionRequest struct {
	Decision Decision `json:"decision" validate:"required"`
}

// SelectFinalRequest defines the request body for choosing the final artifact
type SelectFinalRequest struct {
	URL string `json:"url" validate:"required"`
}
