package model

import "time"

// RoleName is the closed set of roles the guard understands.
type RoleName string

const (
	RoleAdmin    RoleName = "Admin"
	RoleUser     RoleName = "User"
	RoleObserver RoleName = "Observer"
)

func (r RoleName) Valid() bool {
	return r == RoleAdmin || r == RoleUser || r == RoleObserver
}

type Role struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:20" json:"name"`
}

type User struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100" json:"username"`
	PasswordHash string    `json:"-"`
	RoleID       int       `gorm:"not null" json:"role_id"`
	Role         Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) RoleName() RoleName { return RoleName(u.Role.Name) }

type Project struct {
	ID               int            `gorm:"primaryKey" json:"id"`
	Title            string         `gorm:"not null;size:200" json:"title"`
	ShortDescription string         `gorm:"size:500" json:"short_description"`
	TypeID           int            `gorm:"not null;index" json:"type_id"`
	StatusID         int            `gorm:"not null;index" json:"status_id"`
	OwnerID          int            `gorm:"not null;index" json:"owner_id"`
	Owner            User           `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        *time.Time     `json:"updated_at"`
	Detail           *ProjectDetail `gorm:"foreignKey:ProjectID" json:"detail,omitempty"`
	Notes            []ProjectNote  `gorm:"foreignKey:ProjectID" json:"notes,omitempty"`
	Files            []ProjectFile  `gorm:"foreignKey:ProjectID" json:"files,omitempty"`
}

// ProjectDetail is keyed by its project: at most one detail record per project.
type ProjectDetail struct {
	ProjectID           int    `gorm:"primaryKey" json:"project_id"`
	FullDescription     string `gorm:"type:text" json:"full_description"`
	KnownBugs           string `gorm:"type:text" json:"known_bugs"`
	ArchitectureSummary string `gorm:"type:text" json:"architecture_summary"`
}

type ProjectNote struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	ProjectID int       `gorm:"not null;index" json:"project_id"`
	NoteText  string    `gorm:"type:text" json:"note_text"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectFile keeps the original upload name as metadata only; the bytes
// live on disk under StorageKey, which is unique per file.
type ProjectFile struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	ProjectID   int       `gorm:"not null;index" json:"project_id"`
	FileName    string    `gorm:"not null;size:255" json:"file_name"`
	StorageKey  string    `gorm:"uniqueIndex;size:255" json:"-"`
	Description string    `gorm:"size:500" json:"description"`
	CategoryID  int       `gorm:"not null;index" json:"category_id"`
	UploadedAt  time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

type ProjectFileCategory struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100" json:"name"`
}

type ProjectType struct {
	ID    int    `gorm:"primaryKey" json:"id"`
	Value string `gorm:"uniqueIndex;size:100" json:"value"`
}

type ProjectStatus struct {
	ID    int    `gorm:"primaryKey" json:"id"`
	Value string `gorm:"uniqueIndex;size:100" json:"value"`
}

type AppSetting struct {
	ID    int    `gorm:"primaryKey" json:"id"`
	Key   string `gorm:"uniqueIndex;size:100" json:"key"`
	Value string `gorm:"size:500" json:"value"`
}

func (Role) TableName() string                { return "roles" }
func (User) TableName() string                { return "users" }
func (Project) TableName() string             { return "projects" }
func (ProjectDetail) TableName() string       { return "project_details" }
func (ProjectNote) TableName() string         { return "project_notes" }
func (ProjectFile) TableName() string         { return "project_files" }
func (ProjectFileCategory) TableName() string { return "project_file_categories" }
func (ProjectType) TableName() string         { return "project_types" }
func (ProjectStatus) TableName() string       { return "project_statuses" }
func (AppSetting) TableName() string          { return "app_settings" }
