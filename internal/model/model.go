package model

import "time"

// Identity is what the auth middleware recovers from a token and what
// every authorization decision is made against.
type Identity struct {
	UserID   int      `json:"user_id"`
	Username string   `json:"username"`
	Role     RoleName `json:"role"`
}

func (id Identity) IsAdmin() bool    { return id.Role == RoleAdmin }
func (id Identity) IsObserver() bool { return id.Role == RoleObserver }

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
	User    UserDTO   `json:"user"`
}

type UserDTO struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	RoleID    int       `json:"role_id"`
	RoleName  string    `json:"role_name"`
	CreatedAt time.Time `json:"created_at"`
}

type UserCreateRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	RoleID   int    `json:"role_id" binding:"required"`
}

type UserUpdateRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
	RoleID   int    `json:"role_id" binding:"required"`
}

type ProjectDTO struct {
	ID               int              `json:"id"`
	Title            string           `json:"title"`
	ShortDescription string           `json:"short_description"`
	TypeID           int              `json:"type_id"`
	Type             string           `json:"type"`
	StatusID         int              `json:"status_id"`
	Status           string           `json:"status"`
	OwnerID          int              `json:"owner_id"`
	OwnerUsername    string           `json:"owner_username"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        *time.Time       `json:"updated_at"`
	Detail           *ProjectDetail   `json:"detail,omitempty"`
	Notes            []ProjectNote    `json:"notes"`
	Files            []ProjectFileDTO `json:"files"`
}

type ProjectCreateRequest struct {
	Title            string `json:"title" binding:"required"`
	ShortDescription string `json:"short_description"`
	TypeID           int    `json:"type_id" binding:"required"`
	StatusID         int    `json:"status_id" binding:"required"`
}

// OwnerID is honored for admins only; others cannot move a project.
type ProjectUpdateRequest struct {
	Title            string `json:"title" binding:"required"`
	ShortDescription string `json:"short_description"`
	TypeID           int    `json:"type_id" binding:"required"`
	StatusID         int    `json:"status_id" binding:"required"`
	OwnerID          *int   `json:"owner_id"`
}

type ProjectDetailCreateRequest struct {
	ProjectID           int    `json:"project_id" binding:"required"`
	FullDescription     string `json:"full_description"`
	KnownBugs           string `json:"known_bugs"`
	ArchitectureSummary string `json:"architecture_summary"`
}

type ProjectDetailUpdateRequest struct {
	FullDescription     string `json:"full_description"`
	KnownBugs           string `json:"known_bugs"`
	ArchitectureSummary string `json:"architecture_summary"`
}

type ProjectNoteCreateRequest struct {
	ProjectID int    `json:"project_id" binding:"required"`
	NoteText  string `json:"note_text" binding:"required"`
}

type ProjectNoteUpdateRequest struct {
	NoteText string `json:"note_text" binding:"required"`
}

type ProjectFileDTO struct {
	ID           int       `json:"id"`
	ProjectID    int       `json:"project_id"`
	FileName     string    `json:"file_name"`
	Description  string    `json:"description"`
	CategoryID   int       `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type ProjectFileUpdateRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	Description string `json:"description"`
	CategoryID  int    `json:"category_id" binding:"required"`
}

// UploadResult reports the outcome for one file of a multi-file upload.
// Uploads are best-effort: each file either lands fully or is reported
// failed here, independent of its siblings.
type UploadResult struct {
	FileName string          `json:"file_name"`
	OK       bool            `json:"ok"`
	Error    string          `json:"error,omitempty"`
	File     *ProjectFileDTO `json:"file,omitempty"`
}

type ZipRequest struct {
	FileIDs []int `json:"file_ids" binding:"required"`
}

type AppSettingUpdateRequest struct {
	Value string `json:"value" binding:"required"`
}

type NamedValueRequest struct {
	Value string `json:"value" binding:"required"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
