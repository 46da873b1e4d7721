package db

import (
	"time"
)

// BaseModel contains common columns for all tables following GORM conventions.
//
// Deletes are hard deletes: the tree mirror relies on cascade semantics,
// and soft-deleted rows would break the one-root-per-project and
// unique-(directory,name) invariants.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User is a registered account
type User struct {
	BaseModel

	Username     string `gorm:"uniqueIndex;type:text;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;type:text;not null" json:"email"`
	PasswordHash string `gorm:"type:text;not null" json:"-"`

	Projects []Project `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"projects,omitempty"`
	Tokens   []Token   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Token is a named, issued API token. The signed value itself carries the
// expiry; rows exist so users can list and revoke their tokens.
type Token struct {
	BaseModel

	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Value     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// Project owns a single logical repository mirror
type Project struct {
	BaseModel

	UserID      uint   `gorm:"not null;uniqueIndex:idx_project_user_name" json:"user_id"`
	Name        string `gorm:"type:text;not null;uniqueIndex:idx_project_user_name" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// HookID is the connected webhook identifier; nil until the first
	// successful connect, cleared again on explicit reset.
	HookID *int64 `gorm:"index" json:"hook_id,omitempty"`

	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`

	Directories []Directory `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// Directory is a node in the mirrored tree. Name is nil only for the
// synthetic root directory of a project; every other directory has a
// non-nil parent reachable to the root without cycles.
type Directory struct {
	BaseModel

	ProjectID uint    `gorm:"index;not null" json:"project_id"`
	Name      *string `gorm:"type:text" json:"name"`
	ParentID  *uint   `gorm:"index" json:"parent_id,omitempty"`

	// GitHash is the remote tree's content hash for this subtree
	GitHash string `gorm:"type:text;not null" json:"git_hash"`

	Files []File `gorm:"foreignKey:DirectoryID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
}

// File is a leaf node of the mirrored tree, unique per (directory, name)
type File struct {
	BaseModel

	DirectoryID uint   `gorm:"not null;uniqueIndex:idx_file_dir_name" json:"directory_id"`
	Name        string `gorm:"type:text;not null;uniqueIndex:idx_file_dir_name" json:"name"`

	// GitHash is the remote blob's content hash
	GitHash string `gorm:"type:text;not null" json:"git_hash"`

	Raw      *RawMetrics          `gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE" json:"raw,omitempty"`
	Halstead *HalsteadMetrics     `gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE" json:"halstead,omitempty"`
	Graphs   []GraphVisualization `gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE" json:"graphs,omitempty"`
}

// RawMetrics holds line-counting metrics, one-to-one with File
type RawMetrics struct {
	BaseModel

	FileID   uint `gorm:"uniqueIndex;not null" json:"file_id"`
	LOC      int  `gorm:"not null;default:0" json:"loc"`
	LLOC     int  `gorm:"not null;default:0" json:"lloc"`
	PLOC     int  `gorm:"not null;default:0" json:"ploc"`
	Comments int  `gorm:"not null;default:0" json:"comments"`
	Blanks   int  `gorm:"not null;default:0" json:"blanks"`
}

// HalsteadMetrics holds operator/operand counts, one-to-one with File
type HalsteadMetrics struct {
	BaseModel

	FileID          uint `gorm:"uniqueIndex;not null" json:"file_id"`
	UniqueOperators int  `gorm:"not null;default:0" json:"unique_operators"`
	UniqueOperands  int  `gorm:"not null;default:0" json:"unique_operands"`
	TotalOperators  int  `gorm:"not null;default:0" json:"total_operators"`
	TotalOperands   int  `gorm:"not null;default:0" json:"total_operands"`
}

// Graph kinds stored in GraphVisualization. Only CFG rows are produced by
// the synchronization pipeline today.
const (
	GraphTypeCFG = "cfg"
	GraphTypeDDG = "ddg"
)

// GraphVisualization is a per-function graph rendering, one-to-many with File
type GraphVisualization struct {
	BaseModel

	FileID       uint   `gorm:"index;not null" json:"file_id"`
	GraphType    string `gorm:"type:text;not null;default:'cfg'" json:"graph_type"`
	FunctionName string `gorm:"type:text;not null" json:"function_name"`
	DOT          string `gorm:"column:dot;type:text;not null" json:"dot"`
}
