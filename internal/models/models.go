package models

import (
	"time"
)

const (
	RoleAdmin       = "Admin"
	RoleScrumMaster = "ScrumMaster"
	RoleDeveloper   = "Developer"
)

const (
	StatusBacklog    = "Backlog"
	StatusInProgress = "In Progress"
	StatusReview     = "Review"
	StatusDone       = "Done"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null;index"    json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	FullName     string `json:"full_name"`
	Role         string `gorm:"not null"                 json:"role"`
	IsActive     bool   `gorm:"default:true"             json:"is_active"`
}

type Project struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null"                 json:"name"`
	Description string `json:"description"`
	OwnerID     uint   `gorm:"index"                    json:"owner_id"`
}

type Task struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null"                 json:"title"`
	Description string    `json:"description"`
	Status      string    `gorm:"default:Backlog"          json:"status"`
	AssigneeID  *uint     `gorm:"index"                    json:"assignee_id"`
	ProjectID   uint      `gorm:"index;not null"           json:"project_id"`
	CreatedAt   time.Time `json:"created_at"`
}
