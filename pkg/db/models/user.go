package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/threadline/threadline-backend/pkg/enums"
)

// User represents the canonical identity entity.
type User struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Email     string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	Username  string     `gorm:"column:username;type:text;not null;uniqueIndex:users_username_key"`
	FullName  string     `gorm:"column:full_name;not null;default:''"`
	AvatarURL string     `gorm:"column:avatar_url;not null;default:''"`
	Role      enums.Role `gorm:"column:role;not null;default:user"`
	IsActive  bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
