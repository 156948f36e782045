package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Policy applied when the only admin of a group leaves.
const (
	LastAdminPromote = "promote"
	LastAdminDelete  = "delete"
)

type Group struct {
	ID              string `gorm:"primaryKey" json:"id"`
	Name            string `json:"name"`
	AdminsID        IDList `json:"adminsId"`
	Members         IDList `json:"members"`
	PendingRequests IDList `json:"pendingRequests"`
	LastAdminRule   string `json:"lastAdminRule"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.LastAdminRule == "" {
		g.LastAdminRule = LastAdminPromote
	}
	return nil
}

func (g *Group) IsAdmin(userID string) bool {
	return g.AdminsID.Contains(userID)
}

func (g *Group) IsMember(userID string) bool {
	return g.Members.Contains(userID)
}
