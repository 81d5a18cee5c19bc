package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts d'une boutique
const (
	StoreStatusPending   = "pending"
	StoreStatusApproved  = "approved"
	StoreStatusSuspended = "suspended"
)

// Thème par défaut d'une nouvelle boutique
const DefaultStoreTheme = "minecraft_classic"

// Store est la boutique d'un vendeur (un tenant de la marketplace).
// Le slug est figé à la création : l'unicité est structurelle
// (nom normalisé + suffixe temporel), aucune lecture préalable n'est requise.
type Store struct {
	ID         gocql.UUID `json:"id"`
	OwnerID    string     `json:"owner_id"`
	Name       string     `json:"name"`
	Slug       string     `json:"slug"`
	ServerIP   string     `json:"server_ip,omitempty"`
	DiscordURL string     `json:"discord_url,omitempty"`
	LogoURL    string     `json:"logo_url,omitempty"`
	Status     string     `json:"status"`
	Theme      string     `json:"theme"`
	APIKeyHash string     `json:"-"` // jamais exposé, rotatif
	IsFeatured bool       `json:"is_featured"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
