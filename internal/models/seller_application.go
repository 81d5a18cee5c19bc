package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts d'une candidature vendeur (approved et rejected sont terminaux)
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// Actions possibles sur une candidature
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// SellerApplication est une demande de privilèges vendeur.
// Invariant : au plus une candidature "pending" par utilisateur.
type SellerApplication struct {
	ID             gocql.UUID `json:"id"`
	UserID         string     `json:"user_id"`
	ApplicantEmail string     `json:"applicant_email"`
	ApplicantName  string     `json:"applicant_name"`
	ServerName     string     `json:"server_name"`
	ServerIP       string     `json:"server_ip"`
	DiscordURL     string     `json:"discord_url,omitempty"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	AdminNotes     string     `json:"admin_notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
