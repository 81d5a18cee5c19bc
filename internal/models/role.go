package models

// Rôles applicatifs. Un utilisateur peut en cumuler plusieurs.
// L'attribution est une ligne (user_id, role) dans user_roles : la clé
// primaire composée rend l'insertion idempotente.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
	RoleSeller    = "seller"
)
