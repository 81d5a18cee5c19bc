package models

// ValidationError : entrée malformée, rejetée avant tout effet de bord.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError : l'opération entre en conflit avec l'état courant
// (candidature déjà en attente, candidature déjà traitée).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
