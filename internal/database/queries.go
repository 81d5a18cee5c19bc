package database

import "github.com/gocql/gocql"

// Textes CQL des chemins de lecture chauds. gocql ne prépare chaque texte
// qu'une fois par session et réutilise le prepared statement côté serveur ;
// chaque appel construit en revanche un *gocql.Query neuf : Query.Bind
// écrit dans son receiver, un query partagé entre goroutines mélangerait
// les valeurs de deux requêtes concurrentes.
const (
	cqlHasRole     = `SELECT role FROM user_roles WHERE user_id = ? AND role = ?`
	cqlUserRoles   = `SELECT role FROM user_roles WHERE user_id = ?`
	cqlStoreBySlug = `SELECT store_id FROM stores_by_slug WHERE slug = ?`
)

// QueryHasRole vérifie la détention d'un rôle (garde d'accès).
func QueryHasRole(s *gocql.Session, userID, role string) *gocql.Query {
	return s.Query(cqlHasRole, userID, role)
}

// QueryUserRoles liste les rôles courants d'un utilisateur.
func QueryUserRoles(s *gocql.Session, userID string) *gocql.Query {
	return s.Query(cqlUserRoles, userID)
}

// QueryStoreBySlug résout un slug public en identifiant boutique.
func QueryStoreBySlug(s *gocql.Session, slug string) *gocql.Query {
	return s.Query(cqlStoreBySlug, slug)
}
