package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// MustHave vérifie les secrets sans lesquels le serveur ne peut pas
// fonctionner. Leur absence est fatale au démarrage, jamais découverte
// au milieu d'un checkout.
func MustHave(keys ...string) {
	for _, key := range keys {
		if os.Getenv(key) == "" {
			log.Fatalf("❌ Variable d'environnement requise manquante : %s", key)
		}
	}
}
