package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"corecms_back_end/internal/database"
	"corecms_back_end/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

//
// --- INDEXATION DANS ELASTICSEARCH ---
//

// IndexStore indexe une boutique pour la page découverte.
// Best-effort : un échec est loggé, jamais remonté (la boutique existe
// déjà dans ScyllaDB, l'index se rattrape à la prochaine mutation).
func IndexStore(s models.Store) {
	if database.Elastic == nil {
		log.Println("⚠️ Elastic non initialisé, impossible d'indexer:", s.Slug)
		return
	}

	doc := map[string]interface{}{
		"store_id":    s.ID.String(),
		"name":        s.Name,
		"slug":        s.Slug,
		"server_ip":   s.ServerIP,
		"discord_url": s.DiscordURL,
		"status":      s.Status,
		"theme":       s.Theme,
		"is_featured": s.IsFeatured,
	}

	data, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      "stores",
		DocumentID: s.ID.String(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", s.Slug, res.String())
	} else {
		log.Printf("✅ Boutique indexée dans Elasticsearch: %s", s.Slug)
	}
}

//
// --- RECHERCHE DANS ELASTICSEARCH ---
//

// SearchStores recherche des boutiques approuvées par nom ou adresse serveur
func SearchStores(query string) ([]map[string]interface{}, error) {
	if database.Elastic == nil {
		return nil, errors.New("client Elasticsearch non initialisé")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  query,
						"fields": []string{"name", "slug", "server_ip"},
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{
						"status": models.StoreStatusApproved,
					},
				},
			},
		},
	}

	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{"stores"},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		var e map[string]interface{}
		json.NewDecoder(res.Body).Decode(&e)
		log.Printf("❌ Elasticsearch erreur: %+v", e)
		return nil, errors.New("index non trouvé ou vide")
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("erreur décodage JSON: %v", err)
	}

	hitsData, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, errors.New("réponse Elastic invalide (pas de hits)")
	}

	hitsArray, ok := hitsData["hits"].([]interface{})
	if !ok {
		return nil, errors.New("réponse Elastic invalide (hits malformés)")
	}

	results := make([]map[string]interface{}, 0, len(hitsArray))
	for _, h := range hitsArray {
		hit, ok := h.(map[string]interface{})
		if !ok {
			continue
		}
		if source, ok := hit["_source"].(map[string]interface{}); ok {
			results = append(results, source)
		}
	}

	return results, nil
}
