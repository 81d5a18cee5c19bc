package models

// CartItem est un article du panier tel qu'envoyé par le client.
// Le panier vit côté client : le serveur ne le voit qu'au moment du checkout.
type CartItem struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"` // rank | key | product
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}
